package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// launchFlags are passed to every Chrome process. They keep background
// tabs from being throttled and hide the automation banner that some
// article hosts check for.
var launchFlags = []flags.Flag{
	"disable-background-timer-throttling",
	"disable-backgrounding-occluded-windows",
	"disable-renderer-backgrounding",
	"disable-dev-shm-usage",
}

// instance is one running Chrome process and the connection to it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (i *instance) close() error {
	err := i.browser.Close()
	i.launcher.Kill()
	return err
}

// BrowserManager owns a headless Chrome process. The browser is launched on
// first use, so constructing a manager never starts Chrome, and it is
// recycled after maxPages pages to keep memory bounded.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	current   *instance
	bin       string
	noSandbox bool
	pageCount atomic.Int64
	maxPages  int64
	mu        sync.Mutex
	closed    atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserBin sets the Chrome executable. By default rod looks for a
// local installation and downloads Chromium if none is found.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, which is required when
// running as root inside containers.
func WithNoSandbox(enable bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.noSandbox = enable
	}
}

// NewBrowserManager creates a new BrowserManager. No browser is started
// until Browser is first called.
func NewBrowserManager(opts ...ManagerOption) *BrowserManager {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// Browser returns the running browser, launching one on first use and
// replacing it once it has served maxPages pages. A failed replacement
// keeps the old browser.
func (bm *BrowserManager) Browser() (*rod.Browser, error) {
	if bm.closed.Load() {
		return nil, fmt.Errorf("browser manager is closed")
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	switch {
	case bm.current == nil:
		inst, err := bm.launch()
		if err != nil {
			return nil, err
		}
		bm.current = inst
	case bm.pageCount.Load() >= bm.maxPages:
		if inst, err := bm.launch(); err == nil {
			_ = bm.current.close()
			bm.current = inst
		}
	}

	return bm.current.browser, nil
}

// Launched reports whether a browser process is running.
func (bm *BrowserManager) Launched() bool {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.current != nil
}

// IncrementPageCount records a served page toward the recycling threshold.
func (bm *BrowserManager) IncrementPageCount() {
	bm.pageCount.Add(1)
}

// Close shuts the browser down. Close is safe to call multiple times and
// on a manager that never launched.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.current == nil {
		return nil
	}
	err := bm.current.close()
	bm.current = nil
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 when no
// browser is running.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// launch starts Chrome and connects to it. The page count restarts at zero.
func (bm *BrowserManager) launch() (*instance, error) {
	l := launcher.New().
		NoSandbox(bm.noSandbox).
		Leakless(true).
		Headless(true).
		Set("disable-blink-features", "AutomationControlled")
	for _, flag := range launchFlags {
		l = l.Set(flag)
	}
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	bm.pageCount.Store(0)
	return &instance{browser: browser, launcher: l}, nil
}
