package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/config"
	"github.com/fwojciec/pagemd/convert"
	"github.com/fwojciec/pagemd/fs"
	"github.com/fwojciec/pagemd/goquery"
	"github.com/fwojciec/pagemd/htmltomarkdown"
	pmhttp "github.com/fwojciec/pagemd/http"
	"github.com/fwojciec/pagemd/rod"
	pmslog "github.com/fwojciec/pagemd/slog"
	"github.com/fwojciec/pagemd/sqlite"
	"github.com/fwojciec/pagemd/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the history service. Opened only when a
	// command needs it.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ConversionService pagemd.ConversionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemd"),
		kong.Description("Convert web articles (WeChat, Zhihu, Xiaohongshu, Juejin, CSDN and ordinary pages) to Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL specified. Run 'pagemd --help' for usage")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pagemd.ErrorMessage(err))
		return err
	}

	logger := pmslog.NewLogger(stderr, cli.LogLevel)
	deps.Logger = logger

	command := kongCtx.Command()
	needHistory := strings.HasPrefix(command, "history") ||
		(strings.HasPrefix(command, "convert") && cli.Convert.History)
	if needHistory {
		if err := m.openHistory(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Conversions = m.ConversionService
	}

	if strings.HasPrefix(command, "convert") {
		if cli.Convert.Timeout > 0 {
			cfg.Fetch.Timeout = cli.Convert.Timeout
			cfg.Browser.Timeout = cli.Convert.Timeout
		}

		fetcher := newFetcher(cfg, cli.Convert.Browser, logger)
		defer fetcher.Close()

		deps.Pipeline = newPipeline(cfg, fetcher, logger)
		deps.Pipeline.Conversions = deps.Conversions
	}

	return kongCtx.Run(deps)
}

// openHistory opens the history database unless a service was injected.
func (m *Main) openHistory(stderr io.Writer) error {
	if m.ConversionService != nil {
		return nil
	}

	_ = os.MkdirAll(filepath.Dir(m.DBPath), 0755)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEMD_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.ConversionService = sqlite.NewConversionService(m.DB)
	return nil
}

// newFetcher builds the HTTP fetcher with an optional headless browser
// behind it. Chrome is only started if the browser is actually used.
func newFetcher(cfg config.Config, forceBrowser bool, logger *slog.Logger) pagemd.Fetcher {
	userAgent := cfg.Fetch.UserAgent
	if userAgent == "" {
		userAgent = pmhttp.DefaultUserAgent
	}

	httpFetcher := pmhttp.NewFetcher(
		pmhttp.WithTimeout(cfg.Fetch.Timeout),
		pmhttp.WithRetryDelays(cfg.Fetch.RetryDelays),
		pmhttp.WithUserAgent(userAgent),
		pmhttp.WithHeaders(cfg.Fetch.Headers),
		pmhttp.WithRetryLog(func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}),
	)
	primary := pmslog.NewLoggingFetcher(httpFetcher, logger, "http")

	var browser pagemd.Fetcher
	if cfg.Browser.Fallback || forceBrowser {
		manager := rod.NewBrowserManager(
			rod.WithBrowserBin(cfg.Browser.Bin),
			rod.WithNoSandbox(cfg.Browser.NoSandbox),
		)
		browser = pmslog.NewLoggingFetcher(rod.NewFetcher(
			rod.WithManager(manager),
			rod.WithFetchTimeout(cfg.Browser.Timeout),
			rod.WithRenderDelay(cfg.Browser.RenderDelay),
			rod.WithUserAgent(userAgent),
			rod.WithAcceptLanguage(pmhttp.DefaultHeaders()["Accept-Language"]),
			rod.WithExtraHeaders(cfg.Fetch.Headers),
		), logger, "browser")
	}

	return convert.NewFallbackFetcher(primary, browser,
		convert.WithChallengeFunc(convert.NewChallengeFunc(cfg.Challenge.Markers, cfg.Challenge.MaxSize)),
		convert.WithForceBrowser(forceBrowser),
		convert.WithFallbackLogger(logger),
	)
}

// newPipeline wires the conversion stages.
func newPipeline(cfg config.Config, fetcher pagemd.Fetcher, logger *slog.Logger) *convert.Pipeline {
	mediaFetcher := pmhttp.NewMediaFetcher(
		pmhttp.WithMediaTimeout(cfg.Media.Timeout),
		pmhttp.WithReferer(cfg.Media.Referer),
	)
	materializer := fs.NewMaterializer(mediaFetcher,
		fs.WithConcurrency(cfg.Media.Concurrency),
		fs.WithDomainLimiter(pmhttp.NewDomainLimiter(cfg.Media.RatePerHost)),
		fs.WithLogger(logger),
	)

	extractor := goquery.NewExtractor(
		goquery.WithMetadataExtractor(trafilatura.NewMetadataExtractor()),
	)

	return &convert.Pipeline{
		Fetcher:      fetcher,
		Extractor:    pmslog.NewLoggingExtractor(extractor, logger),
		Locator:      goquery.NewLocator(),
		Materializer: pmslog.NewLoggingMaterializer(materializer, logger),
		Converter:    htmltomarkdown.NewConverter(),
		Writer:       fs.NewWriter(),
		Logger:       logger,
	}
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEMD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagemd.db"
	}
	return filepath.Join(home, ".pagemd", "pagemd.db")
}
