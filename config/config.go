// Package config loads pagemd settings from an optional YAML file.
package config

import (
	"os"
	"time"

	"github.com/fwojciec/pagemd"
	"gopkg.in/yaml.v3"
)

// Config holds settings that are too detailed for command-line flags.
type Config struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Browser   BrowserConfig   `yaml:"browser"`
	Challenge ChallengeConfig `yaml:"challenge"`
	Media     MediaConfig     `yaml:"media"`
}

// FetchConfig configures the HTTP page fetcher.
type FetchConfig struct {
	Timeout     time.Duration     `yaml:"timeout"`
	RetryDelays []time.Duration   `yaml:"retryDelays"`
	UserAgent   string            `yaml:"userAgent"`
	Headers     map[string]string `yaml:"headers"`
}

// BrowserConfig configures the headless browser fallback.
type BrowserConfig struct {
	// Fallback enables retrying with the browser when the HTTP fetch fails
	// or returns a verification page.
	Fallback    bool          `yaml:"fallback"`
	Bin         string        `yaml:"bin"`
	NoSandbox   bool          `yaml:"noSandbox"`
	Timeout     time.Duration `yaml:"timeout"`
	RenderDelay time.Duration `yaml:"renderDelay"`
}

// ChallengeConfig describes how verification pages are recognized.
// A page is a verification page when it is smaller than MaxSize bytes and
// contains any of the markers.
type ChallengeConfig struct {
	Markers []string `yaml:"markers"`
	MaxSize int      `yaml:"maxSize"`
}

// MediaConfig configures media downloads.
type MediaConfig struct {
	Concurrency int           `yaml:"concurrency"`
	RatePerHost float64       `yaml:"ratePerHost"`
	Timeout     time.Duration `yaml:"timeout"`
	Referer     string        `yaml:"referer"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Fetch: FetchConfig{
			Timeout:     30 * time.Second,
			RetryDelays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		},
		Browser: BrowserConfig{
			Fallback:    true,
			Timeout:     60 * time.Second,
			RenderDelay: 2 * time.Second,
		},
		Challenge: ChallengeConfig{
			Markers: []string{"验证", "未知错误"},
			MaxSize: 5000,
		},
		Media: MediaConfig{
			Concurrency: 4,
			RatePerHost: 5,
			Timeout:     30 * time.Second,
			Referer:     "https://mp.weixin.qq.com/",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, pagemd.Errorf(pagemd.EINVALID, "cannot read config %s: %v", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, pagemd.Errorf(pagemd.EINVALID, "cannot parse config %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration contains invalid values.
func (c Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return pagemd.Errorf(pagemd.EINVALID, "fetch.timeout must be positive")
	}
	for _, d := range c.Fetch.RetryDelays {
		if d < 0 {
			return pagemd.Errorf(pagemd.EINVALID, "fetch.retryDelays must not be negative")
		}
	}
	if c.Media.Concurrency < 1 {
		return pagemd.Errorf(pagemd.EINVALID, "media.concurrency must be at least 1")
	}
	if c.Challenge.MaxSize < 0 {
		return pagemd.Errorf(pagemd.EINVALID, "challenge.maxSize must not be negative")
	}
	return nil
}
