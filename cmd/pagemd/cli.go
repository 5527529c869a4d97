package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/convert"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Pipeline    *convert.Pipeline
	Conversions pagemd.ConversionService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `type:"path" env:"PAGEMD_CONFIG" help:"YAML file with fetch, browser and media settings"`
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert an article URL to Markdown (default command)"`
	History HistoryCmd `cmd:"" help:"List recorded conversions"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URL       string        `arg:"" help:"Article URL"`
	Output    string        `short:"o" type:"path" help:"Output file (default: <output-dir>/<title>.md)"`
	OutputDir string        `name:"output-dir" type:"path" default:"output" env:"PAGEMD_OUTPUT_DIR" help:"Directory for generated files"`
	Download  bool          `short:"d" help:"Download images and videos next to the document"`
	Browser   bool          `env:"PAGEMD_BROWSER" help:"Fetch with a headless browser instead of plain HTTP"`
	Timeout   time.Duration `help:"Per-request fetch timeout (overrides the config file)"`
	History   bool          `help:"Record the conversion in the local history database"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Origin string `help:"Only show conversions from this origin (wechat, zhihu, xiaohongshu, juejin, csdn, generic)"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of conversions to show"`
}
