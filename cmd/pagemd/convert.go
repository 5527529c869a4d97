package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/convert"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	deps.Pipeline.Progress = func(event convert.ProgressEvent) {
		switch event.Stage {
		case convert.StageFetch:
			fmt.Fprintf(deps.Stderr, "Fetching %s (%s)\n", event.URL, event.Origin.Label())
		case convert.StageMedia:
			fmt.Fprintf(deps.Stderr, "  Downloading %d media files\n", event.Count)
		}
	}

	result, err := deps.Pipeline.Convert(deps.Ctx, convert.Request{
		URL:           c.URL,
		OutputPath:    c.Output,
		OutputDir:     c.OutputDir,
		DownloadMedia: c.Download,
	})
	if err != nil {
		reportFailure(deps.Stderr, err)
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(deps.Stdout, "%s %s\n", green("Saved"), result.OutputPath)
	if result.Title != "" {
		fmt.Fprintf(deps.Stdout, "  Title: %s\n", result.Title)
	}
	if c.Download && result.MediaCount > 0 {
		fmt.Fprintf(deps.Stdout, "  Media: %d downloaded, %d kept remote\n",
			result.MediaCount-result.MediaFailed, result.MediaFailed)
	}
	if result.MediaFailed > 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(deps.Stderr, "%s %d media files could not be downloaded and link to the original site\n",
			yellow("warning:"), result.MediaFailed)
	}

	return nil
}

// reportFailure prints a diagnostic for a failed conversion.
func reportFailure(w io.Writer, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", red("error:"), pagemd.ErrorMessage(err))

	var cerr *convert.Error
	if !errors.As(err, &cerr) {
		return
	}

	switch pagemd.ErrorCode(err) {
	case pagemd.ENOTFOUND:
		if cerr.DebugPath != "" {
			fmt.Fprintf(w, "Hint: the fetched page was saved to %s for inspection\n", cerr.DebugPath)
		}
		fmt.Fprintln(w, "Hint: the page may require login, be a verification page, or use an unsupported layout; try --browser")
	case pagemd.EFETCH:
		fmt.Fprintln(w, "Hint: check the URL and your network connection")
	}
}
