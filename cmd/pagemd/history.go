package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/pagemd"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth is the display width, in terminal cells, of the title column.
const maxTitleWidth = 40

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := pagemd.ConversionFilter{Limit: c.Limit}
	if c.Origin != "" {
		origin := pagemd.Origin(c.Origin)
		if !slices.Contains(pagemd.Origins(), origin) {
			err := pagemd.Errorf(pagemd.EINVALID, "unknown origin %q", c.Origin)
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemd.ErrorMessage(err))
			return err
		}
		filter.Origin = &origin
	}

	conversions, err := deps.Conversions.FindConversions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemd.ErrorMessage(err))
		return err
	}

	if len(conversions) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversions recorded. Use 'pagemd --history <url>' to record one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "Source", "Title", "Media", "Output"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
	})

	for _, c := range conversions {
		t.AppendRow(table.Row{
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
			c.Origin.Label(),
			runewidth.Truncate(c.Title, maxTitleWidth, "…"),
			mediaSummary(c),
			c.OutputPath,
		})
	}
	t.Render()

	return nil
}

func mediaSummary(c *pagemd.Conversion) string {
	if c.MediaCount == 0 {
		return "-"
	}
	if !c.DownloadMedia {
		return fmt.Sprintf("%d remote", c.MediaCount)
	}
	if c.MediaFailed > 0 {
		return fmt.Sprintf("%d (%d failed)", c.MediaCount, c.MediaFailed)
	}
	return fmt.Sprintf("%d", c.MediaCount)
}
