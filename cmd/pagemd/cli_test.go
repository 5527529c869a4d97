package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/pagemd/cmd/pagemd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"convert", "history"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ConvertFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"https://mp.weixin.qq.com/s/abc", "-o", "note.md", "-d", "--browser", "--timeout", "5s"})

	require.NoError(t, err)
	assert.Equal(t, "https://mp.weixin.qq.com/s/abc", cli.Convert.URL)
	assert.True(t, filepath.IsAbs(cli.Convert.Output))
	assert.Equal(t, "note.md", filepath.Base(cli.Convert.Output))
	assert.True(t, cli.Convert.Download)
	assert.True(t, cli.Convert.Browser)
	assert.Equal(t, "5s", cli.Convert.Timeout.String())
	assert.Equal(t, "output", filepath.Base(cli.Convert.OutputDir))
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "convert")
	assert.Contains(t, helpOutput, "history")
	assert.Contains(t, helpOutput, "Usage:", "Help should have Kong-style Usage prefix")
	assert.Contains(t, helpOutput, "Flags:", "Help should have Kong-style Flags section")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URL specified")
	assert.Contains(t, stdout.String(), "Usage:")
}
