package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docxposts/internal/config"
	"git.home.luguber.info/inful/docxposts/internal/errors"
)

// fakePandoc writes a script printing a fixed markdown document.
func fakePandoc(t *testing.T, markdown string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "pandoc")
	script := "#!/bin/sh\ncat <<'DOC'\n" + markdown + "\nDOC\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestParse_CommandsAndFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		command string
	}{
		{"no arguments", []string{}, "convert"},
		{"default command with flags", []string{"--posts-input", "in", "--pandoc", "/bin/pandoc"}, "convert"},
		{"explicit convert", []string{"convert", "--posts-input", "in"}, "convert"},
		{"watch", []string{"watch", "--poll-interval", "5m", "--metrics-addr", ":9090"}, "watch"},
		{"init", []string{"init", "--force"}, "init"},
		{"history", []string{"history", "-n", "5"}, "history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli, kong.Vars{"version": "test"})
			require.NoError(t, err)
			kctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.command, kctx.Command())
			assert.Equal(t, "docxposts.yaml", cli.Config)
		})
	}
}

func TestParse_DefaultCommandReceivesFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--posts-input", "in", "--timeout", "30s"})
	require.NoError(t, err)
	assert.Equal(t, "in", cli.Convert.PostsInput)
	assert.Equal(t, "30s", cli.Convert.Timeout)
}

func TestPathFlags_Overrides(t *testing.T) {
	o := PathFlags{PostsInput: "in", Pandoc: "/usr/bin/pandoc", Timeout: "1m", HistoryDB: "h.db"}.overrides()
	assert.Equal(t, config.Overrides{PostsInput: "in", Converter: "/usr/bin/pandoc", Timeout: "1m", HistoryDB: "h.db"}, o)
}

func TestInitCmd(t *testing.T) {
	t.Chdir(t.TempDir())
	root := &CLI{Config: "docxposts.yaml"}
	var out bytes.Buffer
	g := &Global{Stdout: &out}

	require.NoError(t, (&InitCmd{}).Run(g, root))
	assert.FileExists(t, "docxposts.yaml")
	assert.Contains(t, out.String(), "initialized successfully")

	err := (&InitCmd{}).Run(g, root)
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Force: true}).Run(g, root))
}

func TestConvertCmd_WithHistory(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("_word", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("_word", "2026-02-My First Post.docx"), []byte("docx"), 0o644))

	root := &CLI{Config: "docxposts.yaml"}
	var out bytes.Buffer
	g := &Global{Stdout: &out}

	cmd := &ConvertCmd{PathFlags: PathFlags{
		Pandoc:    fakePandoc(t, "# My First Post\nFebruary 2026\n\nHello world."),
		HistoryDB: "history.db",
	}}
	require.NoError(t, cmd.Run(g, root))

	data, err := os.ReadFile(filepath.Join("_posts", "2026-02-01-my-first-post.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\nlayout: post\ntitle: \"My First Post\"\ndate: 2026-02-01\n---\n\nHello world.\n", string(data))
	assert.Contains(t, out.String(), "Done. Converted: 1, Skipped: 0")

	out.Reset()
	require.NoError(t, (&HistoryCmd{Limit: 10, HistoryDB: "history.db"}).Run(g, root))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "STATUS")
	assert.Contains(t, string(lines[1]), "converted")
	assert.Contains(t, string(lines[1]), "2026-02-01-my-first-post.md")
}

func TestConvertCmd_NoInputLocations(t *testing.T) {
	t.Chdir(t.TempDir())
	root := &CLI{Config: "docxposts.yaml"}

	err := (&ConvertCmd{}).Run(&Global{Stdout: &bytes.Buffer{}}, root)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryInput))
	assert.Equal(t, 3, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestHistoryCmd_NotConfigured(t *testing.T) {
	t.Chdir(t.TempDir())
	err := (&HistoryCmd{Limit: 5}).Run(&Global{Stdout: &bytes.Buffer{}}, &CLI{Config: "docxposts.yaml"})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}
