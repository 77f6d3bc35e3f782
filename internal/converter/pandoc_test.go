package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-pandoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestPandoc_Args(t *testing.T) {
	p := NewPandoc("")
	assert.Equal(t, DefaultBinary, p.Binary)

	got := p.Args(Request{Input: "_word/a.docx", MediaDir: "assets/images/a"})
	assert.Equal(t, []string{"_word/a.docx", "--from", "docx", "--to", "markdown", "--extract-media=assets/images/a"}, got)

	got = p.Args(Request{Input: "a.odt", From: "odt", To: "gfm"})
	assert.Equal(t, []string{"a.odt", "--from", "odt", "--to", "gfm"}, got)
}

func TestPandoc_Convert_ReturnsStdout(t *testing.T) {
	p := NewPandoc(writeScript(t, `echo "converted $1 $2 $3"`))

	out, err := p.Convert(t.Context(), Request{Input: "in.docx"})
	require.NoError(t, err)
	assert.Equal(t, "converted in.docx --from docx\n", out)
}

func TestPandoc_Convert_Failure(t *testing.T) {
	p := NewPandoc(writeScript(t, "echo 'unknown reader' >&2\nexit 3"))

	_, err := p.Convert(t.Context(), Request{Input: "in.docx"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.Contains(t, err.Error(), "unknown reader")
}

func TestPandoc_Convert_BinaryNotFound(t *testing.T) {
	p := NewPandoc(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := p.Convert(t.Context(), Request{Input: "in.docx"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBinaryNotFound))
}

func TestPandoc_Convert_Timeout(t *testing.T) {
	p := NewPandoc(writeScript(t, "exec sleep 5"))

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Convert(ctx, Request{Input: "in.docx"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestFunc(t *testing.T) {
	var got Request
	c := Func(func(_ context.Context, req Request) (string, error) {
		got = req
		return "body", nil
	})

	out, err := c.Convert(t.Context(), Request{Input: "x.docx"})
	require.NoError(t, err)
	assert.Equal(t, "body", out)
	assert.Equal(t, "x.docx", got.Input)
}
