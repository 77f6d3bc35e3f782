package converter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"git.home.luguber.info/inful/docxposts/internal/logfields"
)

// DefaultBinary is looked up on PATH when Pandoc.Binary is empty.
const DefaultBinary = "pandoc"

// Pandoc invokes the pandoc binary.
type Pandoc struct {
	Binary string
}

// NewPandoc returns a Pandoc using binary, or DefaultBinary when empty.
func NewPandoc(binary string) *Pandoc {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Pandoc{Binary: binary}
}

// Args returns the command line arguments for req.
func (p *Pandoc) Args(req Request) []string {
	req = req.withDefaults()
	args := []string{req.Input, "--from", req.From, "--to", req.To}
	if req.MediaDir != "" {
		args = append(args, "--extract-media="+req.MediaDir)
	}
	return args
}

func (p *Pandoc) Convert(ctx context.Context, req Request) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBinaryNotFound, err)
	}

	cmd := exec.CommandContext(ctx, path, p.Args(req)...)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Invoking pandoc", logfields.File(req.Input), slog.String("media_dir", req.MediaDir))
	err = cmd.Run()

	if errStr := strings.TrimSpace(stderr.String()); errStr != "" {
		if err == nil {
			slog.Warn("pandoc stderr", logfields.File(req.Input), slog.String("error_output", errStr))
		} else {
			return "", fmt.Errorf("%w: %w: %s", ErrExecutionFailed, err, errStr)
		}
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", ErrExecutionFailed, ctxErr)
		}
		return "", fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	return stdout.String(), nil
}
