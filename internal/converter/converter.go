// Package converter wraps the external document-to-markdown engine.
package converter

import (
	"context"
	"errors"
)

// Formats understood by the default engine.
const (
	FormatDocx     = "docx"
	FormatMarkdown = "markdown"
)

var (
	ErrBinaryNotFound  = errors.New("converter binary not found")
	ErrExecutionFailed = errors.New("converter execution failed")
)

// Request describes one conversion.
type Request struct {
	Input    string // path of the source document
	From     string // source format, FormatDocx when empty
	To       string // target format, FormatMarkdown when empty
	MediaDir string // directory receiving extracted media; empty disables extraction
}

func (r Request) withDefaults() Request {
	if r.From == "" {
		r.From = FormatDocx
	}
	if r.To == "" {
		r.To = FormatMarkdown
	}
	return r
}

// Converter turns a document into markdown text. Implementations must honor
// ctx cancellation; the caller bounds each call with a timeout.
type Converter interface {
	Convert(ctx context.Context, req Request) (string, error)
}

// Func adapts a plain function to Converter.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Convert(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
