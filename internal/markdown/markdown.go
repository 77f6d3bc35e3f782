// Package markdown cleans converter output before it is written as a post body.
package markdown

import "strings"

// DefaultMediaPrefix is the relative media directory prefix made site-root absolute.
const DefaultMediaPrefix = "assets/"

// Options controls the post-processing pipeline.
type Options struct {
	// MediaPrefix is the relative link-target prefix rewritten to "/"+MediaPrefix.
	// Empty means DefaultMediaPrefix.
	MediaPrefix string
}

func (o Options) mediaPrefix() string {
	p := strings.TrimPrefix(o.MediaPrefix, "/")
	if p == "" {
		return DefaultMediaPrefix
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// Transform is one step of the post-processing chain.
type Transform func(body string) string

// Pipeline returns the ordered transform chain for a document titled title.
// Later steps rely on the line boundaries left by earlier ones.
func Pipeline(title string, opts Options) []Transform {
	return []Transform{
		stripImageAttributes,
		rewriteMediaPaths(opts.mediaPrefix()),
		stripTitleArtifacts(title),
	}
}

// Process runs the full pipeline over raw converter output.
// Apart from the removed artifacts the body is returned unchanged.
func Process(raw, title string, opts Options) string {
	body := raw
	for _, t := range Pipeline(title, opts) {
		body = t(body)
	}
	return body
}
