package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractImages parses body and returns image destinations in document order.
// This is an analysis API; the body is never re-rendered.
func ExtractImages(body string) []string {
	src := []byte(body)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	images := make([]string, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			images = append(images, string(img.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return images
}

// SiteRootImages returns the image destinations under "/"+prefix, i.e. the
// references expected to resolve to extracted media on disk.
func SiteRootImages(body string, opts Options) []string {
	want := "/" + opts.mediaPrefix()
	var out []string
	for _, dest := range ExtractImages(body) {
		if strings.HasPrefix(dest, want) {
			out = append(out, dest)
		}
	}
	return out
}
