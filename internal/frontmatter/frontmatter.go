// Package frontmatter builds and parses the YAML header of generated posts.
package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"git.home.luguber.info/inful/docxposts/internal/post"
)

const delimiter = post.FrontMatterDelimiter

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Join assembles a post: the delimited front matter, one blank line, then body.
func Join(frontmatter []byte, body string) []byte {
	return post.Artifact{FrontMatter: frontmatter, Body: body}.Bytes()
}

// Split separates front matter from the body of a document produced by Join.
// The blank line Join inserts after the closing delimiter is dropped.
// If content has no front matter, had is false and body is the full input.
func Split(content []byte) (frontmatter []byte, body string, had bool, err error) {
	if !bytes.HasPrefix(content, []byte(delimiter)) {
		return nil, string(content), false, nil
	}

	rest := content[len(delimiter):]
	var end, bodyStart int
	switch {
	case bytes.HasPrefix(rest, []byte(delimiter)):
		end, bodyStart = 0, len(delimiter)
	default:
		idx := bytes.Index(rest, []byte("\n"+delimiter))
		if idx < 0 {
			return nil, "", false, ErrMissingClosingDelimiter
		}
		end = idx + 1
		bodyStart = idx + 1 + len(delimiter)
	}

	return rest[:end], strings.TrimPrefix(string(rest[bodyStart:]), "\n"), true, nil
}
