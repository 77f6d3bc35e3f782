package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docxposts/internal/post"
	"git.home.luguber.info/inful/docxposts/internal/slug"
)

// Layouts per output kind.
const (
	LayoutPost  = "post"
	LayoutDraft = "draft"
)

// Permalink is the site path of a draft.
func Permalink(name string) string {
	return "/drafts/" + name + ".html"
}

// Build renders the front matter (without delimiters) for an artifact of the
// given kind. Keys are emitted in a fixed order; the title is always a YAML
// double-quoted scalar so quotes, backslashes and control characters are escaped.
func Build(kind post.Kind, meta post.Metadata) ([]byte, error) {
	if kind != post.KindPost && kind != post.KindDraft {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	if !slug.Valid(meta.Slug) {
		return nil, fmt.Errorf("%s %q has invalid slug %q", kind, meta.Title, meta.Slug)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	switch kind {
	case post.KindPost:
		if _, ok := meta.Time(); !ok {
			return nil, fmt.Errorf("post %q has no valid date %q", meta.Title, meta.Date)
		}
		addField(doc, "layout", plain(LayoutPost))
		addField(doc, "title", quoted(meta.Title))
		addField(doc, "date", plain(meta.Date))
	default:
		addField(doc, "layout", plain(LayoutDraft))
		addField(doc, "title", quoted(meta.Title))
		addField(doc, "permalink", plain(Permalink(meta.Slug)))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	return buf.Bytes(), nil
}

// Render builds the artifact for meta written to path.
func Render(kind post.Kind, meta post.Metadata, body, path string) (post.Artifact, error) {
	fm, err := Build(kind, meta)
	if err != nil {
		return post.Artifact{}, err
	}
	return post.Artifact{Path: path, FrontMatter: fm, Body: body}, nil
}

func addField(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

// plain leaves the tag unset so values like dates stay unquoted.
func plain(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}
