package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docxposts/internal/post"
)

func TestBuild_Post(t *testing.T) {
	fm, err := Build(post.KindPost, post.Metadata{Date: "2026-02-01", Title: "My First Post", Slug: "my-first-post"})
	require.NoError(t, err)
	require.Equal(t, "layout: post\ntitle: \"My First Post\"\ndate: 2026-02-01\n", string(fm))
}

func TestBuild_Draft(t *testing.T) {
	fm, err := Build(post.KindDraft, post.Metadata{Title: "Cool Idea", Slug: "cool-idea"})
	require.NoError(t, err)
	require.Equal(t, "layout: draft\ntitle: \"Cool Idea\"\npermalink: /drafts/cool-idea.html\n", string(fm))
}

func TestBuild_DraftIgnoresDate(t *testing.T) {
	fm, err := Build(post.KindDraft, post.Metadata{Date: "2026-02-01", Title: "Cool Idea", Slug: "cool-idea"})
	require.NoError(t, err)
	assert.NotContains(t, string(fm), "date")
}

func TestBuild_TitleEscaping(t *testing.T) {
	tests := []struct {
		name  string
		title string
		line  string
	}{
		{"double quotes", `Say "Hi"`, `title: "Say \"Hi\""`},
		{"backslash", `C:\path`, `title: "C:\\path"`},
		{"colon and hash", "Part 1: the #1 thing", `title: "Part 1: the #1 thing"`},
		{"non ascii kept", "Smørbrød på tur", `title: "Smørbrød på tur"`},
		{"looks like bool", "yes", `title: "yes"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, err := Build(post.KindPost, post.Metadata{Date: "2026-01-01", Title: tt.title, Slug: "x"})
			require.NoError(t, err)
			assert.Contains(t, string(fm), tt.line+"\n")

			var fields map[string]any
			require.NoError(t, yaml.Unmarshal(fm, &fields))
			assert.Equal(t, tt.title, fields["title"])
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind post.Kind
		meta post.Metadata
	}{
		{"post without date", post.KindPost, post.Metadata{Title: "No date", Slug: "no-date"}},
		{"post with impossible date", post.KindPost, post.Metadata{Date: "2026-02-30", Title: "Bad", Slug: "bad"}},
		{"draft without slug", post.KindDraft, post.Metadata{Title: "No slug"}},
		{"slug not normalized", post.KindDraft, post.Metadata{Title: "Bad Slug", Slug: "Bad Slug"}},
		{"unknown kind", post.Kind("page"), post.Metadata{Title: "x", Slug: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.kind, tt.meta)
			require.Error(t, err)
		})
	}
}

func TestRender_EndToEndPost(t *testing.T) {
	art, err := Render(post.KindPost, post.Metadata{Date: "2026-02-01", Title: "My First Post", Slug: "my-first-post"}, "Hello world.", "_posts/2026-02-01-my-first-post.md")
	require.NoError(t, err)
	assert.Equal(t, "_posts/2026-02-01-my-first-post.md", art.Path)
	assert.Equal(t, "layout: post\ntitle: \"My First Post\"\ndate: 2026-02-01\n", string(art.FrontMatter))
	require.Equal(t, "---\nlayout: post\ntitle: \"My First Post\"\ndate: 2026-02-01\n---\n\nHello world.", string(art.Bytes()))
	assert.Equal(t, art.Bytes(), Join(art.FrontMatter, art.Body))
}

func TestSplit_RoundTrip(t *testing.T) {
	art, err := Render(post.KindDraft, post.Metadata{Title: "Cool Idea", Slug: "cool-idea"}, "Body\n", "_drafts/cool-idea.md")
	require.NoError(t, err)

	gotFM, body, had, err := Split(art.Bytes())
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, art.FrontMatter, gotFM)
	require.Equal(t, "Body\n", body)

	var fields map[string]any
	require.NoError(t, yaml.Unmarshal(gotFM, &fields))
	assert.Equal(t, "draft", fields["layout"])
	assert.Equal(t, "/drafts/cool-idea.html", fields["permalink"])
}

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	fm, body, had, err := Split([]byte("# Title\n\nHello\n"))
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, "# Title\n\nHello\n", body)
}

func TestSplit_EmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n\nBody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, "Body", body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestPermalink(t *testing.T) {
	assert.Equal(t, "/drafts/cool-idea.html", Permalink("cool-idea"))
}
