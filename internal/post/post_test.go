package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_OutputName(t *testing.T) {
	m := Metadata{Date: "2026-02-01", Title: "My First Post", Slug: "my-first-post"}
	assert.Equal(t, "2026-02-01-my-first-post.md", m.OutputName(KindPost))
	assert.Equal(t, "my-first-post.md", m.OutputName(KindDraft))
}

func TestMetadata_Time(t *testing.T) {
	ts, ok := Metadata{Date: "2026-02-01"}.Time()
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, 1, ts.Day())

	_, ok = Metadata{}.Time()
	assert.False(t, ok)
}

func TestArtifact_Bytes(t *testing.T) {
	a := Artifact{FrontMatter: []byte("layout: post\n"), Body: "Hello."}
	assert.Equal(t, "---\nlayout: post\n---\n\nHello.", string(a.Bytes()))

	empty := Artifact{Body: "Body"}
	assert.Equal(t, "---\n---\n\nBody", string(empty.Bytes()))
}

func TestResult_RecordAndAdd(t *testing.T) {
	var posts Result
	posts.Record(Outcome{Source: "a.docx", Status: StatusConverted})
	posts.Record(Outcome{Source: "b.docx", Status: StatusSkipped, Reason: "markdown already exists"})

	var drafts Result
	drafts.Record(Outcome{Source: "c.docx", Status: StatusFailed, Reason: "boom"})

	posts.Add(drafts)
	assert.Equal(t, 1, posts.Converted)
	assert.Equal(t, 2, posts.Skipped)
	require.Len(t, posts.Failed(), 1)
	assert.Equal(t, "c.docx", posts.Failed()[0].Source)
}
