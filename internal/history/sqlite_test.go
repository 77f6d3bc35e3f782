package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_AppendAndByRun(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	ts := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, Event{RunID: "run-1", Kind: "post", Source: "a.docx", Output: "_posts/a.md", Status: "converted", Fingerprint: "fp", Timestamp: ts}))
	require.NoError(t, store.Append(ctx, Event{RunID: "run-1", Kind: "post", Source: "b.docx", Status: "skipped", Reason: "markdown already exists"}))
	require.NoError(t, store.Append(ctx, Event{RunID: "run-2", Kind: "draft", Source: "c.docx", Status: "failed"}))

	events, err := store.ByRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "a.docx", events[0].Source)
	assert.Equal(t, "_posts/a.md", events[0].Output)
	assert.Equal(t, "fp", events[0].Fingerprint)
	assert.True(t, ts.Equal(events[0].Timestamp))
	assert.Equal(t, "markdown already exists", events[1].Reason)
	assert.False(t, events[1].Timestamp.IsZero())
	assert.Less(t, events[0].ID, events[1].ID)
}

func TestSQLiteStore_Recent(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	for _, src := range []string{"1.docx", "2.docx", "3.docx"} {
		require.NoError(t, store.Append(ctx, Event{RunID: "r", Kind: "post", Source: src, Status: "converted"}))
	}

	events, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "3.docx", events[0].Source)
	assert.Equal(t, "2.docx", events[1].Source)

	none, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(t.Context(), Event{RunID: "r", Kind: "draft", Source: "x.docx", Status: "converted"}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	events, err := reopened.ByRun(t.Context(), "r")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "x.docx", events[0].Source)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestFingerprint(t *testing.T) {
	fm := []byte("layout: post\ntitle: \"A\"\ndate: 2026-02-01\n")
	a := Fingerprint(fm, "Hello")
	assert.NotEmpty(t, a)
	assert.Equal(t, a, Fingerprint(fm, "Hello"))
	assert.Equal(t, a, Fingerprint([]byte("layout: post\ntitle: \"A\"\ndate: 2026-02-01"), "Hello"))
	assert.NotEqual(t, a, Fingerprint(fm, "Hello!"))
}

func TestArtifactFingerprint(t *testing.T) {
	fm := []byte("layout: post\ntitle: \"A\"\ndate: 2026-02-01\n")
	content := []byte("---\n" + string(fm) + "---\n\nHello")

	got, err := ArtifactFingerprint(content)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(fm, "Hello"), got)

	_, err = ArtifactFingerprint([]byte("---\nlayout: post\n"))
	require.Error(t, err)
}
