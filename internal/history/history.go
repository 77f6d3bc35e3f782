// Package history keeps a ledger of conversion outcomes across runs.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docxposts/internal/frontmatter"
)

// Event is one per-file outcome of a run.
type Event struct {
	ID          int64
	RunID       string
	Kind        string
	Source      string
	Output      string
	Status      string
	Reason      string
	Fingerprint string // content fingerprint of the written artifact; empty unless converted
	Timestamp   time.Time
}

// Store persists events.
type Store interface {
	Append(ctx context.Context, e Event) error
	ByRun(ctx context.Context, runID string) ([]Event, error)
	Recent(ctx context.Context, limit int) ([]Event, error)
	Close() error
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Fingerprint computes the content fingerprint of a generated artifact from
// its raw front matter and body. A single trailing newline of the front
// matter is ignored.
func Fingerprint(frontmatter []byte, body string) string {
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(frontmatter), "\n"), body)
}

// ArtifactFingerprint computes the fingerprint of a written artifact from its
// file content.
func ArtifactFingerprint(content []byte) (string, error) {
	fm, body, _, err := frontmatter.Split(content)
	if err != nil {
		return "", err
	}
	return Fingerprint(fm, body), nil
}
