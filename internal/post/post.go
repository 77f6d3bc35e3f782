// Package post holds the domain types shared by the parser, the markdown
// pipeline and the conversion orchestrator.
package post

import "time"

// Kind distinguishes dated posts from undated drafts.
type Kind string

const (
	KindPost  Kind = "post"
	KindDraft Kind = "draft"
)

// DateLayout is the layout of Metadata.Date and of post filename prefixes.
const DateLayout = "2006-01-02"

// SourceDocument is one word-processor file discovered in an input directory.
type SourceDocument struct {
	Kind     Kind
	Filename string // base name as found on disk
	Path     string // full path to the file
	Date     string // YYYY-MM-DD; empty for drafts
	RawTitle string // title portion of the filename, hyphens preserved
}

// Metadata is derived deterministically from a SourceDocument.
type Metadata struct {
	Date  string // YYYY-MM-DD; empty for drafts
	Title string // display title
	Slug  string // [a-z0-9-]
}

// Time parses Date. ok is false for drafts.
func (m Metadata) Time() (t time.Time, ok bool) {
	if m.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, m.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OutputName is the markdown filename for the given kind.
func (m Metadata) OutputName(kind Kind) string {
	if kind == KindPost {
		return m.Date + "-" + m.Slug + ".md"
	}
	return m.Slug + ".md"
}

// FrontMatterDelimiter opens and closes the front matter block.
const FrontMatterDelimiter = "---\n"

// Artifact is the rendered output of one successful conversion. It is built
// once and written once; an existing file at Path is never replaced.
type Artifact struct {
	Path        string
	FrontMatter []byte // YAML without delimiters
	Body        string
}

// Bytes returns the file content: the delimited front matter, one blank
// line, then the body.
func (a Artifact) Bytes() []byte {
	out := make([]byte, 0, 2*len(FrontMatterDelimiter)+len(a.FrontMatter)+1+len(a.Body))
	out = append(out, FrontMatterDelimiter...)
	out = append(out, a.FrontMatter...)
	out = append(out, FrontMatterDelimiter...)
	out = append(out, '\n')
	out = append(out, a.Body...)
	return out
}

// Status is the per-file outcome.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one source file.
type Outcome struct {
	Kind   Kind
	Source string
	Output string
	Status Status
	Reason string
}

// Result aggregates a run. Failed files count as skipped.
type Result struct {
	Converted int
	Skipped   int
	Outcomes  []Outcome
}

// Record tallies an outcome.
func (r *Result) Record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Status == StatusConverted {
		r.Converted++
		return
	}
	r.Skipped++
}

// Add merges other into r.
func (r *Result) Add(other Result) {
	r.Converted += other.Converted
	r.Skipped += other.Skipped
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

// Failed returns the outcomes whose conversion failed.
func (r Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}
