// Package filename derives post metadata from document filenames.
//
// Two grammars are recognized:
//
//	YYYY-MM-DD-Title.docx   dated post
//	YYYY-MM-Title.docx      dated post, day defaults to 01
//	Title.docx              draft (a leading date is accepted and discarded)
package filename

import (
	"regexp"
	"strings"
	"time"

	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/post"
	"git.home.luguber.info/inful/docxposts/internal/slug"
)

// Extension is the source document suffix, matched case-insensitively.
const Extension = ".docx"

// PostGrammar describes the accepted post filenames in skip messages.
const PostGrammar = "YYYY-MM-DD-Title.docx or YYYY-MM-Title.docx"

// DraftFallbackSlug is used when a draft title has no sluggable characters.
const DraftFallbackSlug = "untitled"

var postPattern = regexp.MustCompile(`^(\d{4})-(\d{2})(?:-(\d{2}))?-(.+)\.(?i:docx)$`)

// IsCandidate reports whether name is a source document worth parsing.
// Word lock files (~$Title.docx) and hidden files are not candidates.
func IsCandidate(name string) bool {
	if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
		return false
	}
	return hasExtension(name)
}

func hasExtension(name string) bool {
	return len(name) > len(Extension) && strings.EqualFold(name[len(name)-len(Extension):], Extension)
}

// ParsePost parses a dated post filename. Names that do not follow the post
// grammar, carry an impossible date, or have a title without any sluggable
// characters yield an error wrapping errors.ErrUnrecognizedFilename.
func ParsePost(name string) (post.SourceDocument, post.Metadata, error) {
	m := postPattern.FindStringSubmatch(name)
	if m == nil {
		return post.SourceDocument{}, post.Metadata{}, errors.UnrecognizedFilename(name, PostGrammar)
	}

	year, month, day, rawTitle := m[1], m[2], m[3], m[4]
	if day == "" {
		day = "01"
	}
	date := year + "-" + month + "-" + day
	if _, err := time.Parse(post.DateLayout, date); err != nil {
		return post.SourceDocument{}, post.Metadata{}, errors.UnrecognizedFilename(name, PostGrammar).
			WithContext("date", date)
	}

	s := slug.Normalize(rawTitle)
	if s == "" {
		return post.SourceDocument{}, post.Metadata{}, errors.UnrecognizedFilename(name, PostGrammar).
			WithContext("title", rawTitle)
	}

	doc := post.SourceDocument{
		Kind:     post.KindPost,
		Filename: name,
		Date:     date,
		RawTitle: rawTitle,
	}
	return doc, post.Metadata{Date: date, Title: displayTitle(rawTitle), Slug: s}, nil
}

// ParseDraft parses a draft filename. It never fails for a candidate name.
// A dated prefix is stripped; the date is kept on the SourceDocument for
// reporting but never reaches the Metadata.
func ParseDraft(name string) (post.SourceDocument, post.Metadata) {
	doc := post.SourceDocument{Kind: post.KindDraft, Filename: name}

	if m := postPattern.FindStringSubmatch(name); m != nil {
		day := m[3]
		if day == "" {
			day = "01"
		}
		doc.Date = m[1] + "-" + m[2] + "-" + day
		doc.RawTitle = m[4]
	} else {
		doc.RawTitle = trimExtension(name)
	}

	s := slug.Normalize(doc.RawTitle)
	if s == "" {
		s = DraftFallbackSlug
	}
	return doc, post.Metadata{Title: displayTitle(doc.RawTitle), Slug: s}
}

// displayTitle renders filename hyphens as spaces.
func displayTitle(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "-", " "))
}

func trimExtension(name string) string {
	if hasExtension(name) {
		return name[:len(name)-len(Extension)]
	}
	return name
}
