package convert

import (
	stderrors "errors"
	"log/slog"
	"os"
	"slices"

	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/filename"
	"git.home.luguber.info/inful/docxposts/internal/logfields"
	"git.home.luguber.info/inful/docxposts/internal/post"
)

// source is one input location and the rules for its documents.
type source struct {
	kind      post.Kind
	inputDir  string
	outputDir string
	parse     func(name string) (post.SourceDocument, post.Metadata, error)
}

func (s *Service) postsSource() source {
	return source{
		kind:      post.KindPost,
		inputDir:  s.cfg.Paths.PostsInput,
		outputDir: s.cfg.Paths.PostsOutput,
		parse:     filename.ParsePost,
	}
}

func (s *Service) draftsSource() source {
	return source{
		kind:      post.KindDraft,
		inputDir:  s.cfg.Paths.DraftsInput,
		outputDir: s.cfg.Paths.DraftsOutput,
		parse: func(name string) (post.SourceDocument, post.Metadata, error) {
			doc, meta := filename.ParseDraft(name)
			if doc.Date != "" {
				slog.Debug("Draft filename date discarded", logfields.File(name), slog.String("date", doc.Date))
			}
			return doc, meta, nil
		},
	}
}

// candidates lists the source documents of dir in lexicographic order.
// A missing directory yields no candidates.
func candidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.FileSystemError("read "+dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !filename.IsCandidate(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}
