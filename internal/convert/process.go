package convert

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docxposts/internal/converter"
	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/frontmatter"
	"git.home.luguber.info/inful/docxposts/internal/history"
	"git.home.luguber.info/inful/docxposts/internal/logfields"
	"git.home.luguber.info/inful/docxposts/internal/markdown"
	"git.home.luguber.info/inful/docxposts/internal/post"
)

func (s *Service) convertDir(ctx context.Context, src source) (post.Result, error) {
	var res post.Result
	if s.activeRun == "" {
		s.activeRun = history.NewRunID()
		defer func() { s.activeRun = "" }()
	}

	names, err := candidates(src.inputDir)
	if err != nil {
		return res, err
	}
	slog.Debug("Scanned input location",
		logfields.Kind(string(src.kind)), logfields.Path(src.inputDir), slog.Int("candidates", len(names)))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		outcome, err := s.convertOne(ctx, src, name)
		if err != nil {
			return res, err
		}
		res.Record(outcome)
	}
	return res, nil
}

// convertOne handles a single document. The returned error is only set when
// ctx was canceled; every other problem is reported and folded into the outcome.
func (s *Service) convertOne(ctx context.Context, src source, name string) (post.Outcome, error) {
	outcome := post.Outcome{Kind: src.kind, Source: filepath.Join(src.inputDir, name)}

	doc, meta, err := src.parse(name)
	if err != nil {
		return s.skip(ctx, outcome, name, err), nil
	}
	doc.Path = outcome.Source

	outPath := filepath.Join(src.outputDir, meta.OutputName(src.kind))
	outcome.Output = outPath
	if _, err := os.Lstat(outPath); err == nil {
		return s.skip(ctx, outcome, name, errors.AlreadyExists(outPath)), nil
	}

	s.printf("Converting: %s %s -> %s\n", src.kind, name, outPath)
	start := s.now()

	cctx, cancel := context.WithTimeout(ctx, s.cfg.Converter.TimeoutDuration())
	raw, err := s.conv.Convert(cctx, converter.Request{
		Input:    doc.Path,
		From:     converter.FormatDocx,
		To:       converter.FormatMarkdown,
		MediaDir: filepath.Join(s.cfg.Paths.MediaOutput, meta.Slug),
	})
	cancel()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return post.Outcome{}, ctxErr
		}
		return s.fail(ctx, outcome, name, errors.ConversionFailed(name, err)), nil
	}
	s.recorder.ObserveConvertDuration(string(src.kind), s.now().Sub(start))

	mdOpts := markdown.Options{MediaPrefix: s.cfg.Paths.MediaLinkPrefix()}
	body := markdown.Process(raw, meta.Title, mdOpts)
	art, err := frontmatter.Render(src.kind, meta, body, outPath)
	if err != nil {
		return s.fail(ctx, outcome, name, errors.InternalError("render front matter", err)), nil
	}

	// Media for this slug was already extracted above; losing the race below
	// leaves the existing post's media directory rewritten by this document.
	content := art.Bytes()
	if err := writeIfAbsent(art.Path, content); err != nil {
		if stderrors.Is(err, os.ErrExist) {
			return s.skip(ctx, outcome, name, errors.AlreadyExists(outPath)), nil
		}
		return s.fail(ctx, outcome, name, errors.WriteFailed(outPath, err)), nil
	}

	s.checkMedia(name, body, mdOpts)

	outcome.Status = post.StatusConverted
	fingerprint, err := history.ArtifactFingerprint(content)
	if err != nil {
		slog.Warn("Failed to fingerprint artifact", logfields.Output(outPath), logfields.Error(err))
	}
	s.record(ctx, outcome, fingerprint)
	slog.Info("Converted document",
		logfields.Kind(string(src.kind)), logfields.File(name), logfields.Output(outPath),
		logfields.Duration(s.now().Sub(start)))
	return outcome, nil
}

// skip reports a skipped document. The console reason is the error message.
func (s *Service) skip(ctx context.Context, o post.Outcome, name string, err error) post.Outcome {
	reason := err.Error()
	if dpe, ok := errors.As(err); ok {
		reason = dpe.Message
	}
	s.printf("SKIP: %s (%s)\n", name, reason)
	o.Status = post.StatusSkipped
	o.Reason = reason
	s.record(ctx, o, "")
	slog.Debug("Skipped document", logfields.Kind(string(o.Kind)), logfields.File(name), logfields.Reason(reason))
	return o
}

// fail reports a document whose conversion or write failed; the run continues.
func (s *Service) fail(ctx context.Context, o post.Outcome, name string, err error) post.Outcome {
	msg := err.Error()
	if dpe, ok := errors.As(err); ok && dpe.Cause != nil {
		msg = dpe.Cause.Error()
	}
	s.printf("ERROR: %s: %s\n", name, msg)
	o.Status = post.StatusFailed
	o.Reason = msg
	s.record(ctx, o, "")
	slog.Warn("Document not converted", logfields.Kind(string(o.Kind)), logfields.File(name), logfields.Error(err))
	return o
}

func (s *Service) record(ctx context.Context, o post.Outcome, fingerprint string) {
	s.recorder.IncFile(string(o.Kind), string(o.Status))
	if s.history == nil {
		return
	}
	err := s.history.Append(ctx, history.Event{
		RunID:       s.activeRun,
		Kind:        string(o.Kind),
		Source:      o.Source,
		Output:      o.Output,
		Status:      string(o.Status),
		Reason:      o.Reason,
		Fingerprint: fingerprint,
		Timestamp:   s.now(),
	})
	if err != nil {
		slog.Warn("Failed to record history event",
			logfields.File(o.Source), logfields.Status(string(o.Status)), logfields.Error(err))
	}
}

// checkMedia warns about site-root image references missing on disk.
func (s *Service) checkMedia(name, body string, opts markdown.Options) {
	for _, dest := range markdown.SiteRootImages(body, opts) {
		local := filepath.FromSlash(strings.TrimPrefix(dest, "/"))
		if _, err := os.Stat(local); err != nil {
			slog.Warn("Image reference has no extracted media", logfields.File(name), logfields.Path(local))
		}
	}
}
