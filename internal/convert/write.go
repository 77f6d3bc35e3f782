package convert

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
)

// writeIfAbsent creates path with data unless it already exists. The content
// is staged in a temp file in the same directory and hard-linked into place,
// so readers never see a partial file and an existing file is never replaced.
// An existing path yields an error matching os.ErrExist. Only the markdown
// file is guarded; media the converter extracted beforehand is already on disk.
func writeIfAbsent(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	err = os.Link(tmpName, path)
	if err == nil {
		return nil
	}
	if stderrors.Is(err, os.ErrExist) {
		return fmt.Errorf("link %s: %w", path, err)
	}
	// Filesystems without hard links fall back to an exclusive create.
	return createExclusive(path, data)
}

func createExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
