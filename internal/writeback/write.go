// Package writeback writes generated output files.
package writeback

import (
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"gitlab.com/tozd/go/errors"
)

// WriteAtomic replaces name in fsys with content. The content is written to
// a temp file in the same directory first, then renamed over name, so
// readers never observe a partial file. An existing file keeps its mode.
func WriteAtomic(fsys billy.Filesystem, name string, content []byte) error {
	dir := filepath.Dir(name)
	if dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("create dir %s: %w", dir, err)
		}
	}

	tmp, err := fsys.TempFile(dir, ".resolvecfg-*")
	if err != nil {
		return errors.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return errors.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return errors.Errorf("close temp: %w", err)
	}

	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	if ch, ok := fsys.(billy.Change); ok {
		_ = ch.Chmod(tmpName, mode) // best-effort permission sync
	}

	if err := fsys.Rename(tmpName, name); err != nil {
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return errors.Errorf("rename temp to %s: %w", name, err)
	}
	return nil
}
