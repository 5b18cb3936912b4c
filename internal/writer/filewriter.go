package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DefaultFileMode is the permission of files created by FileWriter.
const DefaultFileMode os.FileMode = 0o644

// ErrLocked indicates another writer holds the path's lock file.
var ErrLocked = errors.New("writer: output is locked by another process")

// FileWriter writes the encoded file to Path.
type FileWriter struct {
	Path string
	Mode os.FileMode // DefaultFileMode when zero

	// Atomic writes a temp file in the same directory and renames it over
	// Path, so readers never observe a partial file.
	Atomic bool
	// Lock holds an advisory flock on "<Path>.lock" for the duration of the
	// write and fails with ErrLocked when it is already held.
	Lock bool
}

// NewFileWriter returns an atomic, locking writer for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{Path: path, Mode: DefaultFileMode, Atomic: true, Lock: true}
}

// WriteAVI writes buf to the configured path.
func (w *FileWriter) WriteAVI(buf []byte) error {
	if w.Lock {
		lock := flock.New(w.Path + ".lock")
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("%s: %w", w.Path, ErrLocked)
		}
		defer func() {
			_ = lock.Unlock()
			_ = os.Remove(lock.Path())
		}()
	}

	mode := w.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}
	if !w.Atomic {
		if err := os.WriteFile(w.Path, buf, mode); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		return nil
	}
	return writeAtomic(w.Path, buf, mode)
}

func writeAtomic(path string, buf []byte, mode os.FileMode) error {
	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".avikit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(buf); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmpFile = nil // Don't clean up in defer

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
