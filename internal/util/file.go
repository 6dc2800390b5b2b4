package util

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic writes data to the given path, so that readers either
// see the old or the new content, never a partially written file.
// Missing parent directories are created.
func WriteFileAtomic(path string, data []byte) error {
	parentDir := filepath.Dir(path)
	_, err := os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
