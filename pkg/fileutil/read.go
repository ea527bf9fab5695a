package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/changelint/internal/errors"
)

// MaxFileSize bounds how much of a single changelog file is read (4MB).
const MaxFileSize = 4 << 20

// ErrFileTooLarge indicates that input exceeded the read limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadFileWithLimit reads the file at path, failing with ErrFileTooLarge
// when it is bigger than MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", path, info.Size(), MaxFileSize)
	}
	return ReadAllWithLimit(f, MaxFileSize)
}

// ReadAllWithLimit reads r until EOF, failing with ErrFileTooLarge once
// more than limit bytes have been seen.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit %d", limit)
	}
	return data, nil
}
