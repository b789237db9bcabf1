package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/sheaf/internal/errors"
)

// MaxConfigSize bounds the config files the loader reads.
const MaxConfigSize int64 = 1 << 20

// ErrFileTooLarge marks a file rejected by ReadLimited.
var ErrFileTooLarge = errors.New("file too large")

// ErrIsDirectory marks a config path naming a directory.
var ErrIsDirectory = errors.New("is a directory")

// ReadLimited reads path, failing with ErrFileTooLarge when it holds more
// than limit bytes. A missing file yields an error matching fs.ErrNotExist.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.Wrapf(ErrIsDirectory, "%s", path)
		}
		if info.Size() > limit {
			return nil, tooLarge(path, info.Size(), limit)
		}
	}

	// The size may change between Stat and the read.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, tooLarge(path, int64(len(data)), limit)
	}
	return data, nil
}

func tooLarge(path string, size, limit int64) error {
	return errors.Wrapf(ErrFileTooLarge, "%s: %d bytes, limit is %d", path, size, limit)
}
