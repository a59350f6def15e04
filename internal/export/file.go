package export

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/progressboard/internal/filex"
)

// FileSink writes objects into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates dir when missing.
func NewFileSink(dir string) (*FileSink, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileSink{dir: abs}, nil
}

func (s *FileSink) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
