package dataset

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"geolocations/internal/config"
)

// ErrObjectNotFound is returned by a Source when the requested key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Source provides read access to the files of a dataset snapshot.
// Keys are slash-separated paths such as "countries.json" or "locations/US.json".
type Source interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

//go:embed sample
var sample embed.FS

// SampleFS returns the small dataset bundled with the binary.
func SampleFS() fs.FS {
	sub, err := fs.Sub(sample, "sample")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

// NewSource builds the Source selected by cfg.Source: "embedded", "dir" or "minio".
func NewSource(cfg config.DatasetConfig) (Source, error) {
	switch cfg.Source {
	case "", "embedded":
		return NewFSSource(SampleFS()), nil
	case "dir":
		return NewDirSource(cfg.Dir)
	case "minio":
		return NewMinIOSource(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

type fsSource struct {
	fsys fs.FS
}

// NewFSSource serves keys from fsys.
func NewFSSource(fsys fs.FS) Source {
	return &fsSource{fsys: fsys}
}

// NewDirSource serves keys from a directory on the local filesystem.
func NewDirSource(dir string) (Source, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("dataset dir: %s is not a directory", dir)
	}
	return NewFSSource(os.DirFS(dir)), nil
}

func (s *fsSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Rejects "..", absolute paths and empty elements.
	if !fs.ValidPath(key) {
		return nil, ErrObjectNotFound
	}
	f, err := s.fsys.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return f, nil
}
