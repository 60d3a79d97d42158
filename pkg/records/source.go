package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// maxSeedFileSize is the maximum allowed seed file size (4 MiB).
const maxSeedFileSize = 4 << 20

// ErrFileTooLarge is returned when a seed file exceeds maxSeedFileSize.
var ErrFileTooLarge = errors.New("seed file exceeds maximum allowed size (4 MiB)")

// ErrPathTraversal is returned when a seed file path contains path traversal.
var ErrPathTraversal = errors.New("seed file path contains path traversal")

// Source supplies the initial dataset. It is read once at start-up.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

// StaticSource serves the built-in sample dataset.
type StaticSource struct {
	// Now anchors the relative activity timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Load implements Source.
func (s StaticSource) Load(_ context.Context) (Dataset, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return SeedDataset(now()), nil
}

// FileSource reads a dataset from a YAML file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path.
// Returns an error if the path contains path traversal sequences.
func NewFileSource(path string) (*FileSource, error) {
	cleaned := filepath.Clean(path)
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == ".." {
			return nil, ErrPathTraversal
		}
	}
	return &FileSource{path: cleaned}, nil
}

// Path returns the file read by this source.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads, parses and validates the seed file.
func (s *FileSource) Load(_ context.Context) (Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file %s: %w", s.path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSeedFileSize+1))
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file %s: %w", s.path, err)
	}
	if int64(len(data)) > maxSeedFileSize {
		return Dataset{}, fmt.Errorf("seed file %s: %w", s.path, ErrFileTooLarge)
	}
	ds, err := ParseDataset(data)
	if err != nil {
		return Dataset{}, fmt.Errorf("seed file %s: %w", s.path, err)
	}
	return ds, nil
}

// ParseDataset decodes and validates a YAML dataset. Unknown fields are
// rejected so typos do not silently drop data.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	if err := Validate(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}
