package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chrissnell/skyalmanac/pkg/almanac"
)

// FileStore keeps one file per year in a directory, named like 1993.json.
type FileStore struct {
	dir    string
	format almanac.Format
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string, format almanac.Format) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, format: format}, nil
}

func (s *FileStore) path(year int) string {
	return filepath.Join(s.dir, s.format.FileName(year))
}

// WriteYear replaces the year file atomically.
func (s *FileStore) WriteYear(ctx context.Context, year int, y almanac.YearData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkYear(year, y); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".year-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := almanac.Encode(tmp, y, s.format); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %d: %w", year, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(year)); err != nil {
		return fmt.Errorf("failed to write %d: %w", year, err)
	}
	return nil
}

func (s *FileStore) ReadYear(ctx context.Context, year int) (almanac.YearData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(year))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, yearNotFound(year)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return almanac.Decode(f, s.format)
}

// Years lists the years with a file in the store's format.
func (s *FileStore) Years(ctx context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	suffix := "." + s.format.Ext()
	var years []int
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), suffix)
		if !ok || e.IsDir() {
			continue
		}
		if y, err := strconv.Atoi(name); err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years, nil
}

func (s *FileStore) Close() error { return nil }
