// Package store persists almanac year data as files or in SQLite.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
)

var (
	// ErrYearNotFound is returned when no data exists for a year.
	ErrYearNotFound = errors.New("year not found")
	// ErrDayNotFound is returned when a year exists but lacks the date.
	ErrDayNotFound = errors.New("day not found")
	// ErrWrongYear is returned by WriteYear when a record is dated outside
	// the year being written.
	ErrWrongYear = errors.New("record outside year")
)

// Store reads and writes whole years of day records.
type Store interface {
	WriteYear(ctx context.Context, year int, y almanac.YearData) error
	ReadYear(ctx context.Context, year int) (almanac.YearData, error)
	Years(ctx context.Context) ([]int, error)
	Close() error
}

// Open builds the backend selected by cfg.
func Open(cfg config.StorageData) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		format, err := almanac.ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		return NewFileStore(cfg.Dir, format)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func yearNotFound(year int) error {
	return fmt.Errorf("%d: %w", year, ErrYearNotFound)
}

// checkYear verifies that every date key of y falls in year.
func checkYear(year int, y almanac.YearData) error {
	for date := range y {
		t, err := almanac.ParseDate(date)
		if err != nil {
			return err
		}
		if t.Year() != year {
			return fmt.Errorf("%s in %d: %w", date, year, ErrWrongYear)
		}
	}
	return nil
}
