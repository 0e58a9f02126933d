package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/migrate"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps day records as JSON rows of a days table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and brings
// its schema up to date.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	migrator := migrate.NewMigrator(db, migrate.NewFSProvider(migrations, "migrations", "schema_migrations"))
	if err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}

// WriteYear replaces every row of the year in one transaction.
func (s *SQLiteStore) WriteYear(ctx context.Context, year int, y almanac.YearData) error {
	if err := checkYear(year, y); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM days WHERE year = ?", year); err != nil {
		return fmt.Errorf("failed to clear %d: %w", year, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO days (date, year, record) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, date := range y.Dates() {
		record, err := json.Marshal(y[date])
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", date, err)
		}
		if _, err := stmt.ExecContext(ctx, date, year, string(record)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", date, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ReadYear(ctx context.Context, year int) (almanac.YearData, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT date, record FROM days WHERE year = ?", year)
	if err != nil {
		return nil, fmt.Errorf("failed to query %d: %w", year, err)
	}
	defer rows.Close()

	y := almanac.YearData{}
	for rows.Next() {
		var date, record string
		if err := rows.Scan(&date, &record); err != nil {
			return nil, err
		}
		var r almanac.DayRecord
		if err := json.Unmarshal([]byte(record), &r); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", date, err)
		}
		y[date] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(y) == 0 {
		return nil, yearNotFound(year)
	}
	return y, nil
}

func (s *SQLiteStore) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT year FROM days ORDER BY year")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
