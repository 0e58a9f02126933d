package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"golang.org/x/sync/singleflight"
)

// YearCache keeps decoded years in memory. Concurrent misses for the same
// year share one read of the backing store.
type YearCache struct {
	store Store
	group singleflight.Group

	mu    sync.RWMutex
	years map[int]almanac.YearData
}

// NewYearCache wraps s.
func NewYearCache(s Store) *YearCache {
	return &YearCache{store: s, years: make(map[int]almanac.YearData)}
}

// Year returns the data for year, reading the store on the first request.
// Errors are not cached.
func (c *YearCache) Year(ctx context.Context, year int) (almanac.YearData, error) {
	c.mu.RLock()
	y, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return y, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(year), func() (interface{}, error) {
		y, err := c.store.ReadYear(ctx, year)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.years[year] = y
		c.mu.Unlock()
		return y, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(almanac.YearData), nil
}

// Day returns the record for a YYYY-MM-DD date.
func (c *YearCache) Day(ctx context.Context, date string) (almanac.DayRecord, error) {
	t, err := almanac.ParseDate(date)
	if err != nil {
		return almanac.DayRecord{}, err
	}
	y, err := c.Year(ctx, t.Year())
	if err != nil {
		return almanac.DayRecord{}, err
	}
	r, ok := y[date]
	if !ok {
		return almanac.DayRecord{}, fmt.Errorf("%s: %w", date, ErrDayNotFound)
	}
	return r, nil
}

// Invalidate drops a cached year so the next request rereads it.
func (c *YearCache) Invalidate(year int) {
	c.mu.Lock()
	delete(c.years, year)
	c.mu.Unlock()
}

// Len is the number of cached years.
func (c *YearCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.years)
}
