package database

import (
	"errors"
	"sync"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// TypeCount represents a count by type
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CachedStats holds the cached database statistics
type CachedStats struct {
	LastSync         string      `json:"lastSync"`
	Base             string      `json:"base"`
	Count            int         `json:"count"`
	IndexedToday     int         `json:"indexedToday"`
	IndexedThisMonth int         `json:"indexedThisMonth"`
	Identifiers      []TypeCount `json:"identifiers"`
	Formats          []TypeCount `json:"formats"`
}

// statsCache holds the singleton instance
type statsCache struct {
	mu    sync.RWMutex
	stats *CachedStats
}

var cache = &statsCache{}

// GetCachedStats returns the cached stats if available, nil otherwise
func GetCachedStats() *CachedStats {
	if !cache.mu.TryRLock() {
		return nil
	}
	defer cache.mu.RUnlock()

	return cache.stats
}

// ComputeAndCacheStats computes the stats from the database and stores them in cache
func ComputeAndCacheStats(force bool) *CachedStats {
	if force {
		cache.mu.Lock()
	} else {
		if !cache.mu.TryLock() {
			// Another computation is in progress, return nil to indicate stats are not available
			return nil
		}
	}
	defer cache.mu.Unlock()

	stats := &CachedStats{}

	// Get last full sync date
	var lastSync Synchronization
	err := DB.Where("complete = ?", true).Order("date DESC").First(&lastSync).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// never synchronized, cannot compute stats
		return nil
	}
	if err == nil {
		stats.LastSync = lastSync.Date.Format(time.RFC3339)
		stats.Base = lastSync.Base
	}

	var recordCount int64
	DB.Model(&Record{}).Count(&recordCount)
	stats.Count = int(recordCount)

	today, month := indexWindows(time.Now())
	var indexed int64
	DB.Model(&Record{}).Where("last_indexed >= ?", today).Count(&indexed)
	stats.IndexedToday = int(indexed)
	DB.Model(&Record{}).Where("last_indexed >= ?", month).Count(&indexed)
	stats.IndexedThisMonth = int(indexed)

	// Count identifiers by type
	DB.Model(&RecordIdentifier{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&stats.Identifiers)

	// Count records by format
	DB.Model(&Record{}).
		Select("unnest(formats) as type, COUNT(*) as count").
		Group("type").
		Scan(&stats.Formats)

	cache.stats = stats
	return cache.stats
}

// indexWindows returns the start of the day and of the month of t.
func indexWindows(t time.Time) (day, month time.Time) {
	n := now.New(t)
	return n.BeginningOfDay(), n.BeginningOfMonth()
}
