package sync

import (
	"sync"

	"github.com/iziplay/vufind-api/pkg/database"
)

// SyncStats holds the current sync progress information
type SyncStats struct {
	mu        sync.RWMutex
	IsRunning bool    `json:"isRunning"`
	Base      string  `json:"base"`
	Path      string  `json:"path"`
	Processed float64 `json:"processed"` // percentage 0-100
	Records   int     `json:"records"`
	Skipped   int     `json:"skipped"`
}

var stats *SyncStats = &SyncStats{}

// GetStats returns a copy of current sync stats
func GetStats() SyncStats {
	stats.mu.RLock()
	defer stats.mu.RUnlock()

	return SyncStats{
		IsRunning: stats.IsRunning,
		Base:      stats.Base,
		Path:      stats.Path,
		Processed: stats.Processed,
		Records:   stats.Records,
		Skipped:   stats.Skipped,
	}
}

// GetStatsInstance returns the stats instance for updating
func GetStatsInstance() *SyncStats {
	return stats
}

// StartSync initializes sync statistics
func (s *SyncStats) StartSync(base, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.IsRunning = true
	s.Base = base
	s.Path = path
	s.Processed = 0
	s.Records = 0
	s.Skipped = 0
}

// UpdateProcessed updates processing progress of the dump
func (s *SyncStats) UpdateProcessed(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Processed = percent
}

func (s *SyncStats) AddRecord() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records++
}

func (s *SyncStats) AddSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

// EndSync marks the sync as completed and refreshes the stats cache
func (s *SyncStats) EndSync() {
	s.mu.Lock()
	s.IsRunning = false
	s.Base = ""
	s.Path = ""
	s.mu.Unlock()

	database.ComputeAndCacheStats(true)
}
