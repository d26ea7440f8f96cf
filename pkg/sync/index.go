package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/iziplay/vufind-api/pkg/database"
	"github.com/iziplay/vufind-api/pkg/solr"
	"github.com/iziplay/vufind-api/pkg/vufind"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	ErrSyncInProgress = errors.New("sync in progress")

	group singleflight.Group
)

// Options used for every document read from a dump. Set from
// VUFIND_EXPAND_FULLRECORD by the command.
var Options = solr.Options{}

// GetLastSync returns the last sync from database
func GetLastSync(ctx context.Context) (*database.Synchronization, error) {
	var sync *database.Synchronization
	err := database.DB.WithContext(ctx).Order("date DESC").First(&sync).Error
	if err != nil {
		return nil, err
	}

	return sync, nil
}

// GetLastCompleteSync returns the last sync that ingested a whole dump
func GetLastCompleteSync(ctx context.Context) (*database.Synchronization, error) {
	var sync *database.Synchronization
	err := database.DB.WithContext(ctx).Where("complete = ?", true).Order("date DESC").First(&sync).Error
	if err != nil {
		return nil, err
	}

	return sync, nil
}

// alreadySynced reports whether the dump identified by base was fully
// ingested by the last complete sync.
func alreadySynced(lastComplete *database.Synchronization, base string) bool {
	return lastComplete != nil && lastComplete.Complete && lastComplete.Base == base
}

// Fingerprint identifies a dump file by name, size and modification time.
func Fingerprint(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(path), fi.Size(), fi.ModTime().Unix()), nil
}

// Sync ingests the dump at path into the database. Concurrent calls for the
// same path wait for and share a single run.
func Sync(ctx context.Context, path string) error {
	_, err, _ := group.Do(path, func() (any, error) {
		return nil, syncFile(ctx, path)
	})
	return err
}

// IsRunning reports whether a sync is currently active.
func IsRunning() bool {
	return GetStats().IsRunning
}

func syncFile(ctx context.Context, path string) error {
	lastSync, err := GetLastCompleteSync(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cannot sync: %w", err)
	}

	base, err := Fingerprint(path)
	if err != nil {
		return fmt.Errorf("cannot sync: %w", err)
	}

	if alreadySynced(lastSync, base) {
		slog.Info("Sync already performed with this dump", "base", base)
		syncRecord := database.Synchronization{
			Date: time.Now(),
			Base: base,
		}
		return database.DB.WithContext(ctx).Create(&syncRecord).Error
	}

	slog.Info("Starting sync", "path", path, "base", base)

	stats := GetStatsInstance()
	stats.StartSync(base, path)
	defer stats.EndSync()

	result := solr.ProcessFile(ctx, path, Options, &vufindProcessor{})
	if result.Error != nil {
		return fmt.Errorf("error processing file %s: %w", result.FilePath, result.Error)
	}

	current := GetStats()
	slog.Info("Sync completed successfully", "records", current.Records, "skipped", current.Skipped+result.Skipped)

	syncRecord := database.Synchronization{
		Date:     time.Now(),
		Base:     base,
		Count:    current.Records,
		Skipped:  current.Skipped + result.Skipped,
		Complete: true,
	}
	return database.DB.WithContext(ctx).Create(&syncRecord).Error
}

type vufindProcessor struct{}

func (*vufindProcessor) Stats(ctx context.Context, path string, percent float64) {
	GetStatsInstance().UpdateProcessed(percent)
}

func (*vufindProcessor) Document(ctx context.Context, doc vufind.Document) {
	rec := vufind.New(doc, true)
	if err := database.UpsertRecord(ctx, rec); err != nil {
		slog.Warn("Skipping record", "id", doc["id"], "error", err)
		GetStatsInstance().AddSkipped()
		return
	}
	GetStatsInstance().AddRecord()
}
