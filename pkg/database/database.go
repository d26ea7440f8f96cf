package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/iziplay/vufind-api/pkg/isbn"
	"github.com/iziplay/vufind-api/pkg/vufind"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DB is the GORM database instance
var DB *gorm.DB

var ErrNoID = errors.New("record without id")

// Connect opens the database configured by the POSTGRES_* environment
// variables and migrates the schema.
func Connect() error {
	var err error

	DB, err = gorm.Open(postgres.Open(fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DATABASE"),
		os.Getenv("POSTGRES_PORT"),
	)), &gorm.Config{
		Logger: logger.New(
			log.Default(),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "vufind_",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connection established")

	return AutoMigrate()
}

// AutoMigrate runs automatic migration for all models
func AutoMigrate() error {
	log.Println("Running auto migration...")

	// Enable pg_trgm extension for trigram-based ILIKE indexes
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
		return fmt.Errorf("failed to create pg_trgm extension: %w", err)
	}

	err := DB.AutoMigrate(
		&Record{},
		&RecordIdentifier{},
		&Synchronization{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Println("Auto migration completed successfully")
	return nil
}

// Ping checks the database connection
func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// sanitizeString removes null bytes which PostgreSQL rejects in text fields
func sanitizeString(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func sanitizeAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = sanitizeString(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return sanitizeString(values[0])
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// NewRecord maps a VuFind record to its database row and identifiers. A
// malformed index timestamp is returned as error.
func NewRecord(rec *vufind.Record) (Record, []RecordIdentifier, error) {
	id := first(rec.ID())
	if id == "" {
		return Record{}, nil, ErrNoID
	}

	firstIndexed, err := rec.FirstIndexedTime()
	if err != nil {
		return Record{}, nil, err
	}
	lastIndexed, err := rec.LastIndexedTime()
	if err != nil {
		return Record{}, nil, err
	}

	record := Record{
		ID:           id,
		Title:        first(rec.Title()),
		Authors:      pq.StringArray(sanitizeAll(rec.Author())),
		Formats:      pq.StringArray(sanitizeAll(rec.Format())),
		Languages:    pq.StringArray(sanitizeAll(rec.Language())),
		Publishers:   pq.StringArray(sanitizeAll(rec.Publisher())),
		Institutions: pq.StringArray(sanitizeAll(rec.Institution())),
		PublishDate:  first(rec.PublishDate()),
		RecordFormat: first(rec.RecordFormat()),
		HierarchyTop: first(rec.HierarchyTopID()),
		FirstIndexed: timePtr(firstIndexed),
		LastIndexed:  timePtr(lastIndexed),
	}
	if t, ok := rec.MarcLatestTransactionTime(); ok {
		record.MarcLatestTransaction = timePtr(t)
	}
	if t, ok := rec.MarcDateEnteredDate(); ok {
		record.MarcDateEntered = timePtr(t)
	}

	seen := make(map[[2]string]bool)
	var identifiers []RecordIdentifier
	add := func(typ, value string) {
		value = sanitizeString(strings.TrimSpace(value))
		if value == "" || seen[[2]string{typ, value}] {
			return
		}
		seen[[2]string{typ, value}] = true
		identifiers = append(identifiers, RecordIdentifier{Record: id, Type: typ, Value: value})
	}
	for _, v := range rec.ISBN() {
		isbn10, isbn13 := isbn.Variants(v)
		add(IdentifierISBN10, isbn10)
		add(IdentifierISBN13, isbn13)
	}
	for _, v := range rec.ISSN() {
		add(IdentifierISSN, v)
	}
	for _, v := range rec.Ctrlnum() {
		add(IdentifierCtrlnum, v)
	}
	for _, v := range rec.DOI() {
		add(IdentifierDOI, strings.ToLower(v))
	}

	return record, identifiers, nil
}

// UpsertRecord creates or updates a record and its identifiers from a VuFind
// record
func UpsertRecord(ctx context.Context, rec *vufind.Record) error {
	record, identifiers, err := NewRecord(rec)
	if err != nil {
		return err
	}

	// Upsert the record using ON CONFLICT
	if err := DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "authors", "formats", "languages", "publishers", "institutions",
			"publish_date", "record_format", "hierarchy_top", "first_indexed", "last_indexed",
			"marc_latest_transaction", "marc_date_entered", "updated_at",
		}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	if len(identifiers) > 0 {
		if err := DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record"}, {Name: "type"}, {Name: "value"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&identifiers).Error; err != nil {
			return fmt.Errorf("failed to upsert identifiers: %w", err)
		}
	}

	return nil
}

// GetRecord loads a record with its identifiers.
func GetRecord(ctx context.Context, id string) (*Record, error) {
	var record Record
	if err := DB.WithContext(ctx).
		Preload("Identifiers").
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
