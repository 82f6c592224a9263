package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store holding download history
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// RecordOutcome upserts the history entry for a coub, keyed by permalink
func (db *Database) RecordOutcome(permalink, title string, outcome Outcome, outputPath, failureReason string) error {
	record, err := db.GetRecordByPermalink(permalink)
	if err != nil {
		if !errors.Is(err, bolthold.ErrNotFound) {
			return err
		}
		record = &DownloadRecord{
			Permalink: permalink,
			CreatedAt: time.Now(),
		}
		record.Title = title
		record.Outcome = outcome
		record.OutputPath = outputPath
		record.FailureReason = failureReason
		record.UpdatedAt = time.Now()
		return db.store.Insert(bolthold.NextSequence(), record)
	}

	record.Title = title
	record.Outcome = outcome
	record.OutputPath = outputPath
	record.FailureReason = failureReason
	record.UpdatedAt = time.Now()
	return db.store.Update(record.ID, record)
}

// GetRecordByPermalink retrieves the history entry for a coub
func (db *Database) GetRecordByPermalink(permalink string) (*DownloadRecord, error) {
	var record DownloadRecord
	err := db.store.FindOne(&record, bolthold.Where("Permalink").Eq(permalink))
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRecordsByOutcome retrieves all history entries with a given outcome
func (db *Database) GetRecordsByOutcome(outcome Outcome) ([]*DownloadRecord, error) {
	var records []*DownloadRecord
	err := db.store.Find(&records, bolthold.Where("Outcome").Eq(outcome))
	return records, err
}

// GetAllRecords retrieves every history entry
func (db *Database) GetAllRecords() ([]*DownloadRecord, error) {
	var records []*DownloadRecord
	err := db.store.Find(&records, nil)
	return records, err
}
