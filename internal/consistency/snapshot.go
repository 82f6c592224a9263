// Package consistency detects drift between the output tree and a recorded
// snapshot of it, and refreshes the snapshot when drift is found.
package consistency

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/config"
)

// Snapshot maps a relative file path to its content fingerprint
type Snapshot map[string]uint64

// Scan walks a directory tree and fingerprints every regular file
func Scan(dir string) (Snapshot, error) {
	snapshot := Snapshot{}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		sum, err := fingerprint(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snapshot[filepath.ToSlash(rel)] = sum
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return snapshot, nil
}

// fingerprint computes a fast non-cryptographic hash of a file's content
func fingerprint(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hasher.Sum64(), nil
}

// Load reads a persisted snapshot. A missing or unparseable file yields an
// empty snapshot, which any non-empty scan will then be inconsistent with.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, nil
	}
	return snapshot, nil
}

// Save persists a snapshot, fully overwriting any previous state
func Save(snapshot Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ConsistentWith reports whether every entry of the current snapshot is
// present in the saved one with a matching fingerprint
func (s Snapshot) ConsistentWith(saved Snapshot) bool {
	for path, sum := range s {
		savedSum, ok := saved[path]
		if !ok || savedSum != sum {
			return false
		}
	}
	return true
}

// Checker runs the scan/compare/self-heal cycle against one directory
type Checker struct {
	dir          string
	snapshotPath string
	logger       *logrus.Logger
}

// NewChecker creates a checker for the configured output tree
func NewChecker(cfg *config.Config, logger *logrus.Logger) *Checker {
	return &Checker{
		dir:          cfg.OutputDir,
		snapshotPath: cfg.SnapshotFile,
		logger:       logger,
	}
}

// Run scans the directory, compares against the persisted snapshot and, on
// any drift, overwrites the snapshot with the fresh scan. Returns whether
// the tree was consistent before any healing.
func (c *Checker) Run() (bool, error) {
	current, err := Scan(c.dir)
	if err != nil {
		return false, err
	}

	saved, err := Load(c.snapshotPath)
	if err != nil {
		return false, err
	}

	if !current.ConsistentWith(saved) {
		if err := Save(current, c.snapshotPath); err != nil {
			return false, err
		}
		c.logger.WithFields(logrus.Fields{
			"dir":   c.dir,
			"files": len(current),
		}).Info("Inconsistency found, snapshot updated")
		return false, nil
	}

	c.logger.WithField("files", len(current)).Info("All files consistent")
	return true, nil
}
