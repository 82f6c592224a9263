package consistency

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/config"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckerSelfHeals(t *testing.T) {
	base := t.TempDir()
	videos := filepath.Join(base, "videos")
	writeFile(t, filepath.Join(videos, "2022", "07", "abc123.mp4"), "video one")
	writeFile(t, filepath.Join(videos, "2022", "08", "xyz9.mp4"), "video two")

	cfg := &config.Config{
		OutputDir:    videos,
		SnapshotFile: filepath.Join(base, "file_names.json"),
	}
	checker := NewChecker(cfg, quietLogger())

	// first run: no snapshot yet, drift found, snapshot written
	consistent, err := checker.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consistent {
		t.Error("First run against an empty snapshot should report drift")
	}

	// snapshot now matches the tree
	consistent, err = checker.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !consistent {
		t.Error("Second run should report a consistent tree")
	}

	// content change is drift even with the same filename
	writeFile(t, filepath.Join(videos, "2022", "07", "abc123.mp4"), "tampered")
	consistent, err = checker.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consistent {
		t.Error("Changed file content should report drift")
	}

	// and the snapshot healed itself again
	consistent, err = checker.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !consistent {
		t.Error("Snapshot should have been refreshed after drift")
	}
}

func TestScanMissingDirectory(t *testing.T) {
	snapshot, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Scan of a missing directory should not error: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("Expected empty snapshot, got %d entries", len(snapshot))
	}
}

func TestLoadBadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	writeFile(t, path, "{not json")

	snapshot, err := Load(path)
	if err != nil {
		t.Fatalf("Load of an unparseable snapshot should not error: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("Expected empty snapshot for unparseable state, got %d entries", len(snapshot))
	}
}
