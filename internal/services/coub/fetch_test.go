package coub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFilenameFromURL(t *testing.T) {
	if got := FilenameFromURL("https://cdn.example/a/b/file_high.mp4"); got != "file_high.mp4" {
		t.Errorf("Expected 'file_high.mp4', got %q", got)
	}
	if got := FilenameFromURL("https://cdn.example/track.mp3?token=x&ts=1"); got != "track.mp3" {
		t.Errorf("Expected query string stripped, got %q", got)
	}
}

func TestDownloadFile(t *testing.T) {
	payload := []byte("binary media payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	client := &Client{
		mediaClient: &http.Client{Timeout: 5 * time.Second},
		logger:      quietLogger(),
	}

	dest := filepath.Join(t.TempDir(), "media.mp4")
	if err := client.DownloadFile(context.Background(), server.URL+"/media.mp4", dest); err != nil {
		t.Fatalf("DownloadFile failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Errorf("Downloaded content mismatch: %q", got)
	}
}

func TestDownloadFileBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := &Client{
		mediaClient: &http.Client{Timeout: 5 * time.Second},
		logger:      quietLogger(),
	}

	dest := filepath.Join(t.TempDir(), "media.mp4")
	if err := client.DownloadFile(context.Background(), server.URL+"/media.mp4", dest); err == nil {
		t.Fatal("Expected an error for a non-OK response")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("No partial file should remain after a failed download")
	}
}
