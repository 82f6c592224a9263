package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCoubDecoding(t *testing.T) {
	raw := `{
		"permalink": "abc123",
		"title": "Some Clip",
		"updated_at": "2022-07-15T10:00:00Z",
		"channel": {"title": "Author Name", "permalink": "authorchan"},
		"tags": [{"title": "music"}, {"title": "cats"}],
		"file_versions": {
			"html5": {
				"video": {"high": {"url": "https://cdn.example/v_high.mp4"}},
				"audio": {"med": {"url": "https://cdn.example/a_med.mp3"}}
			}
		},
		"media_blocks": {"external_video": {"url": "https://youtube.example/watch?v=1"}}
	}`

	var coub Coub
	if err := json.Unmarshal([]byte(raw), &coub); err != nil {
		t.Fatalf("Failed to decode coub: %v", err)
	}

	if coub.Permalink != "abc123" {
		t.Errorf("Permalink mismatch: %q", coub.Permalink)
	}
	if coub.LikedAt != "2022-07-15T10:00:00Z" {
		t.Errorf("LikedAt mismatch: %q", coub.LikedAt)
	}
	if coub.FileVersions.HTML5.Video[QualityHigh].URL != "https://cdn.example/v_high.mp4" {
		t.Error("Video variant URL mismatch")
	}
	if coub.FileVersions.HTML5.Audio[QualityMed].URL != "https://cdn.example/a_med.mp3" {
		t.Error("Audio variant URL mismatch")
	}
}

func TestMetadataComment(t *testing.T) {
	coub := Coub{
		Permalink: "abc123",
		Title:     "Some Clip",
		Channel:   Channel{Title: "Author Name", Permalink: "authorchan"},
		Tags:      []Tag{{Title: "music"}, {Title: "cats"}},
	}

	comment := coub.MetadataComment()
	wantLines := []string{
		"Author: Author Name",
		"Link: https://coub.com/authorchan",
		"Original video: https://coub.com/view/abc123",
		"Tags: music;cats",
	}
	for _, line := range wantLines {
		if !strings.Contains(comment, line) {
			t.Errorf("Comment missing line %q:\n%s", line, comment)
		}
	}
	if strings.Contains(comment, "External video") {
		t.Error("Comment must not mention an external video when there is none")
	}

	coub.MediaBlocks.ExternalVideo = &ExternalVideo{URL: "https://youtube.example/watch?v=1"}
	comment = coub.MetadataComment()
	if !strings.Contains(comment, "External video: https://youtube.example/watch?v=1") {
		t.Errorf("Comment missing external video line:\n%s", comment)
	}
}

func TestBatchSummary(t *testing.T) {
	var summary BatchSummary
	for _, outcome := range []Outcome{OutcomeDownloaded, OutcomeDownloaded, OutcomeSkipped, OutcomeAudioAbsent, OutcomeFailed, OutcomeBlacklisted} {
		summary.Add(outcome)
	}

	if summary.Downloaded != 2 || summary.Skipped != 1 || summary.AudioAbsent != 1 || summary.Failed != 1 || summary.Blacklisted != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.Total() != 6 {
		t.Errorf("Expected total 6, got %d", summary.Total())
	}
}
