package coub

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func coubWithVariants(video, audio map[models.Quality]models.MediaVariant) *models.Coub {
	return &models.Coub{
		Permalink: "abc123",
		FileVersions: models.FileVersions{
			HTML5: models.HTML5{Video: video, Audio: audio},
		},
	}
}

func TestResolveVideoURLPreferred(t *testing.T) {
	client := &Client{logger: quietLogger()}
	item := coubWithVariants(map[models.Quality]models.MediaVariant{
		models.QualityHigher: {URL: "https://cdn.example/v_higher.mp4"},
		models.QualityHigh:   {URL: "https://cdn.example/v_high.mp4"},
	}, nil)

	url, err := client.ResolveVideoURL(item, models.QualityHigh)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if url != "https://cdn.example/v_high.mp4" {
		t.Errorf("Expected preferred quality URL, got %q", url)
	}
}

func TestResolveVideoURLFallsBack(t *testing.T) {
	client := &Client{logger: quietLogger()}
	item := coubWithVariants(map[models.Quality]models.MediaVariant{
		models.QualityMed: {URL: "https://cdn.example/v_med.mp4"},
	}, nil)

	url, err := client.ResolveVideoURL(item, models.QualityHigher)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if url != "https://cdn.example/v_med.mp4" {
		t.Errorf("Expected fallback to med, got %q", url)
	}
}

func TestResolveVideoURLNeverEscalates(t *testing.T) {
	client := &Client{logger: quietLogger()}
	// only a higher-ranked variant exists than the one requested
	item := coubWithVariants(map[models.Quality]models.MediaVariant{
		models.QualityHigher: {URL: "https://cdn.example/v_higher.mp4"},
	}, nil)

	_, err := client.ResolveVideoURL(item, models.QualityMed)
	if !errors.Is(err, ErrNoVideo) {
		t.Errorf("Expected ErrNoVideo when only higher qualities exist, got %v", err)
	}
}

func TestResolveVideoURLMissing(t *testing.T) {
	client := &Client{logger: quietLogger()}
	item := coubWithVariants(nil, nil)

	_, err := client.ResolveVideoURL(item, models.QualityHigh)
	if !errors.Is(err, ErrNoVideo) {
		t.Errorf("Expected ErrNoVideo, got %v", err)
	}
}

func TestResolveAudioURLFallsBack(t *testing.T) {
	client := &Client{logger: quietLogger()}
	item := coubWithVariants(nil, map[models.Quality]models.MediaVariant{
		models.QualityMed: {URL: "https://cdn.example/a_med.mp3"},
	})

	url, err := client.ResolveAudioURL(item, models.QualityHigh)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if url != "https://cdn.example/a_med.mp3" {
		t.Errorf("Expected med audio URL, got %q", url)
	}
}

func TestResolveAudioURLAbsent(t *testing.T) {
	client := &Client{logger: quietLogger()}
	item := coubWithVariants(map[models.Quality]models.MediaVariant{
		models.QualityHigh: {URL: "https://cdn.example/v_high.mp4"},
	}, nil)

	_, err := client.ResolveAudioURL(item, models.QualityHigh)
	if !errors.Is(err, ErrNoAudio) {
		t.Errorf("Expected ErrNoAudio for a video-only coub, got %v", err)
	}
}
