package coub

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/models"
)

// ErrNoAudio means the coub carries no usable audio variant. Video-only
// coubs are an expected case, not a failure.
var ErrNoAudio = errors.New("coub has no audio variant")

// ErrNoVideo means no video variant exists at any quality. Video is
// mandatory, so this fails the item.
var ErrNoVideo = errors.New("no video variant available")

// rankIndex returns the position of quality in the ranked list, or the list
// length when the quality is unknown (no fallback candidates)
func rankIndex(ranked []models.Quality, quality models.Quality) int {
	for i, candidate := range ranked {
		if candidate == quality {
			return i
		}
	}
	return len(ranked)
}

// resolveURL picks the URL at the preferred quality, or the first available
// URL at a lower rank. It never escalates above the requested rank.
func resolveURL(variants map[models.Quality]models.MediaVariant, ranked []models.Quality, preferred models.Quality) (string, bool, bool) {
	if variant, ok := variants[preferred]; ok && variant.URL != "" {
		return variant.URL, true, false
	}

	for i := rankIndex(ranked, preferred); i < len(ranked); i++ {
		if variant, ok := variants[ranked[i]]; ok && variant.URL != "" {
			return variant.URL, true, true
		}
	}

	return "", false, false
}

// ResolveVideoURL returns the best available video URL for a coub at or
// below the preferred quality
func (c *Client) ResolveVideoURL(coub *models.Coub, quality models.Quality) (string, error) {
	url, found, fellBack := resolveURL(coub.FileVersions.HTML5.Video, models.VideoQualities, quality)
	if fellBack {
		c.logger.WithFields(logrus.Fields{
			"permalink": coub.Permalink,
			"quality":   quality,
		}).Warn("Video quality not available, fell back to a lower quality")
	}
	if !found {
		return "", fmt.Errorf("%w for coub %s", ErrNoVideo, coub.Permalink)
	}
	return url, nil
}

// ResolveAudioURL returns the best available audio URL for a coub at or
// below the preferred quality, or ErrNoAudio for video-only coubs
func (c *Client) ResolveAudioURL(coub *models.Coub, quality models.Quality) (string, error) {
	variants := coub.FileVersions.HTML5.Audio
	if len(variants) == 0 {
		return "", ErrNoAudio
	}

	url, found, fellBack := resolveURL(variants, models.AudioQualities, quality)
	if fellBack {
		c.logger.WithFields(logrus.Fields{
			"permalink": coub.Permalink,
			"quality":   quality,
		}).Warn("Audio quality not available, fell back to a lower quality")
	}
	if !found {
		return "", ErrNoAudio
	}
	return url, nil
}
