// Package ffmpeg drives the external ffmpeg binary for the three transforms
// the pipeline needs: audio normalization to PCM WAV, stream-looping video
// to a target duration, and the final copy-video/encode-audio mux.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/config"
)

// Metadata holds the descriptive tags embedded into the muxed output
type Metadata struct {
	Title        string
	Comment      string
	CreationTime string
}

// Service invokes ffmpeg with a bounded per-invocation timeout
type Service struct {
	binary  string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewService creates a new ffmpeg service
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		binary:  cfg.FFmpegPath,
		timeout: cfg.EncodeTimeout,
		logger:  logger,
	}
}

// run executes one ffmpeg invocation and surfaces its stderr on failure
func (s *Service) run(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.WithField("args", strings.Join(args, " ")).Debug("Invoking ffmpeg")

	cmd := exec.CommandContext(ctx, s.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// NormalizeAudio transcodes the fetched audio into the canonical measuring
// format (16-bit signed PCM, 2 channels, 44100 Hz, WAV) and returns the
// duration computed from the normalized file's sample count. Container
// metadata is never trusted for duration.
func (s *Service) NormalizeAudio(ctx context.Context, src, dest string) (float64, error) {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-acodec", "pcm_s16le",
		"-ac", "2",
		"-ar", "44100",
		"-f", "wav",
		dest,
	}
	if err := s.run(ctx, args...); err != nil {
		return 0, fmt.Errorf("normalize audio: %w", err)
	}

	duration, err := WAVDuration(dest)
	if err != nil {
		return 0, fmt.Errorf("normalize audio: %w", err)
	}
	return duration, nil
}

// LoopVideo repeats the source video stream indefinitely and truncates the
// output at the target duration. The video codec stream is copied without
// re-encoding and any source audio is dropped; audio joins at the mux stage.
func (s *Service) LoopVideo(ctx context.Context, src, dest string, seconds float64) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-stream_loop", "-1",
		"-i", src,
		"-t", fmt.Sprintf("%.3f", seconds),
		"-c:v", "copy",
		"-an",
		dest,
	}
	if err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("loop video: %w", err)
	}
	return nil
}

// Mux combines the looped silent video with the original fetched audio:
// video copied verbatim, audio re-encoded to AAC (with experimental feature
// negotiation enabled for older encoders), metadata tags embedded.
func (s *Service) Mux(ctx context.Context, videoPath, audioPath string, meta Metadata, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-strict", "experimental",
		"-metadata", "title=" + meta.Title,
		"-metadata", "comment=" + meta.Comment,
		"-metadata", "creation_time=" + meta.CreationTime,
		dest,
	}
	if err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("mux: %w", err)
	}
	return nil
}
