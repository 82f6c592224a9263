package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/config"
	"github.com/amaumene/coubarr/internal/models"
	"github.com/amaumene/coubarr/internal/services/coub"
	"github.com/amaumene/coubarr/internal/services/ffmpeg"
	"github.com/amaumene/coubarr/internal/utils"
)

// CoubService is the part of the coub client the download pipeline uses
type CoubService interface {
	ResolveVideoURL(coub *models.Coub, quality models.Quality) (string, error)
	ResolveAudioURL(coub *models.Coub, quality models.Quality) (string, error)
	DownloadFile(ctx context.Context, url, dest string) error
}

// Encoder is the part of the ffmpeg service the download pipeline uses
type Encoder interface {
	NormalizeAudio(ctx context.Context, src, dest string) (float64, error)
	LoopVideo(ctx context.Context, src, dest string, seconds float64) error
	Mux(ctx context.Context, videoPath, audioPath string, meta ffmpeg.Metadata, dest string) error
}

// DownloadController drives coubs through the download-and-mux pipeline
type DownloadController struct {
	db        *models.Database
	coubs     CoubService
	encoder   Encoder
	blacklist *utils.Blacklist

	videoQuality models.Quality
	audioQuality models.Quality
	outputDir    string
	tempDir      string

	logger *logrus.Logger
}

// NewDownloadController creates a new download controller
func NewDownloadController(db *models.Database, coubService CoubService, encoder Encoder, blacklist *utils.Blacklist, cfg *config.Config, logger *logrus.Logger) *DownloadController {
	return &DownloadController{
		db:           db,
		coubs:        coubService,
		encoder:      encoder,
		blacklist:    blacklist,
		videoQuality: cfg.VideoQuality,
		audioQuality: cfg.AudioQuality,
		outputDir:    cfg.OutputDir,
		tempDir:      cfg.TempDir,
		logger:       logger,
	}
}

// ProcessAll processes coubs one at a time, in listing order. One coub's
// failure never aborts the batch; cancellation is honored between items so
// completed outputs stay valid.
func (c *DownloadController) ProcessAll(ctx context.Context, coubs []models.Coub) (models.BatchSummary, error) {
	var summary models.BatchSummary

	bar := progressbar.NewOptions(len(coubs),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowCount(),
	)

	for i := range coubs {
		if err := ctx.Err(); err != nil {
			c.logSummary(summary)
			return summary, err
		}

		item := &coubs[i]
		c.logger.WithFields(logrus.Fields{
			"index":     i + 1,
			"total":     len(coubs),
			"permalink": item.Permalink,
			"filename":  utils.OutputFilename(item.Title, item.Permalink),
		}).Info("Processing coub")

		outcome, err := c.ProcessCoub(ctx, item)
		if err != nil {
			outcome = models.OutcomeFailed
			c.logger.WithError(err).WithField("permalink", item.Permalink).Error("Failed to process coub")
		}

		failureReason := ""
		if err != nil {
			failureReason = err.Error()
		}
		outPath := utils.OutputPath(c.outputDir, item.LikedAt, item.Title, item.Permalink)
		if dbErr := c.db.RecordOutcome(item.Permalink, item.Title, outcome, outPath, failureReason); dbErr != nil {
			c.logger.WithError(dbErr).Warn("Failed to record outcome")
		}

		summary.Add(outcome)
		_ = bar.Add(1)
	}

	c.logSummary(summary)
	return summary, nil
}

func (c *DownloadController) logSummary(summary models.BatchSummary) {
	c.logger.WithFields(logrus.Fields{
		"downloaded":   summary.Downloaded,
		"skipped":      summary.Skipped,
		"audio_absent": summary.AudioAbsent,
		"blacklisted":  summary.Blacklisted,
		"failed":       summary.Failed,
		"total":        summary.Total(),
	}).Info("Download run finished")
}

// ProcessCoub drives a single coub end-to-end: resolve media URLs, fetch
// both assets, normalize audio to measure duration, loop the video to that
// duration and mux the result into place. Every temp path belongs to the
// job and is removed on every exit path.
func (c *DownloadController) ProcessCoub(ctx context.Context, item *models.Coub) (models.Outcome, error) {
	if c.blacklist != nil {
		texts := append([]string{item.Title}, item.TagTitles()...)
		if matched, term := c.blacklist.MatchesAny(texts...); matched {
			c.logger.WithFields(logrus.Fields{
				"permalink": item.Permalink,
				"term":      term,
			}).Info("Coub matches blacklist, skipping")
			return models.OutcomeBlacklisted, nil
		}
	}

	outPath := utils.OutputPath(c.outputDir, item.LikedAt, item.Title, item.Permalink)
	if _, err := os.Stat(outPath); err == nil {
		c.logger.WithField("path", outPath).Info("Output already exists, skipping")
		return models.OutcomeSkipped, nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return models.OutcomeFailed, fmt.Errorf("failed to create output directory: %w", err)
	}

	job := models.NewDownloadJob(item.Permalink, outPath)
	defer func() {
		if err := job.Cleanup(); err != nil {
			c.logger.WithError(err).WithField("permalink", job.Permalink).Warn("Failed to remove temporary files")
		}
	}()

	job.Status = models.StatusResolving
	videoURL, err := c.coubs.ResolveVideoURL(item, c.videoQuality)
	if err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, fmt.Errorf("resolve video: %w", err)
	}

	audioURL, err := c.coubs.ResolveAudioURL(item, c.audioQuality)
	audioAbsent := false
	if err != nil {
		if !errors.Is(err, coub.ErrNoAudio) {
			job.Status = models.StatusFailed
			return models.OutcomeFailed, fmt.Errorf("resolve audio: %w", err)
		}
		audioAbsent = true
	}

	job.Status = models.StatusFetching
	if audioAbsent {
		// Video-only coub: no normalization, looping or muxing, the
		// fetched video itself becomes the output.
		videoTemp := job.RegisterTemp(filepath.Join(c.tempDir, item.Permalink+"_video.mp4"))
		if err := c.coubs.DownloadFile(ctx, videoURL, videoTemp); err != nil {
			job.Status = models.StatusFailed
			return models.OutcomeFailed, fmt.Errorf("fetch video: %w", err)
		}
		if err := os.Rename(videoTemp, outPath); err != nil {
			job.Status = models.StatusFailed
			return models.OutcomeFailed, fmt.Errorf("move video into place: %w", err)
		}
		job.Status = models.StatusDone
		c.logger.WithField("permalink", item.Permalink).Info("Coub has no audio track, stored video as-is")
		return models.OutcomeAudioAbsent, nil
	}

	audioTemp := job.RegisterTemp(filepath.Join(c.tempDir, item.Permalink+"_"+coub.FilenameFromURL(audioURL)))
	videoTemp := job.RegisterTemp(filepath.Join(c.tempDir, item.Permalink+"_"+coub.FilenameFromURL(videoURL)))
	wavTemp := job.RegisterTemp(filepath.Join(c.tempDir, item.Permalink+".wav"))
	loopedTemp := job.RegisterTemp(filepath.Join(c.tempDir, item.Permalink+"_tmp.mp4"))
	muxTemp := job.RegisterTemp(filepath.Join(c.tempDir, item.Permalink+"_mux.mp4"))

	if err := c.coubs.DownloadFile(ctx, audioURL, audioTemp); err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, fmt.Errorf("fetch audio: %w", err)
	}
	if err := c.coubs.DownloadFile(ctx, videoURL, videoTemp); err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, fmt.Errorf("fetch video: %w", err)
	}

	job.Status = models.StatusNormalizing
	duration, err := c.encoder.NormalizeAudio(ctx, audioTemp, wavTemp)
	if err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, err
	}

	job.Status = models.StatusLooping
	if err := c.encoder.LoopVideo(ctx, videoTemp, loopedTemp, duration); err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, err
	}

	job.Status = models.StatusMuxing
	meta := ffmpeg.Metadata{
		Title:        item.Title,
		Comment:      item.MetadataComment(),
		CreationTime: item.LikedAt,
	}
	// The mux uses the original fetched audio, not the WAV intermediate;
	// normalization exists only to measure duration.
	if err := c.encoder.Mux(ctx, loopedTemp, audioTemp, meta, muxTemp); err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, err
	}

	// Rename-from-temp so readers never observe a partial output file
	if err := os.Rename(muxTemp, outPath); err != nil {
		job.Status = models.StatusFailed
		return models.OutcomeFailed, fmt.Errorf("move output into place: %w", err)
	}

	job.Status = models.StatusDone
	return models.OutcomeDownloaded, nil
}
