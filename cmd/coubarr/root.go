package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amaumene/coubarr/internal/config"
	"github.com/amaumene/coubarr/internal/consistency"
	"github.com/amaumene/coubarr/internal/controllers"
	"github.com/amaumene/coubarr/internal/models"
	"github.com/amaumene/coubarr/internal/services/coub"
	"github.com/amaumene/coubarr/internal/services/ffmpeg"
	"github.com/amaumene/coubarr/internal/utils"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "coubarr",
		Short:         "Download your liked coubs with audio muxed in",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDownloadCommand())
	root.AddCommand(newCheckCommand())
	root.AddCommand(newWatchCommand())

	return root
}

// application bundles everything a command needs after bootstrap
type application struct {
	cfg          *config.Config
	logger       *logrus.Logger
	db           *models.Database
	syncCtrl     *controllers.SyncController
	downloadCtrl *controllers.DownloadController
	checker      *consistency.Checker
}

// setup loads configuration and wires services and controllers together.
// No component reads ambient state: the config value built here is passed
// into every constructor.
func setup() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)
	logger.WithFields(logrus.Fields{
		"video_quality": cfg.VideoQuality,
		"audio_quality": cfg.AudioQuality,
	}).Info("Configuration loaded")

	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	blacklist, err := utils.LoadBlacklist(cfg.BlacklistFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load blacklist, continuing without it")
		blacklist = &utils.Blacklist{}
	}

	coubClient, err := coub.NewClient(cfg, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize Coub client: %w", err)
	}

	encoder := ffmpeg.NewService(cfg, logger)

	syncCtrl := controllers.NewSyncController(coubClient, cfg, logger)
	downloadCtrl := controllers.NewDownloadController(db, coubClient, encoder, blacklist, cfg, logger)
	checker := consistency.NewChecker(cfg, logger)

	return &application{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		syncCtrl:     syncCtrl,
		downloadCtrl: downloadCtrl,
		checker:      checker,
	}, nil
}

// Close releases resources held by the application
func (a *application) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close database")
	}
}
