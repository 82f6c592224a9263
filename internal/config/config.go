package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/amaumene/coubarr/internal/models"
)

// Config holds all application configuration
type Config struct {
	// Coub API
	APIToken string
	PerPage  int

	// Quality preferences, validated against the fixed rank lists
	VideoQuality models.Quality
	AudioQuality models.Quality

	// Paths
	OutputDir     string // final video tree, <OutputDir>/<YYYY>/<MM>/...
	TempDir       string // working directory for per-coub temp artifacts
	PagesFile     string // persisted likes pages dump
	SnapshotFile  string // consistency snapshot
	DatabaseFile  string // download history
	BlacklistFile string // optional term file

	// External encoder
	FFmpegPath    string
	EncodeTimeout time.Duration

	// Download
	FetchTimeout time.Duration

	// Watch mode
	SyncSchedule string // cron expression

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("PER_PAGE", 25)
	viper.SetDefault("VIDEO_QUALITY", "high")
	viper.SetDefault("AUDIO_QUALITY", "high")
	viper.SetDefault("OUTPUT_DIR", "videos")
	viper.SetDefault("TEMP_DIR", ".")
	viper.SetDefault("PAGES_FILE", "likes.json")
	viper.SetDefault("SNAPSHOT_FILE", "file_names.json")
	viper.SetDefault("DATABASE_FILE", "coubarr.db")
	viper.SetDefault("BLACKLIST_FILE", "blacklist.txt")
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("ENCODE_TIMEOUT_MINUTES", 5)
	viper.SetDefault("FETCH_TIMEOUT_MINUTES", 10)
	viper.SetDefault("SYNC_SCHEDULE", "0 */6 * * *")
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		APIToken: viper.GetString("API_TOKEN"),
		PerPage:  viper.GetInt("PER_PAGE"),

		VideoQuality: models.Quality(strings.ToLower(viper.GetString("VIDEO_QUALITY"))),
		AudioQuality: models.Quality(strings.ToLower(viper.GetString("AUDIO_QUALITY"))),

		OutputDir:     viper.GetString("OUTPUT_DIR"),
		TempDir:       viper.GetString("TEMP_DIR"),
		PagesFile:     viper.GetString("PAGES_FILE"),
		SnapshotFile:  viper.GetString("SNAPSHOT_FILE"),
		DatabaseFile:  viper.GetString("DATABASE_FILE"),
		BlacklistFile: viper.GetString("BLACKLIST_FILE"),

		FFmpegPath:    viper.GetString("FFMPEG_PATH"),
		EncodeTimeout: time.Duration(viper.GetInt("ENCODE_TIMEOUT_MINUTES")) * time.Minute,
		FetchTimeout:  time.Duration(viper.GetInt("FETCH_TIMEOUT_MINUTES")) * time.Minute,

		SyncSchedule: viper.GetString("SYNC_SCHEDULE"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.APIToken == "" {
		return nil, fmt.Errorf("API_TOKEN is required")
	}
	if !models.QualityAllowed(config.VideoQuality, models.VideoQualities) {
		return nil, fmt.Errorf("can't use video quality %q, allowed values: %v", config.VideoQuality, models.VideoQualities)
	}
	if !models.QualityAllowed(config.AudioQuality, models.AudioQualities) {
		return nil, fmt.Errorf("can't use audio quality %q, allowed values: %v", config.AudioQuality, models.AudioQualities)
	}

	return config, nil
}
