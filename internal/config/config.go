package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Metastats
		HSReplay
		Import
		ImportSync
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Log struct {
		Level  string
		Format string // json or console
	}
	Metastats struct {
		BaseURL string
	}
	HSReplay struct {
		BaseURL   string
		GameTypes []string
	}
	Import struct {
		Archive        bool
		DeletePrevious bool
		ShortenNames   bool
		MaxConcurrency int
		RequestTimeout time.Duration
		UserAgent      string
	}
	ImportSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 6 * * *" = daily at 06:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// NewConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first; variables already set take precedence.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("metastats_base_url", DefaultMetastatsBaseURL)
	v.SetDefault("hsreplay_base_url", DefaultHSReplayBaseURL)
	v.SetDefault("hsreplay_game_types", DefaultHSReplayGameTypes)

	// Import defaults
	v.SetDefault("import_archive", false)
	v.SetDefault("import_delete_previous", false)
	v.SetDefault("import_shorten_names", false)
	v.SetDefault("import_max_concurrency", 8)
	v.SetDefault("import_request_timeout", "30s")
	v.SetDefault("import_user_agent", DefaultUserAgent)
	v.SetDefault("import_sync_enabled", false)
	v.SetDefault("import_sync_schedule", DefaultImportSchedule)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Metastats: Metastats{
			BaseURL: v.GetString("METASTATS_BASE_URL"),
		},
		HSReplay: HSReplay{
			BaseURL:   v.GetString("HSREPLAY_BASE_URL"),
			GameTypes: splitList(v.GetString("HSREPLAY_GAME_TYPES")),
		},
		Import: Import{
			Archive:        v.GetBool("IMPORT_ARCHIVE"),
			DeletePrevious: v.GetBool("IMPORT_DELETE_PREVIOUS"),
			ShortenNames:   v.GetBool("IMPORT_SHORTEN_NAMES"),
			MaxConcurrency: v.GetInt("IMPORT_MAX_CONCURRENCY"),
			RequestTimeout: v.GetDuration("IMPORT_REQUEST_TIMEOUT"),
			UserAgent:      v.GetString("IMPORT_USER_AGENT"),
		},
		ImportSync: ImportSync{
			Enabled:  v.GetBool("IMPORT_SYNC_ENABLED"),
			Schedule: v.GetString("IMPORT_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}

// splitList parses a comma separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
