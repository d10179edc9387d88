package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
)

// Config holds all application configuration
type Config struct {
	// Producers
	WatchPaths         []string
	WindowPollInterval time.Duration
	FileScanInterval   time.Duration

	// Ingestion
	IngestTick      time.Duration
	IngestBatchSize int

	// Enrichment
	AutoFetchMetadata bool

	// Classification
	Extensions map[string]models.MediaType

	// Open preferences per source
	OpenMethods map[string]string

	// Server
	ServerPort string

	// Paths
	DatabaseFile string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and a .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("WINDOW_POLL_SECONDS", 2)
	viper.SetDefault("FILE_SCAN_SECONDS", 60)
	viper.SetDefault("INGEST_TICK_MS", 200)
	viper.SetDefault("INGEST_BATCH_SIZE", 50)
	viper.SetDefault("AUTO_FETCH_METADATA", true)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "mediascope")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		WatchPaths:         watchPaths(),
		WindowPollInterval: time.Duration(viper.GetInt("WINDOW_POLL_SECONDS")) * time.Second,
		FileScanInterval:   time.Duration(viper.GetInt("FILE_SCAN_SECONDS")) * time.Second,
		IngestTick:         time.Duration(viper.GetInt("INGEST_TICK_MS")) * time.Millisecond,
		IngestBatchSize:    viper.GetInt("INGEST_BATCH_SIZE"),
		AutoFetchMetadata:  viper.GetBool("AUTO_FETCH_METADATA"),
		Extensions:         extensionTable(),
		OpenMethods:        openMethods(),
		ServerPort:         viper.GetString("SERVER_PORT"),
		DatabaseFile:       filepath.Join(configDir, "mediascope.db"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
	}

	if config.IngestBatchSize <= 0 {
		return nil, fmt.Errorf("INGEST_BATCH_SIZE must be positive")
	}

	return config, nil
}

// watchPaths reads WATCH_PATHS as a comma-separated list, defaulting to
// the user's Music, Videos and Downloads directories
func watchPaths() []string {
	if raw := viper.GetString("WATCH_PATHS"); raw != "" {
		var paths []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		return paths
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, "Music"),
		filepath.Join(homeDir, "Videos"),
		filepath.Join(homeDir, "Downloads"),
	}
}

// extensionTable merges FILE_EXTENSIONS overrides (ext=type pairs) into
// the default supported-extension table
func extensionTable() map[string]models.MediaType {
	table := make(map[string]models.MediaType, len(providers.DefaultExtensions))
	for ext, t := range providers.DefaultExtensions {
		table[ext] = t
	}

	for ext, t := range viper.GetStringMapString("FILE_EXTENSIONS") {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		mediaType := models.MediaType(t)
		if models.IsAllowedMediaType(mediaType) {
			table[strings.ToLower(ext)] = mediaType
		}
	}
	return table
}

// openMethods merges OPEN_METHODS overrides into the default per-source
// open preferences
func openMethods() map[string]string {
	methods := map[string]string{
		"netflix": "browser",
		"youtube": "browser",
		"spotify": "app",
		"local":   "local",
	}
	for source, method := range viper.GetStringMapString("OPEN_METHODS") {
		methods[source] = method
	}
	return methods
}
