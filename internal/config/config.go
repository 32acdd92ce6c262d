// Package config provides configuration management for interviewd using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultServerPort      = 8080
	defaultServerTimeout   = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxIdleTime = 30 * time.Minute

	defaultMergeWorkers    = 4
	defaultMergeQueueSize  = 32
	defaultFolderAttempts  = 5
	defaultFolderWaitDelay = 2 * time.Second
	defaultWatchdogCron    = "*/10 * * * * *"

	defaultDispatchCooldownMin = 300 * time.Second
	defaultDispatchCooldownMax = 600 * time.Second
	defaultHTTPTimeout         = 30 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	FFmpeg   FFmpegConfig   `mapstructure:"ffmpeg"`
	Merge    MergeConfig    `mapstructure:"merge"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// PortalBaseURL is the candidate-facing portal; registration responses
	// redirect there with batch and job identifiers attached.
	PortalBaseURL string `mapstructure:"portal_base_url"`
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, postgres, mysql
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel        string        `mapstructure:"log_level"` // silent, error, warn, info
}

// StorageConfig holds recording directory layout configuration.
type StorageConfig struct {
	// BaseDir is the root under which per-session upload directories live.
	BaseDir string `mapstructure:"base_dir"`
	// CameraDir is the subdirectory for camera chunk uploads.
	CameraDir string `mapstructure:"camera_dir"`
	// ScreenDir is the subdirectory for screen-capture chunk uploads.
	ScreenDir string `mapstructure:"screen_dir"`
	// OutputDir is where merged recordings are written by the watchdog.
	OutputDir string `mapstructure:"output_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// FFmpegConfig holds FFmpeg binary configuration.
type FFmpegConfig struct {
	BinaryPath string `mapstructure:"binary_path"` // Path to ffmpeg binary (empty = auto-detect)
	ProbePath  string `mapstructure:"probe_path"`  // Path to ffprobe binary (empty = auto-detect)
}

// MergeConfig holds chunk-merge pipeline configuration.
type MergeConfig struct {
	// Workers is the number of concurrent merge workers.
	Workers int `mapstructure:"workers"`
	// QueueSize bounds the merge request queue; requests beyond it are rejected.
	QueueSize int `mapstructure:"queue_size"`
	// FolderWaitAttempts is how many times to poll for a late upload directory.
	FolderWaitAttempts int `mapstructure:"folder_wait_attempts"`
	// FolderWaitDelay is the delay between upload-directory polls.
	FolderWaitDelay time.Duration `mapstructure:"folder_wait_delay"`
	// WatchdogCron is a seconds-precision cron expression for the background scan.
	WatchdogCron string `mapstructure:"watchdog_cron"`
}

// UploadConfig holds object-storage publishing configuration.
type UploadConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// DispatchConfig holds evaluation report delivery configuration.
type DispatchConfig struct {
	// ReportURL is the endpoint evaluation reports are POSTed to.
	ReportURL string `mapstructure:"report_url"`
	// TokenURL is the credential endpoint that issues bearer tokens.
	TokenURL string `mapstructure:"token_url"`
	// Username/Password are the credentials sent to the token endpoint.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// CooldownMin/CooldownMax bound the randomized sleep between cycles.
	CooldownMin time.Duration `mapstructure:"cooldown_min"`
	CooldownMax time.Duration `mapstructure:"cooldown_max"`
	// HTTPTimeout applies to both the token fetch and the report delivery.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with INTERVIEWD_ and use underscores
// for nesting. Example: INTERVIEWD_SERVER_PORT=8080.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/interviewd")
		v.AddConfigPath("$HOME/.interviewd")
	}

	v.SetEnvPrefix("INTERVIEWD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
// This should be called before reading the config file to ensure defaults are in place.
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("server.portal_base_url", "http://localhost:3000")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "interviewd.db")
	v.SetDefault("database.max_open_conns", defaultMaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaultMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", defaultConnMaxIdleTime)
	v.SetDefault("database.log_level", "warn")

	// Storage defaults
	v.SetDefault("storage.base_dir", "./data")
	v.SetDefault("storage.camera_dir", "uploads")
	v.SetDefault("storage.screen_dir", "screen_uploads")
	v.SetDefault("storage.output_dir", "merged")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// FFmpeg defaults
	v.SetDefault("ffmpeg.binary_path", "")
	v.SetDefault("ffmpeg.probe_path", "")

	// Merge defaults
	v.SetDefault("merge.workers", defaultMergeWorkers)
	v.SetDefault("merge.queue_size", defaultMergeQueueSize)
	v.SetDefault("merge.folder_wait_attempts", defaultFolderAttempts)
	v.SetDefault("merge.folder_wait_delay", defaultFolderWaitDelay)
	v.SetDefault("merge.watchdog_cron", defaultWatchdogCron)

	// Upload defaults
	v.SetDefault("upload.bucket", "")
	v.SetDefault("upload.region", "us-east-1")
	v.SetDefault("upload.access_key_id", "")
	v.SetDefault("upload.secret_access_key", "")

	// Dispatch defaults
	v.SetDefault("dispatch.report_url", "")
	v.SetDefault("dispatch.token_url", "")
	v.SetDefault("dispatch.username", "")
	v.SetDefault("dispatch.password", "")
	v.SetDefault("dispatch.cooldown_min", defaultDispatchCooldownMin)
	v.SetDefault("dispatch.cooldown_max", defaultDispatchCooldownMax)
	v.SetDefault("dispatch.http_timeout", defaultHTTPTimeout)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	const maxPort = 65535
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d", maxPort)
	}

	validDrivers := map[string]bool{"sqlite": true, "postgres": true, "mysql": true}
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("database.driver must be one of: sqlite, postgres, mysql")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Storage.BaseDir == "" {
		return fmt.Errorf("storage.base_dir is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	if c.Merge.Workers < 1 {
		return fmt.Errorf("merge.workers must be at least 1")
	}
	if c.Merge.QueueSize < 1 {
		return fmt.Errorf("merge.queue_size must be at least 1")
	}
	if c.Merge.FolderWaitAttempts < 1 {
		return fmt.Errorf("merge.folder_wait_attempts must be at least 1")
	}

	if c.Dispatch.CooldownMin <= 0 || c.Dispatch.CooldownMax < c.Dispatch.CooldownMin {
		return fmt.Errorf("dispatch cooldown bounds must satisfy 0 < cooldown_min <= cooldown_max")
	}

	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CameraPath returns the camera upload root.
func (c *StorageConfig) CameraPath() string {
	return filepath.Join(c.BaseDir, c.CameraDir)
}

// ScreenPath returns the screen-capture upload root.
func (c *StorageConfig) ScreenPath() string {
	return filepath.Join(c.BaseDir, c.ScreenDir)
}

// OutputPath returns the merged-output root.
func (c *StorageConfig) OutputPath() string {
	return filepath.Join(c.BaseDir, c.OutputDir)
}
