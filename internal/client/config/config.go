package config

import "time"

// Config holds runtime settings for the taskkeeper client.
//
// Fields:
//   - BaseURL: root of the task-management REST API.
//   - DatabasePath: SQLite file holding the local cache.
//   - RequestTimeout: per-call HTTP timeout.
//   - SyncInterval: period of the background refresh; zero disables it.
//   - RateLimit: outbound requests per second; zero or less disables limiting.
//   - LogFile / LogLevel: rotating JSON log destination and threshold.
//   - S3*: object storage used for media attachments; empty endpoint disables uploads.
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
	SyncInterval   time.Duration
	RateLimit      float64
	LogFile        string
	LogLevel       string
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "taskkeeper.db"
	c.RequestTimeout = 15 * time.Second
	c.SyncInterval = 30 * time.Second
	c.RateLimit = 10
	c.LogFile = ""
	c.LogLevel = "info"
	c.S3Endpoint = ""
	c.S3Region = "us-east-1"
	c.S3Bucket = "taskkeeper-media"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
