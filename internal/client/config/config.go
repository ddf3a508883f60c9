package config

import "time"

// Config holds runtime settings for the qrtrack CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request deadline for backend calls.
//   - DownloadDir: directory exports are written into.
//   - DatabasePath: sqlite file holding the session and local cache.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DownloadDir    string
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5001/api"
	c.RequestTimeout = 15 * time.Second
	c.DownloadDir = "downloads"
	c.DatabasePath = "qrtrack.db"
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
