package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config all settings
type Config struct {
	Server `toml:"server"`
	Upload `toml:"upload"`
	Flash  `toml:"flash"`
	Log    `toml:"log"`
}

type Server struct {
	Addr            string `toml:"addr"`
	ReadTimeout     string `toml:"read_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

type Upload struct {
	MaxBytes int64  `toml:"max_bytes"`
	MaxRows  int    `toml:"max_rows"`
	TempDir  string `toml:"temp_dir"`
}

// unzipRatio bounds how far an xlsx upload may inflate when unpacked.
const unzipRatio = 100

// UnzipLimit is the largest uncompressed package accepted for an upload.
func (u Upload) UnzipLimit() int64 { return u.MaxBytes * unzipRatio }

// Flash controls how long a drawn winner waits for the display request.
type Flash struct {
	TTL           string `toml:"ttl"`
	SweepInterval string `toml:"sweep_interval"`
	CookieName    string `toml:"cookie_name"`
	SecureCookie  bool   `toml:"secure_cookie"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080", ReadTimeout: "30s", ShutdownTimeout: "10s"},
		Upload: Upload{MaxBytes: 10 << 20, MaxRows: 10000},
		Flash:  Flash{TTL: "5m", SweepInterval: "1m", CookieName: "lottery_flash"},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// New loads path over the defaults. An empty path returns the defaults.
func New(path string) (*Config, error) {
	config := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr required")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("upload.max_bytes must be positive")
	}
	if c.Upload.MaxRows < 0 {
		return errors.New("upload.max_rows must not be negative")
	}
	for name, value := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"flash.ttl":               c.Flash.TTL,
		"flash.sweep_interval":    c.Flash.SweepInterval,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}
	return nil
}

// Durations below are only valid after Validate.

func (s Server) ReadTimeoutDuration() time.Duration     { return mustDuration(s.ReadTimeout) }
func (s Server) ShutdownTimeoutDuration() time.Duration { return mustDuration(s.ShutdownTimeout) }
func (f Flash) TTLDuration() time.Duration              { return mustDuration(f.TTL) }
func (f Flash) SweepDuration() time.Duration            { return mustDuration(f.SweepInterval) }

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
