package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the daemon looks for its configuration unless the
// --config flag says otherwise.
const DefaultPath = "/etc/sidewinderd.conf"

var (
	// ErrIO reports the configuration file could not be read or written.
	ErrIO = errors.New("config file io failure")
	// ErrParse reports malformed TOML in the configuration file.
	ErrParse = errors.New("config file malformed")
)

// Config holds the recognized configuration values. The raw document is kept
// alongside so unrecognized keys survive a rewrite.
type Config struct {
	User          string `toml:"user"`
	Profile       int    `toml:"profile"`
	CaptureDelays bool   `toml:"capture_delays"`
	PIDFile       string `toml:"pid-file"`

	raw map[string]any
}

// Default returns a Config populated with every documented default.
func Default() *Config {
	cfg := &Config{raw: map[string]any{}}
	cfg.EnsureDefaults()
	return cfg
}

// Load reads the configuration document at path. Failures are recoverable:
// the returned Config is always usable and the error, if any, matches ErrIO
// or ErrParse so the caller can log what went wrong before continuing with
// defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{raw: map[string]any{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}

	if err := toml.Unmarshal(data, &cfg.raw); err != nil {
		cfg.raw = map[string]any{}
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrParse, path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		cfg.raw = map[string]any{}
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrParse, path, err)
	}

	return cfg, nil
}

// EnsureDefaults fills any missing recognized key with its documented default
// and reports whether the document changed. Presence is judged against the
// raw document, so explicit zero values in the file are respected.
func (c *Config) EnsureDefaults() bool {
	if c.raw == nil {
		c.raw = map[string]any{}
	}

	changed := false
	if _, ok := c.raw["user"]; !ok {
		c.User = defaultUser
		c.raw["user"] = defaultUser
		changed = true
	}
	if _, ok := c.raw["profile"]; !ok {
		c.Profile = defaultProfile
		c.raw["profile"] = int64(defaultProfile)
		changed = true
	}
	if _, ok := c.raw["capture_delays"]; !ok {
		c.CaptureDelays = defaultCaptureDelays
		c.raw["capture_delays"] = defaultCaptureDelays
		changed = true
	}
	if _, ok := c.raw["pid-file"]; !ok {
		c.PIDFile = defaultPIDFile
		c.raw["pid-file"] = defaultPIDFile
		changed = true
	}
	return changed
}

// Save rewrites the configuration document at path, preserving unrecognized
// keys. Callers only invoke it after EnsureDefaults reported a change; a
// failure matches ErrIO and is non-fatal by policy.
func (c *Config) Save(path string) error {
	c.raw["user"] = c.User
	c.raw["profile"] = int64(c.Profile)
	c.raw["capture_delays"] = c.CaptureDelays
	c.raw["pid-file"] = c.PIDFile

	data, err := toml.Marshal(c.raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}
	return nil
}
