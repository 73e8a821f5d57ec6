package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml accepts "24h" style strings as well
// as plain nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Logs         LogsConfig      `yaml:"logs"`
	Retention    RetentionConfig `yaml:"retention"`
	Logging      LoggingConfig   `yaml:"logging"`
	ConfigReload ReloadConfig    `yaml:"configReload"`
}

type LogsConfig struct {
	Directory        string        `yaml:"directory"`        // log files live here, created on demand
	MaximumFileSize  int64         `yaml:"maximumFileSize"`  // bytes; roll when the active file reaches this
	RollingFrequency Duration      `yaml:"rollingFrequency"` // e.g. 24h; roll when the active file gets this old
	ArchiveMarker    string        `yaml:"archiveMarker"`    // "auto", "xattr", "filename"
}

type RetentionConfig struct {
	MaximumNumberOfLogFiles int    `yaml:"maximumNumberOfLogFiles"` // archived files to keep; active file not counted
	Schedule                string `yaml:"schedule"`                // optional cron spec for periodic sweeps
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "info", "debug", etc.
}

type ReloadConfig struct {
	Enabled bool   `yaml:"enabled"`
	Method  string `yaml:"method"` // "fsnotify", "sighup"
}

// Defaults applied by Load for fields left at their zero value.
const (
	DefaultMaximumFileSize         = int64(1 << 20) // 1 MiB
	DefaultRollingFrequency        = Duration(24 * time.Hour)
	DefaultMaximumNumberOfLogFiles = 5
	DefaultArchiveMarker           = "auto"
)

func (c *Config) applyDefaults() {
	if c.Logs.MaximumFileSize == 0 {
		c.Logs.MaximumFileSize = DefaultMaximumFileSize
	}
	if c.Logs.RollingFrequency == 0 {
		c.Logs.RollingFrequency = DefaultRollingFrequency
	}
	if c.Logs.ArchiveMarker == "" {
		c.Logs.ArchiveMarker = DefaultArchiveMarker
	}
	if c.Retention.MaximumNumberOfLogFiles == 0 {
		c.Retention.MaximumNumberOfLogFiles = DefaultMaximumNumberOfLogFiles
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
