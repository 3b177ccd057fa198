// Package config loads the read-only, process-wide configuration (spec.md
// §3, §6): buffer sizing, flush policy, and the remote backup endpoint.
// The documented file format is a strict JSON object where every key is
// required; a missing key is a load error, not a default.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	lixconfig "github.com/lixenwraith/config"
	"go.uber.org/multierr"

	"github.com/asynclog/asynclog/sink"
)

// Config is the process-wide logging configuration (spec.md §3).
type Config struct {
	BufferSize   int64          `json:"buffer_size"`
	Threshold    int64          `json:"threshold"`
	LinearGrowth int64          `json:"linear_growth"`
	FlushLog     sink.FlushMode `json:"flush_log"`
	BackupAddr   string         `json:"backup_addr"`
	BackupPort   uint16         `json:"backup_port"`
	ThreadCount  int            `json:"thread_count"`
}

// requiredKeys mirrors the Config field set 1:1 and drives the missing-key
// check in Load; spec.md §6 is explicit that a missing key is an error,
// which rules out relying on encoding/json's silent zero-value fallback.
var requiredKeys = []string{
	"buffer_size",
	"threshold",
	"linear_growth",
	"flush_log",
	"backup_addr",
	"backup_port",
	"thread_count",
}

// Load reads and validates the JSON configuration file at path. Every key
// in requiredKeys must be present; Load names every missing key in one
// error rather than failing on the first one found. Invalid values are
// combined with go.uber.org/multierr by validate.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("config: %q missing required key(s): %s", path, strings.Join(missing, ", "))
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs error
	if c.BufferSize <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("config: buffer_size must be positive, got %d", c.BufferSize))
	}
	if c.Threshold <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("config: threshold must be positive, got %d", c.Threshold))
	}
	if c.LinearGrowth <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("config: linear_growth must be positive, got %d", c.LinearGrowth))
	}
	if c.FlushLog < sink.FlushNone || c.FlushLog > sink.FlushSync {
		errs = multierr.Append(errs, fmt.Errorf("config: flush_log must be 0, 1, or 2, got %d", c.FlushLog))
	}
	if strings.TrimSpace(c.BackupAddr) == "" {
		errs = multierr.Append(errs, fmt.Errorf("config: backup_addr must not be empty"))
	}
	if c.ThreadCount <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("config: thread_count must be positive, got %d", c.ThreadCount))
	}
	return errs
}

// Default returns a reasonable configuration for examples and tests that
// don't load a config file.
func Default() *Config {
	return &Config{
		BufferSize:   4096,
		Threshold:    65536,
		LinearGrowth: 4096,
		FlushLog:     sink.FlushNone,
		BackupAddr:   "127.0.0.1",
		BackupPort:   9000,
		ThreadCount:  2,
	}
}

// LoadErgonomic is a non-strict alternative to Load for local development
// and the example programs: it starts from Default, registers the Config
// struct with github.com/lixenwraith/config, and overlays any value found
// at path, tolerating a missing file and missing keys (unlike Load, which
// treats both as fatal). It is NOT the documented file-based config
// contract in spec.md §6 — that contract is Load, above.
func LoadErgonomic(path string) (*Config, error) {
	cfg := Default()

	loader := lixconfig.New()
	if err := loader.RegisterStruct("asynclog.", *cfg); err != nil {
		return nil, fmt.Errorf("config: register struct: %w", err)
	}
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, lixconfig.ErrConfigNotFound) {
		return nil, fmt.Errorf("config: load %q: %w", path, err)
	}

	overlay := func(key string, set func(any) bool) {
		if v, ok := loader.Get("asynclog." + key); ok {
			set(v)
		}
	}
	overlay("buffer_size", func(v any) bool { return setInt64(&cfg.BufferSize, v) })
	overlay("threshold", func(v any) bool { return setInt64(&cfg.Threshold, v) })
	overlay("linear_growth", func(v any) bool { return setInt64(&cfg.LinearGrowth, v) })
	overlay("flush_log", func(v any) bool {
		var n int64
		ok := setInt64(&n, v)
		if ok {
			cfg.FlushLog = sink.FlushMode(n)
		}
		return ok
	})
	overlay("backup_addr", func(v any) bool {
		s, ok := v.(string)
		if ok {
			cfg.BackupAddr = s
		}
		return ok
	})
	overlay("backup_port", func(v any) bool {
		var n int64
		ok := setInt64(&n, v)
		if ok {
			cfg.BackupPort = uint16(n)
		}
		return ok
	})
	overlay("thread_count", func(v any) bool {
		var n int64
		ok := setInt64(&n, v)
		if ok {
			cfg.ThreadCount = int(n)
		}
		return ok
	})

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setInt64(dst *int64, v any) bool {
	switch n := v.(type) {
	case int64:
		*dst = n
	case int:
		*dst = int64(n)
	case float64:
		*dst = int64(n)
	default:
		return false
	}
	return true
}
