// Package config loads runtime settings from the environment. The mod has
// no settings UI of its own, so everything tunable rides on env vars the
// launcher can set.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/appengine-ltd/storm-access/internal/input"
	"github.com/appengine-ltd/storm-access/internal/speech"
)

// Config is the full runtime configuration.
type Config struct {
	// KeymapPath points at a custom bindings file; empty means built-in.
	KeymapPath string `env:"STORM_ACCESS_KEYMAP"`
	// LogPath receives debug logs; empty discards them. The harness owns
	// the terminal, so logs never go to stderr.
	LogPath string `env:"STORM_ACCESS_LOG"`

	// MuteHooks silences announcements triggered by host events.
	MuteHooks bool `env:"STORM_ACCESS_MUTE_HOOKS"`
	// MuteMap silences map cursor speech.
	MuteMap bool `env:"STORM_ACCESS_MUTE_MAP"`
	// MuteAmbient silences low-priority background announcements.
	MuteAmbient bool `env:"STORM_ACCESS_MUTE_AMBIENT"`

	// SpeechQueueSize bounds the non-interrupting utterance queue.
	SpeechQueueSize int `env:"STORM_ACCESS_QUEUE_SIZE" envDefault:"8"`
	// PollTicks is how many frames pass between fallback state polls.
	PollTicks int `env:"STORM_ACCESS_POLL_TICKS" envDefault:"30"`
	// TranscriptLimit caps the harness transcript length, 0 for unbounded.
	TranscriptLimit int `env:"STORM_ACCESS_TRANSCRIPT" envDefault:"200"`
}

// Load reads the environment, falling back to defaults per field.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SpeechQueueSize < 1 {
		cfg.SpeechQueueSize = 8
	}
	if cfg.PollTicks < 1 {
		cfg.PollTicks = 30
	}
	return cfg, nil
}

// SpeechOptions translates the mute flags into announcer options.
func (c Config) SpeechOptions() speech.Options {
	var disabled []speech.Category
	if c.MuteHooks {
		disabled = append(disabled, speech.CategoryHooks)
	}
	if c.MuteMap {
		disabled = append(disabled, speech.CategoryMap)
	}
	if c.MuteAmbient {
		disabled = append(disabled, speech.CategoryAmbient)
	}
	return speech.Options{DisabledCategories: disabled, QueueSize: c.SpeechQueueSize}
}

// Keymap loads the configured bindings, the built-in set when no path is
// given.
func (c Config) Keymap() (*input.Keymap, error) {
	if c.KeymapPath == "" {
		return input.DefaultKeymap(), nil
	}
	data, err := os.ReadFile(c.KeymapPath)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return input.LoadKeymap(data)
}
