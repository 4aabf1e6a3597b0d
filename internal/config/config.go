// Package config loads runtime settings from an optional YAML file and
// environment variables; environment always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

type AppConfig struct {
	EdaxDir    string `yaml:"edax_dir"`
	EdaxBinary string `yaml:"edax_binary"`
	// SearchLevel bounds evaluator effort per query.
	SearchLevel int `yaml:"search_level"`
	// SwingThreshold is the minimum evaluation swing counted as a blunder.
	SwingThreshold int `yaml:"swing_threshold"`

	InputDir  string `yaml:"input_dir"`
	InputGlob string `yaml:"input_glob"`
	// PlyLimit caps how many opening plies of a full game are analyzed;
	// 0 analyzes the whole game.
	PlyLimit int `yaml:"ply_limit"`
	// InconclusivePolicy is "skip" or "report".
	InconclusivePolicy string `yaml:"inconclusive_policy"`

	AnkiURL   string `yaml:"anki_url"`
	DeckName  string `yaml:"deck_name"`
	ModelName string `yaml:"model_name"`

	EvalTimeoutSec int `yaml:"eval_timeout_sec"`
	NoteTimeoutSec int `yaml:"note_timeout_sec"`

	DryRun    bool `yaml:"dry_run"`
	KeepFiles bool `yaml:"keep_files"`
}

func defaults() *AppConfig {
	home, _ := os.UserHomeDir()
	return &AppConfig{
		EdaxDir:            "../edax",
		EdaxBinary:         "./lEdax-x86-64",
		SearchLevel:        30,
		SwingThreshold:     5,
		InputDir:           filepath.Join(home, "Downloads"),
		InputGlob:          "*.othello",
		InconclusivePolicy: "skip",
		AnkiURL:            "http://localhost:8765",
		DeckName:           "Othello",
		ModelName:          "Othello",
		EvalTimeoutSec:     60,
		NoteTimeoutSec:     5,
	}
}

// Load builds the effective config: defaults, then the YAML file named by
// KENTOUKAI_CONFIG (if any), then environment overrides.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("KENTOUKAI_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	setString(&c.EdaxDir, "KENTOUKAI_EDAX_DIR")
	setString(&c.EdaxBinary, "KENTOUKAI_EDAX_BINARY")
	setInt(&c.SearchLevel, "KENTOUKAI_LEVEL")
	setIntAllowZero(&c.SwingThreshold, "KENTOUKAI_SWING_THRESHOLD")
	setString(&c.InputDir, "KENTOUKAI_INPUT_DIR")
	setString(&c.InputGlob, "KENTOUKAI_INPUT_GLOB")
	setIntAllowZero(&c.PlyLimit, "KENTOUKAI_PLY_LIMIT")
	setString(&c.InconclusivePolicy, "KENTOUKAI_INCONCLUSIVE")
	setString(&c.AnkiURL, "KENTOUKAI_ANKI_URL")
	setString(&c.DeckName, "KENTOUKAI_DECK")
	setString(&c.ModelName, "KENTOUKAI_MODEL")
	setInt(&c.EvalTimeoutSec, "KENTOUKAI_EVAL_TIMEOUT")
	setInt(&c.NoteTimeoutSec, "KENTOUKAI_NOTE_TIMEOUT")
	setBool(&c.DryRun, "KENTOUKAI_DRY_RUN")
	setBool(&c.KeepFiles, "KENTOUKAI_KEEP_FILES")
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.EdaxBinary) == "" {
		return errors.New("edax binary is required")
	}
	if strings.TrimSpace(c.InputDir) == "" {
		return errors.New("input directory is required")
	}
	if strings.TrimSpace(c.AnkiURL) == "" {
		return errors.New("anki url is required")
	}
	if c.SearchLevel <= 0 {
		return fmt.Errorf("search level must be > 0: %d", c.SearchLevel)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

// setIntAllowZero accepts zero and negative values; thresholds and limits
// legitimately take them.
func setIntAllowZero(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
