package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of one readable_hash run. Defaults come first,
// then the YAML config file, then flags that were set explicitly.
type Config struct {
	Model        string `yaml:"model"`
	Hasher       string `yaml:"hasher"`
	Words        int    `yaml:"words"`
	BytesPerWord int    `yaml:"bytes_per_word"`
	TargetLen    int    `yaml:"target_len"`
	Separator    string `yaml:"separator"`
	Naive        bool   `yaml:"naive"`
	Sentences    bool   `yaml:"sentences"`
	Verbose      bool   `yaml:"verbose"`
}

// flagSource is the part of *cli.Context the overrides read from.
type flagSource interface {
	IsSet(name string) bool
	String(name string) string
	Int(name string) int
	Bool(name string) bool
}

func defaultConfig() Config {
	opts := readable_hash.DefaultHashOptions()
	return Config{
		Model:        readable_hash.DEFAULT_MODEL,
		Hasher:       "shake256",
		Words:        opts.Words,
		BytesPerWord: opts.BytesPerWord,
		TargetLen:    opts.TargetLen,
		Separator:    opts.Separator,
	}
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "cannot parse config `%s`", path)
	}
	return nil
}

func applyCLIOverrides(ctx flagSource, cfg *Config) {
	if ctx.IsSet("model") {
		cfg.Model = ctx.String("model")
	}
	if ctx.IsSet("hasher") {
		cfg.Hasher = ctx.String("hasher")
	}
	if ctx.IsSet("words") {
		cfg.Words = ctx.Int("words")
	}
	if ctx.IsSet("bytes-per-word") {
		cfg.BytesPerWord = ctx.Int("bytes-per-word")
	}
	if ctx.IsSet("target-len") {
		cfg.TargetLen = ctx.Int("target-len")
	}
	if ctx.IsSet("separator") {
		cfg.Separator = ctx.String("separator")
	}
	if ctx.Bool("naive") {
		cfg.Naive = true
	}
	if ctx.Bool("sentences") {
		cfg.Sentences = true
	}
	if ctx.Bool("verbose") {
		cfg.Verbose = true
	}
}

func (cfg Config) validate() error {
	if cfg.Words < 1 {
		return errors.Errorf("words must be positive, got %d", cfg.Words)
	}
	if cfg.BytesPerWord < 1 {
		return errors.Errorf("bytes_per_word must be positive, got %d",
			cfg.BytesPerWord)
	}
	if cfg.TargetLen < 0 {
		return errors.Errorf("target_len must not be negative, got %d",
			cfg.TargetLen)
	}
	if cfg.Naive && cfg.Sentences {
		return errors.New("naive and sentences cannot be combined")
	}
	return nil
}

func (cfg Config) hashOptions() readable_hash.HashOptions {
	return readable_hash.HashOptions{
		Words:        cfg.Words,
		BytesPerWord: cfg.BytesPerWord,
		TargetLen:    cfg.TargetLen,
		Separator:    cfg.Separator,
	}
}
