package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/chainpurge/nlp/ngram"
)

const (
	DefaultPath      = "chainpurge.yaml"
	DefaultChainFile = "chain.json"
	envPrefix        = "CHAINPURGE_"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	ChainFile   string `yaml:"chain_file"`
	PrefixLen   int    `yaml:"prefix_len"`
	KeyCase     string `yaml:"key_case"`
	MetricsFile string `yaml:"metrics_file"`
	Log         Log    `yaml:"log"`
}

// Default returns the settings the chain is normally trained with.
func Default() *Config {
	return &Config{
		ChainFile: DefaultChainFile,
		PrefixLen: ngram.DefaultPrefixLen,
		KeyCase:   "simple",
		Log: Log{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// LoadDotEnv loads .env files into the process environment, if present.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from CHAINPURGE_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("CHAIN_FILE"); ok {
		c.ChainFile = v
	}
	if v, ok := lookup("PREFIX_LEN"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPREFIX_LEN: %w", envPrefix, err)
		}
		c.PrefixLen = n
	}
	if v, ok := lookup("KEY_CASE"); ok {
		c.KeyCase = v
	}
	if v, ok := lookup("METRICS_FILE"); ok {
		c.MetricsFile = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	return strings.TrimSpace(v), ok
}

func (c *Config) Validate() error {
	if c.ChainFile == "" {
		return fmt.Errorf("%w: chain_file is empty", ErrInvalid)
	}
	if c.PrefixLen < 1 || c.PrefixLen > ngram.MaxPrefixLen {
		return fmt.Errorf("%w: prefix_len %d, must be between 1 and %d", ErrInvalid, c.PrefixLen, ngram.MaxPrefixLen)
	}
	if _, err := ngram.FolderFor(c.KeyCase); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Folder returns the key folder selected by KeyCase.
func (c *Config) Folder() ngram.Folder {
	fold, err := ngram.FolderFor(c.KeyCase)
	if err != nil {
		return ngram.SimpleFold
	}
	return fold
}
