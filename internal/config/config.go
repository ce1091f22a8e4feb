package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/example/nix-health/internal/health/check"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "nix-health.yml"
	DefaultDotEnvPath = ".env"

	FormatText   = "text"
	FormatNDJSON = "ndjson"

	envNixBinary        = "NIX_HEALTH_NIX_BINARY"
	envSnapshot         = "NIX_HEALTH_SNAPSHOT"
	envNixConf          = "NIX_HEALTH_NIX_CONF"
	envFormat           = "NIX_HEALTH_FORMAT"
	envSave             = "NIX_HEALTH_SAVE"
	envTimeout          = "NIX_HEALTH_TIMEOUT"
	envMinMaxJobs       = "NIX_HEALTH_MIN_MAX_JOBS"
	envRequiredCaches   = "NIX_HEALTH_REQUIRED_CACHES"
	envRequiredFeatures = "NIX_HEALTH_REQUIRED_FEATURES"
	envLogLevel         = "NIX_HEALTH_LOG_LEVEL"
	envLogFile          = "NIX_HEALTH_LOG_FILE"
	envNoColor          = "NO_COLOR"
)

// Loader merges configuration coming from files, environment variables, and CLI flags.
type Loader struct {
	ConfigPath string
	DotEnvPath string
}

// RuntimeConfig contains the fully merged settings used by the sub-commands.
type RuntimeConfig struct {
	NixBinary        string
	SnapshotPath     string
	NixConfPath      string
	Format           string
	SavePath         string
	Timeout          time.Duration
	MinMaxJobs       int
	RequiredCaches   []string
	RequiredFeatures []string
	LogLevel         string
	LogFile          string
	NoColor          bool
}

// Overrides captures values coming from the config file, env vars or CLI flags.
type Overrides struct {
	NixBinary        string
	SnapshotPath     string
	NixConfPath      string
	Format           string
	SavePath         string
	Timeout          time.Duration
	MinMaxJobs       int
	MinMaxJobsSet    bool
	RequiredCaches   []string
	RequiredFeatures []string
	LogLevel         string
	LogFile          string
	NoColor          *bool
}

// DefaultRuntimeConfig returns the baseline configuration when no overrides are provided.
func DefaultRuntimeConfig() RuntimeConfig {
	p := check.DefaultPolicy()
	return RuntimeConfig{
		NixBinary:        "nix",
		Format:           FormatText,
		Timeout:          30 * time.Second,
		MinMaxJobs:       p.MinMaxJobs,
		RequiredCaches:   p.RequiredCaches,
		RequiredFeatures: p.RequiredFeatures,
		LogLevel:         "warn",
	}
}

// Load resolves the final runtime configuration.
func (l Loader) Load(override Overrides) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	path := l.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	if fileExists(path) {
		fileOv, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		cfg.apply(fileOv)
	}

	dotenv := l.DotEnvPath
	if dotenv == "" {
		dotenv = DefaultDotEnvPath
	}
	if fileExists(dotenv) {
		if err := godotenv.Load(dotenv); err != nil {
			return cfg, fmt.Errorf("read %s: %w", dotenv, err)
		}
	}

	envOv, err := overridesFromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.apply(envOv)
	cfg.apply(override)

	return cfg, nil
}

// Validate ensures the config is usable by the check command.
func (c RuntimeConfig) Validate() error {
	if c.Format != FormatText && c.Format != FormatNDJSON {
		return fmt.Errorf("format must be %q or %q (got %q)", FormatText, FormatNDJSON, c.Format)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}

	if c.MinMaxJobs < 1 {
		return fmt.Errorf("minimum max-jobs must be at least 1 (got %d)", c.MinMaxJobs)
	}

	if c.SnapshotPath != "" && c.NixConfPath != "" {
		return errors.New("snapshot and nix-conf are mutually exclusive")
	}

	if c.SnapshotPath == "" && c.NixConfPath == "" && c.NixBinary == "" {
		return errors.New("nix binary cannot be empty")
	}

	return nil
}

// Policy returns the check thresholds described by the config.
func (c RuntimeConfig) Policy() check.Policy {
	return check.Policy{
		MinMaxJobs:       c.MinMaxJobs,
		RequiredCaches:   append([]string(nil), c.RequiredCaches...),
		RequiredFeatures: append([]string(nil), c.RequiredFeatures...),
	}
}

func (c *RuntimeConfig) apply(src Overrides) {
	if src.NixBinary != "" {
		c.NixBinary = src.NixBinary
	}

	if src.SnapshotPath != "" {
		c.SnapshotPath = src.SnapshotPath
	}

	if src.NixConfPath != "" {
		c.NixConfPath = src.NixConfPath
	}

	if src.Format != "" {
		c.Format = strings.ToLower(src.Format)
	}

	if src.SavePath != "" {
		c.SavePath = src.SavePath
	}

	if src.Timeout != 0 {
		c.Timeout = src.Timeout
	}

	if src.MinMaxJobsSet {
		c.MinMaxJobs = src.MinMaxJobs
	}

	if src.RequiredCaches != nil {
		c.RequiredCaches = cleanList(src.RequiredCaches)
	}

	if src.RequiredFeatures != nil {
		c.RequiredFeatures = cleanList(src.RequiredFeatures)
	}

	if src.LogLevel != "" {
		c.LogLevel = src.LogLevel
	}

	if src.LogFile != "" {
		c.LogFile = src.LogFile
	}

	if src.NoColor != nil {
		c.NoColor = *src.NoColor
	}
}

type rawConfig struct {
	NixBinary        string     `yaml:"nixBinary" toml:"nixBinary"`
	Snapshot         string     `yaml:"snapshot" toml:"snapshot"`
	NixConf          string     `yaml:"nixConf" toml:"nixConf"`
	Format           string     `yaml:"format" toml:"format"`
	Save             string     `yaml:"save" toml:"save"`
	Timeout          string     `yaml:"timeout" toml:"timeout"`
	MinMaxJobs       *int       `yaml:"minMaxJobs" toml:"minMaxJobs"`
	RequiredCaches   stringList `yaml:"requiredCaches" toml:"requiredCaches"`
	RequiredFeatures stringList `yaml:"requiredFeatures" toml:"requiredFeatures"`
	LogLevel         string     `yaml:"logLevel" toml:"logLevel"`
	LogFile          string     `yaml:"logFile" toml:"logFile"`
	NoColor          *bool      `yaml:"noColor" toml:"noColor"`
}

func loadFromFile(path string) (Overrides, error) {
	var raw rawConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return Overrides{}, err
		}
	} else {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Overrides{}, err
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Overrides{}, err
		}
	}

	over := Overrides{
		NixBinary:        raw.NixBinary,
		SnapshotPath:     raw.Snapshot,
		NixConfPath:      raw.NixConf,
		Format:           raw.Format,
		SavePath:         raw.Save,
		RequiredCaches:   raw.RequiredCaches,
		RequiredFeatures: raw.RequiredFeatures,
		LogLevel:         raw.LogLevel,
		LogFile:          raw.LogFile,
		NoColor:          raw.NoColor,
	}

	if raw.Timeout != "" {
		d, err := ParseTimeout(raw.Timeout)
		if err != nil {
			return Overrides{}, err
		}
		over.Timeout = d
	}

	if raw.MinMaxJobs != nil {
		over.MinMaxJobs = *raw.MinMaxJobs
		over.MinMaxJobsSet = true
	}

	return over, nil
}

func overridesFromEnv() (Overrides, error) {
	ov := Overrides{
		NixBinary:    os.Getenv(envNixBinary),
		SnapshotPath: os.Getenv(envSnapshot),
		NixConfPath:  os.Getenv(envNixConf),
		Format:       os.Getenv(envFormat),
		SavePath:     os.Getenv(envSave),
		LogLevel:     os.Getenv(envLogLevel),
		LogFile:      os.Getenv(envLogFile),
	}

	if value := os.Getenv(envTimeout); value != "" {
		d, err := ParseTimeout(value)
		if err != nil {
			return ov, fmt.Errorf("%s: %w", envTimeout, err)
		}
		ov.Timeout = d
	}

	if value := os.Getenv(envMinMaxJobs); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return ov, fmt.Errorf("%s: %w", envMinMaxJobs, err)
		}
		ov.MinMaxJobs = parsed
		ov.MinMaxJobsSet = true
	}

	if value := os.Getenv(envRequiredCaches); value != "" {
		ov.RequiredCaches = ParseList(value)
	}

	if value := os.Getenv(envRequiredFeatures); value != "" {
		ov.RequiredFeatures = ParseList(value)
	}

	// https://no-color.org: any non-empty value disables color
	if value := os.Getenv(envNoColor); value != "" {
		noColor := true
		ov.NoColor = &noColor
	}

	return ov, nil
}

// ParseTimeout accepts a Go duration ("45s") or a bare number of seconds.
func ParseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", value)
	}
	return d, nil
}

// ParseList splits comma, whitespace or newline separated input.
func ParseList(input string) []string {
	return splitOnDelimiters(input, []rune{',', '\n', '\r', ' ', '\t'})
}

func splitOnDelimiters(input string, delims []rune) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	separator := func(r rune) bool {
		for _, d := range delims {
			if r == d {
				return true
			}
		}
		return false
	}

	return cleanList(strings.FieldsFunc(trimmed, separator))
}

func cleanList(values []string) []string {
	out := []string{}
	for _, v := range values {
		candidate := strings.TrimSpace(v)
		if candidate != "" {
			out = append(out, candidate)
		}
	}
	return out
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// stringList enables YAML and TOML fields that can be specified as a scalar or sequence.
type stringList []string

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var out []string
		for _, node := range value.Content {
			out = append(out, strings.TrimSpace(node.Value))
		}
		*s = cleanList(out)
	case yaml.ScalarNode:
		*s = ParseList(value.Value)
		if *s == nil {
			*s = stringList{}
		}
	default:
		return fmt.Errorf("unsupported YAML type for list")
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *stringList) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*s = ParseList(v)
		if *s == nil {
			*s = stringList{}
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("list entries must be strings (got %T)", item)
			}
			out = append(out, str)
		}
		*s = cleanList(out)
	default:
		return fmt.Errorf("unsupported TOML type %T for list", data)
	}
	return nil
}
