package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "minilang.yml"

// Config holds the front-end settings read from minilang.yml.
type Config struct {
	Path               string
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	Echo               EchoConfig
	Typecheck          bool
	MaxNesting         int
	MaxEvalDepth       int
}

// EchoConfig selects which intermediate stages the REPL prints.
type EchoConfig struct {
	Tokens bool
	AST    bool
	Type   bool
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt:             "> ",
		ContinuationPrompt: ". ",
		Echo:               EchoConfig{Tokens: true, AST: true, Type: true},
		Typecheck:          true,
		MaxNesting:         512,
		MaxEvalDepth:       100000,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ErrConfigNotFound is returned by FindConfig when no minilang.yml exists in
// the directory or any of its parents.
var ErrConfigNotFound = errors.New("config: " + ConfigFileName + " not found")

// FindConfig walks up from dir looking for minilang.yml.
func FindConfig(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrConfigNotFound
		}
		current = parent
	}
}

// LoadConfig parses a configuration file from disk. Keys left out of the file
// keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := decodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes configuration from YAML text and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveConfig loads path when given, otherwise the nearest minilang.yml
// above dir, otherwise the defaults.
func ResolveConfig(path, dir string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	found, err := FindConfig(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(found)
}

func decodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return raw.toConfig(), nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must be a non-empty string")
	}
	if c.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must be a non-empty string")
	}
	if c.MaxNesting < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_nesting must not be negative (got %d)", c.MaxNesting))
	}
	if c.MaxEvalDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_eval_depth must not be negative (got %d)", c.MaxEvalDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configFile struct {
	Prompt             *string   `yaml:"prompt"`
	ContinuationPrompt *string   `yaml:"continuation_prompt"`
	HistoryFile        *string   `yaml:"history_file"`
	Echo               *echoYAML `yaml:"echo"`
	Typecheck          *bool     `yaml:"typecheck"`
	MaxNesting         *int      `yaml:"max_nesting"`
	MaxEvalDepth       *int      `yaml:"max_eval_depth"`
}

type echoYAML struct {
	Tokens *bool `yaml:"tokens"`
	AST    *bool `yaml:"ast"`
	Type   *bool `yaml:"type"`
}

func (cf configFile) toConfig() *Config {
	cfg := DefaultConfig()
	setString(&cfg.Prompt, cf.Prompt)
	setString(&cfg.ContinuationPrompt, cf.ContinuationPrompt)
	if cf.HistoryFile != nil {
		cfg.HistoryFile = strings.TrimSpace(*cf.HistoryFile)
	}
	if cf.Echo != nil {
		setBool(&cfg.Echo.Tokens, cf.Echo.Tokens)
		setBool(&cfg.Echo.AST, cf.Echo.AST)
		setBool(&cfg.Echo.Type, cf.Echo.Type)
	}
	setBool(&cfg.Typecheck, cf.Typecheck)
	if cf.MaxNesting != nil {
		cfg.MaxNesting = *cf.MaxNesting
	}
	if cf.MaxEvalDepth != nil {
		cfg.MaxEvalDepth = *cf.MaxEvalDepth
	}
	return cfg
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
