// Package config loads the YAML configuration of the pignote CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cemayhan20/PigNote/internal/fileutil"
	"github.com/cemayhan20/PigNote/internal/hints"
	"github.com/cemayhan20/PigNote/internal/pipeline"
)

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "pignote"

const (
	MaxPathLength = 4096
	MaxFooterCrop = 842 // A4 height in points
)

// Engines lists the accepted markdown.engine values.
var Engines = []string{pipeline.EngineBuiltin, pipeline.EngineGoldmark}

// configExtensions are tried in order when a config is given by name.
var configExtensions = []string{".yaml", ".yml"}

// Config mirrors the YAML file. Zero values mean "use the default".
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Markdown MarkdownConfig `yaml:"markdown"`
	PDF      PDFConfig      `yaml:"pdf"`
	Assets   AssetsConfig   `yaml:"assets"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`  // empty = next to the note
	Dark bool   `yaml:"dark"` // dark theme for every format
}

type MarkdownConfig struct {
	Engine string `yaml:"engine"` // one of Engines
}

type PDFConfig struct {
	Browser    string   `yaml:"browser"` // empty = discover
	NoSandbox  bool     `yaml:"noSandbox"`
	FooterCrop *float64 `yaml:"footerCrop"` // points; nil = library default
	Timeout    string   `yaml:"timeout"`    // Go duration, empty = none
}

type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{Markdown: MarkdownConfig{Engine: pipeline.EngineBuiltin}}
}

// Validate reports the first invalid field. LoadConfig calls it; callers
// that change a loaded Config must call it again.
func (c *Config) Validate() error {
	paths := []struct{ field, value string }{
		{"output.dir", c.Output.Dir},
		{"pdf.browser", c.PDF.Browser},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if len(p.value) > MaxPathLength {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, p.field, len(p.value), MaxPathLength)
		}
	}

	if e := c.Markdown.Engine; e != "" && !slices.Contains(Engines, e) {
		return fmt.Errorf("%w: markdown.engine %q%s", ErrInvalidValue, e, hints.ForUnknownEngine(Engines))
	}

	if crop := c.PDF.FooterCrop; crop != nil && (*crop < 0 || *crop > MaxFooterCrop) {
		return fmt.Errorf("%w: pdf.footerCrop must be between 0 and %d, got %.2f", ErrInvalidValue, MaxFooterCrop, *crop)
	}

	_, err := c.PDF.TimeoutDuration()
	return err
}

// TimeoutDuration parses pdf.timeout. An empty value means no timeout.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	switch {
	case err != nil:
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, p.Timeout, err)
	case d < 0:
		return 0, fmt.Errorf("%w: pdf.timeout must not be negative, got %s", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// LoadConfig reads a config given as a path (anything containing a
// separator) or as a bare name looked up with SearchPaths. A missing file
// is an error; there is no silent fallback to defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !strings.ContainsAny(nameOrPath, `/\`) {
		found, err := findConfig(nameOrPath)
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path chosen by the user
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked for: the working
// directory first, then <user config dir>/pignote.
func SearchPaths(name string) []string {
	dirs := []string{""}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, AppDir))
	}

	paths := make([]string, 0, len(dirs)*len(configExtensions))
	for _, dir := range dirs {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

func findConfig(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
