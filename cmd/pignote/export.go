package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	pignote "github.com/cemayhan20/PigNote"
	"github.com/cemayhan20/PigNote/internal/config"
	"github.com/cemayhan20/PigNote/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage     = errors.New("invalid usage")
	ErrNoInput   = errors.New("no input specified")
	ErrReadInput = errors.New("failed to read input file")
	ErrOutputDir = errors.New("failed to create output directory")
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// runExport exports one note file.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(positional))
	}
	inputPath := positional[0]

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := pignote.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	inputDir := filepath.Dir(inputPath)
	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = inputDir
	}
	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	if data, err := cfg.Encode(); err == nil {
		logger.Debug("effective config", "yaml", string(data))
	}
	opts := []pignote.Option{
		pignote.WithOutputDir(outputDir),
		pignote.WithBrowserPath(cfg.PDF.Browser),
		pignote.WithNoSandbox(cfg.PDF.NoSandbox),
		pignote.WithEngine(cfg.Markdown.Engine),
		pignote.WithAssetPath(cfg.Assets.BasePath),
		pignote.WithLogger(logger),
	}
	if cfg.PDF.FooterCrop != nil {
		opts = append(opts, pignote.WithFooterCrop(*cfg.PDF.FooterCrop))
	}

	exp, err := pignote.NewExporter(opts...)
	if err != nil {
		return err
	}

	timeout, _ := cfg.PDF.TimeoutDuration() // validated above
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if env.Signals != nil {
		stop := env.Signals(exp.Cancel)
		defer stop()
	}

	req := pignote.Request{
		Content:  string(content),
		Filename: resolveName(flags.name, inputPath),
		Format:   format,
		DarkMode: cfg.Output.Dark,
		BaseDir:  resolveBaseDir(flags.baseDir, inputDir),
	}

	start := env.Now()
	res, err := exp.Export(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, pignote.ErrPDFStructure) && res != nil:
		fmt.Fprintln(env.Stdout, res.Path)
		return fmt.Errorf("%w%s", err, hints.ForPDFStructure())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("export timed out after %s: %w%s", timeout, err, hints.ForTimeout())
	default:
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, res.Path)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "exported %s in %s\n", res.Format, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags overrides config values with the flags that were given.
func mergeFlags(f *exportFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.changed["dark"] {
		cfg.Output.Dark = f.dark
	}
	if f.engine != "" {
		cfg.Markdown.Engine = f.engine
	}
	if f.assets != "" {
		cfg.Assets.BasePath = f.assets
	}
	if f.pdf.browser != "" {
		cfg.PDF.Browser = f.pdf.browser
	}
	if f.changed["no-sandbox"] {
		cfg.PDF.NoSandbox = f.pdf.noSandbox
	}
	if f.changed["footer-crop"] {
		crop := f.pdf.footerCrop
		cfg.PDF.FooterCrop = &crop
	}
	if f.pdf.timeout != "" {
		cfg.PDF.Timeout = f.pdf.timeout
	}
}

// resolveName returns the flag value, or the input's base name without
// extension.
func resolveName(flagName, inputPath string) string {
	if strings.TrimSpace(flagName) != "" {
		return flagName
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveBaseDir returns the flag value, or the input's directory.
func resolveBaseDir(flagDir, inputDir string) string {
	if flagDir != "" {
		return flagDir
	}
	return inputDir
}
