package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pdfFlags holds renderer flags.
type pdfFlags struct {
	browser    string
	noSandbox  bool
	footerCrop float64
	timeout    string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common  commonFlags
	format  string
	output  string
	name    string
	baseDir string
	dark    bool
	engine  string
	assets  string
	pdf     pdfFlags

	// changed records which flags were given, so unset ones leave the
	// config value alone.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addPDFFlags adds renderer flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.StringVar(&f.browser, "browser", "", "Chrome/Chromium/Edge executable")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "run the browser without its sandbox")
	fs.Float64Var(&f.footerCrop, "footer-crop", 0, "points cropped from each page bottom (0 = off)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "export timeout (e.g., 30s, 2m)")
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, usage io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &exportFlags{changed: map[string]bool{}}

	fs.StringVarP(&f.format, "format", "f", "pdf", "output format: pdf, html, docx")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.name, "name", "n", "", "output file name without extension")
	fs.StringVar(&f.baseDir, "base-dir", "", "directory relative image paths resolve against")
	fs.BoolVar(&f.dark, "dark", false, "use the dark theme")
	fs.StringVar(&f.engine, "engine", "", "markdown engine: builtin, goldmark")
	fs.StringVar(&f.assets, "assets", "", "custom layout and icon directory")

	addCommonFlags(fs, &f.common)
	addPDFFlags(fs, &f.pdf)

	fs.Usage = func() { printExportUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
