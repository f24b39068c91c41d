package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pignote <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export a note to PDF, HTML or DOCX")
	fmt.Fprintln(w, "  inspect    Show the page boxes of a PDF")
	fmt.Fprintln(w, "  doctor     Check the PDF renderer and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pignote help <command>' for details on a specific command.")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pignote export <note> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a Markdown or HTML note.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  note    Markdown or HTML file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Format: pdf, html, docx (default pdf)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to the note)")
	fmt.Fprintln(w, "  -n, --name <s>            File name without extension (default: note name)")
	fmt.Fprintln(w, "      --dark                Dark theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --base-dir <dir>      Directory for relative image paths (default: note dir)")
	fmt.Fprintln(w, "      --engine <s>          Markdown engine: builtin, goldmark")
	fmt.Fprintln(w, "      --assets <dir>        Custom layouts and icons")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --browser <path>      Chrome/Chromium/Edge executable")
	fmt.Fprintln(w, "      --no-sandbox          Disable the browser sandbox (Docker/CI)")
	fmt.Fprintln(w, "      --footer-crop <pt>    Points cropped from each page bottom (0 = off)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PIGNOTE_BROWSER_BIN       Browser executable")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pignote inspect <file.pdf> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the MediaBox, CropBox, TrimBox, BleedBox and ArtBox of every page.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pignote doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a browser is installed and the temp directory is writable.")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pignote version")
	default:
		fmt.Fprintf(env.Stdout, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stdout)
	}
}
