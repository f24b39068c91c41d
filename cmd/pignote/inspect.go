package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/cemayhan20/PigNote/internal/pdfbox"
)

// runInspect prints the page boxes of a PDF.
func runInspect(args []string, env *Environment) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print JSON")
	fs.Usage = func() { printInspectUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: expected one PDF file", ErrUsage)
	}

	pages, err := pdfbox.ReadBoxes(fs.Arg(0))
	if err != nil {
		return err
	}

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}
	printBoxes(env.Stdout, pages)
	return nil
}

// printBoxes writes one block per page, boxes in write order.
func printBoxes(w io.Writer, pages []pdfbox.PageBoxes) {
	for _, p := range pages {
		fmt.Fprintf(w, "page %d\n", p.Page)
		if len(p.Boxes) == 0 {
			fmt.Fprintln(w, "  (inherited)")
			continue
		}
		for _, name := range pdfbox.BoxNames {
			r, ok := p.Boxes[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-9s %8.2f %8.2f %8.2f %8.2f\n", name, r.LLX, r.LLY, r.URX, r.URY)
		}
	}
}
