// Package pdfbox edits page geometry of existing PDF files.
//
// CropBottom raises the lower edge of every page so that whatever a renderer
// printed in the bottom margin falls outside the visible area. All five page
// boxes are rewritten on each page node so viewers and printers agree.
package pdfbox

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrPDFStructure indicates the file could not be parsed or rewritten as a PDF.
var ErrPDFStructure = errors.New("invalid PDF structure")

// BoxNames lists the page boxes written by CropBottom, in write order.
var BoxNames = []string{"MediaBox", "CropBox", "TrimBox", "BleedBox", "ArtBox"}

// DefaultMediaBox is used when neither a page nor its parent carries one (A4).
var DefaultMediaBox = Rect{LLX: 0, LLY: 0, URX: 595, URY: 842}

func init() {
	// pdfcpu otherwise creates a configuration directory under the user's home.
	model.ConfigPath = "disable"
}

// Rect is a PDF rectangle in points: lower-left and upper-right corners.
type Rect struct {
	LLX, LLY, URX, URY float64
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.URY - r.LLY }

// Shrink raises the lower edge of r by points, clamped so at least one point
// of height remains. Negative amounts are treated as zero.
func Shrink(r Rect, points float64) Rect {
	trim := max(points, 0)
	r.LLY = min(r.LLY+trim, r.URY-1)
	return r
}

// PageBoxes holds the boxes set directly on one page node.
type PageBoxes struct {
	Page  int
	Boxes map[string]Rect
}

// CropBottom shrinks every page of the PDF at path by points from the bottom
// and writes the result back to path. The file is replaced atomically via a
// sibling temporary file; on error the original is left untouched.
func CropBottom(path string, points float64) error {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied output path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	ctx, err := readContext(f)
	if err != nil {
		return err
	}

	// Collect first, then write, so inheritance lookups never see edited pages.
	type update struct {
		page types.Dict
		box  Rect
	}
	updates := make([]update, 0, ctx.PageCount)
	for nr := 1; nr <= ctx.PageCount; nr++ {
		d, _, _, err := ctx.PageDict(nr, false)
		if err != nil {
			return fmt.Errorf("%w: page %d: %v", ErrPDFStructure, nr, err)
		}
		if d == nil {
			continue
		}
		updates = append(updates, update{page: d, box: Shrink(effectiveMediaBox(ctx, d), points)})
	}

	for _, u := range updates {
		for _, name := range BoxNames {
			u.page[name] = rectArray(u.box)
		}
	}

	tmp := path + ".tmp"
	if err := api.WriteContextFile(ctx, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPDFStructure, err)
	}
	// Windows refuses to rename over an open file.
	_ = f.Close()
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// ReadBoxes returns the boxes stored directly on each page node, without
// inheritance.
func ReadBoxes(path string) ([]PageBoxes, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	ctx, err := readContext(f)
	if err != nil {
		return nil, err
	}

	pages := make([]PageBoxes, 0, ctx.PageCount)
	for nr := 1; nr <= ctx.PageCount; nr++ {
		d, _, _, err := ctx.PageDict(nr, false)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrPDFStructure, nr, err)
		}
		pb := PageBoxes{Page: nr, Boxes: map[string]Rect{}}
		for _, name := range BoxNames {
			if r, ok := rectEntry(ctx, d, name); ok {
				pb.Boxes[name] = r
			}
		}
		pages = append(pages, pb)
	}
	return pages, nil
}

// effectiveMediaBox resolves the MediaBox of a page: the page's own entry,
// then its direct parent's, then DefaultMediaBox.
func effectiveMediaBox(ctx *model.Context, page types.Dict) Rect {
	if r, ok := rectEntry(ctx, page, "MediaBox"); ok {
		return r
	}
	if obj, found := page.Find("Parent"); found {
		if parent, err := ctx.DereferenceDict(obj); err == nil && parent != nil {
			if r, ok := rectEntry(ctx, parent, "MediaBox"); ok {
				return r
			}
		}
	}
	return DefaultMediaBox
}

// rectEntry reads a four-number array entry from d.
func rectEntry(ctx *model.Context, d types.Dict, key string) (Rect, bool) {
	obj, found := d.Find(key)
	if !found {
		return Rect{}, false
	}
	obj, err := ctx.Dereference(obj)
	if err != nil {
		return Rect{}, false
	}
	arr, ok := obj.(types.Array)
	if !ok || len(arr) != 4 {
		return Rect{}, false
	}

	var v [4]float64
	for i, o := range arr {
		n, err := ctx.DereferenceNumber(o)
		if err != nil {
			return Rect{}, false
		}
		v[i] = n
	}
	return Rect{LLX: v[0], LLY: v[1], URX: v[2], URY: v[3]}, true
}

// rectArray builds a fresh array per box so entries never share storage.
func rectArray(r Rect) types.Array {
	return types.Array{types.Float(r.LLX), types.Float(r.LLY), types.Float(r.URX), types.Float(r.URY)}
}

func readContext(rs io.ReadSeeker) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFStructure, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFStructure, err)
	}
	return ctx, nil
}
