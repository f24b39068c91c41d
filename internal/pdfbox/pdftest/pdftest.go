// Package pdftest writes small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"testing"
)

// Page describes one page of a generated document. A nil MediaBox leaves the
// entry off the page node.
type Page struct {
	MediaBox []float64
}

// Doc describes a generated document. A nil ParentMediaBox leaves the entry
// off the page tree root.
type Doc struct {
	ParentMediaBox []float64
	Pages          []Page
}

// A4 is the portrait A4 rectangle in points.
var A4 = []float64{0, 0, 595, 842}

// Bytes renders d as a PDF 1.4 file with a classic cross-reference table.
func (d Doc) Bytes() []byte {
	// Object numbers: 1 catalog, 2 page tree, then page/content pairs.
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := range d.Pages {
		kids += fmt.Sprintf("%d 0 R ", 3+2*i)
	}
	tree := fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d", kids, len(d.Pages))
	if d.ParentMediaBox != nil {
		tree += " /MediaBox " + array(d.ParentMediaBox)
	}
	objects = append(objects, tree+" >>")

	for i, p := range d.Pages {
		page := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << >> /Contents %d 0 R", 4+2*i)
		if p.MediaBox != nil {
			page += " /MediaBox " + array(p.MediaBox)
		}
		objects = append(objects, page+" >>")

		content := fmt.Sprintf("0 0 0 RG 10 %d m 100 %d l S", 10+i, 10+i)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Write renders d to path, failing the test on error.
func Write(t testing.TB, path string, d Doc) {
	t.Helper()
	if err := os.WriteFile(path, d.Bytes(), 0o600); err != nil {
		t.Fatalf("writing fixture PDF: %v", err)
	}
}

func array(v []float64) string {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", f)
	}
	b.WriteByte(']')
	return b.String()
}
