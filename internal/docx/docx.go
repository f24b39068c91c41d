// Package docx writes Word documents whose content is a single HTML chunk.
//
// The document body holds one w:altChunk pointing at word/afchunk1.html, so
// Word imports the HTML when the file is opened. No paragraph or run
// structure is produced.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"
)

// Part names in archive order.
const (
	PartContentTypes = "[Content_Types].xml"
	PartRels         = "_rels/.rels"
	PartApp          = "docProps/app.xml"
	PartCore         = "docProps/core.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartDocument     = "word/document.xml"
	PartChunk        = "word/afchunk1.html"
)

// Parts lists every part written by Write.
var Parts = []string{
	PartContentTypes, PartRels, PartApp, PartCore,
	PartDocumentRels, PartDocument, PartChunk,
}

// ChunkRelID is the relationship id linking document.xml to the HTML chunk.
const ChunkRelID = "rIdHtml1"

// W3CDTF is the timestamp layout used by dcterms:created and dcterms:modified.
const W3CDTF = "2006-01-02T15:04:05Z"

// Package describes one document.
type Package struct {
	// Chunk is the complete HTML page embedded as the document body.
	Chunk []byte
	// Creator fills dc:creator, cp:lastModifiedBy and the application name.
	Creator string
	// Created is written in UTC as both creation and modification time.
	Created time.Time
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
  <Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
  <Override PartName="/word/afchunk1.html" ContentType="text/html"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="` + ChunkRelID + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/aFChunk" Target="afchunk1.html"/>
</Relationships>`

// A4 portrait with one-inch margins, in twentieths of a point.
const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>
<w:altChunk r:id="` + ChunkRelID + `"/>
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr></w:body></w:document>`

var xmlFuncs = template.FuncMap{"xml": template.HTMLEscapeString}

var appTemplate = template.Must(template.New("app").Funcs(xmlFuncs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">
  <Application>{{xml .Creator}}</Application>
  <DocSecurity>0</DocSecurity>
  <ScaleCrop>false</ScaleCrop>
  <Company></Company>
  <LinksUpToDate>false</LinksUpToDate>
  <SharedDoc>false</SharedDoc>
  <HyperlinksChanged>false</HyperlinksChanged>
  <AppVersion>16.0000</AppVersion>
</Properties>`))

var coreTemplate = template.Must(template.New("core").Funcs(xmlFuncs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <dcterms:created xsi:type="dcterms:W3CDTF">{{.Stamp}}</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">{{.Stamp}}</dcterms:modified>
  <dc:creator>{{xml .Creator}}</dc:creator>
  <cp:lastModifiedBy>{{xml .Creator}}</cp:lastModifiedBy>
</cp:coreProperties>`))

// Write streams the archive for p to w.
func Write(w io.Writer, p Package) error {
	data := struct {
		Creator string
		Stamp   string
	}{p.Creator, p.Created.UTC().Format(W3CDTF)}

	var app, core bytes.Buffer
	if err := appTemplate.Execute(&app, data); err != nil {
		return fmt.Errorf("rendering %s: %w", PartApp, err)
	}
	if err := coreTemplate.Execute(&core, data); err != nil {
		return fmt.Errorf("rendering %s: %w", PartCore, err)
	}

	parts := map[string][]byte{
		PartContentTypes: []byte(contentTypesXML),
		PartRels:         []byte(relsXML),
		PartApp:          app.Bytes(),
		PartCore:         core.Bytes(),
		PartDocumentRels: []byte(documentRelsXML),
		PartDocument:     []byte(documentXML),
		PartChunk:        p.Chunk,
	}

	zw := zip.NewWriter(w)
	for _, name := range Parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: p.Created,
		})
		if err != nil {
			return fmt.Errorf("adding %s: %w", name, err)
		}
		if _, err := fw.Write(parts[name]); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return zw.Close()
}

// WriteFile writes the archive for p to path. A partially written file is
// removed on error.
func WriteFile(path string, p Package) (err error) {
	f, err := os.Create(path) // #nosec G304 -- caller-supplied output path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return Write(f, p)
}
