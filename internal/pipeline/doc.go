// Package pipeline turns note source text into an HTML body ready for packaging.
//
// Stages:
//   - Markdown to HTML, either with the built-in line-oriented parser
//     (MarkdownToHTML, ProcessInline) or with goldmark
//   - Body extraction for sources that are already complete HTML documents
//   - Image resolution, which inlines local <img> files as data URIs
//
// Every stage takes a context and stops with ctx.Err() once it is done,
// checking between lines or images rather than only at the start.
package pipeline
