package pipeline

import (
	"context"
	"encoding/base64"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var imgTagPattern = regexp.MustCompile(`<img\s+[^>]*src=["']([^"'>]+)["'][^>]*>`)

// ResolveImages makes every <img> in htmlContent loadable from a standalone
// file. Relative sources are read from baseDir and inlined as base64 data
// URIs; unreadable ones become absolute file:/// URLs. Data URIs, http(s)
// URLs and file:/// URLs are left alone, and so is everything when baseDir is
// empty. Text outside matched tags is copied unchanged.
func ResolveImages(ctx context.Context, htmlContent, baseDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	matches := imgTagPattern.FindAllStringSubmatchIndex(htmlContent, -1)
	if len(matches) == 0 {
		return htmlContent, nil
	}

	var sb strings.Builder
	sb.Grow(len(htmlContent))
	last := 0
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		tag := htmlContent[m[0]:m[1]]
		src := htmlContent[m[2]:m[3]]
		sb.WriteString(htmlContent[last:m[0]])

		replacement, err := resolveImageTag(ctx, tag, src, baseDir)
		if err != nil {
			return "", err
		}
		sb.WriteString(replacement)
		last = m[1]
	}
	sb.WriteString(htmlContent[last:])
	return sb.String(), nil
}

func resolveImageTag(ctx context.Context, tag, src, baseDir string) (string, error) {
	if !isResolvableSource(src) || baseDir == "" {
		return tag, nil
	}

	path := src
	if !filepath.IsAbs(src) {
		path = filepath.Join(baseDir, src)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- note author controls baseDir and src
	if err != nil {
		return strings.Replace(tag, src, absFileURL(path), 1), nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	uri := "data:" + MimeTypeFor(path) + ";base64," + base64.StdEncoding.EncodeToString(data)
	return strings.Replace(tag, src, uri, 1), nil
}

// isResolvableSource returns false for sources that already load on their own.
func isResolvableSource(src string) bool {
	return !strings.HasPrefix(src, "data:") &&
		!strings.HasPrefix(src, "http://") &&
		!strings.HasPrefix(src, "https://") &&
		!strings.HasPrefix(src, "file:///")
}

// MimeTypeFor returns the image MIME type for path's extension.
func MimeTypeFor(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// absFileURL converts path to an absolute file:/// URL.
func absFileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return PathToFileURL(path)
}

// PathToFileURL converts an absolute path to a file:/// URL.
// Handles both Unix and Windows paths.
func PathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths gain the leading slash of file:///C:/...
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
