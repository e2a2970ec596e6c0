package imageurl

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultWidth is the rendered width requested from the direct-content host.
const DefaultWidth = 400

const (
	driveHost  = "drive.google.com"
	directHost = "lh3.googleusercontent.com"
)

var (
	filePathPattern = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
	idParamPattern  = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// Normalizer rewrites Drive links using a fixed width.
type Normalizer struct {
	Width int
}

// Default is the normalizer used by the package-level functions.
var Default = Normalizer{Width: DefaultWidth}

// Normalize returns fallback for an empty url, the direct-content URL for a
// recognized Drive link, and the trimmed url otherwise.
func Normalize(raw, fallback string) string {
	return Default.Normalize(raw, fallback)
}

// Resolve is Normalize for display: urls that cannot be shown as an image
// (not http(s), or a Drive link without a file id) yield fallback.
func Resolve(raw, fallback string) string {
	return Default.Resolve(raw, fallback)
}

// FileID extracts the Drive file id from raw. ok is false when raw is not a
// Drive link or carries no id.
func FileID(raw string) (id string, ok bool) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, driveHost) {
		return "", false
	}
	if m := filePathPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := idParamPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

// Normalize implements the package-level Normalize with n's width.
func (n Normalizer) Normalize(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if strings.Contains(raw, directHost) {
		return raw
	}
	id, ok := FileID(raw)
	if !ok {
		return raw
	}
	return n.direct(id)
}

// Resolve implements the package-level Resolve with n's width.
func (n Normalizer) Resolve(raw, fallback string) string {
	if !Valid(raw) {
		return fallback
	}
	out := n.Normalize(raw, fallback)
	if !Valid(out) {
		return fallback
	}
	return out
}

// Valid reports whether raw looks displayable: an http(s) URL, and for
// Drive links one that names a file.
func Valid(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if strings.Contains(raw, driveHost) {
		return strings.Contains(raw, "/file/d/") || strings.Contains(raw, "id=")
	}
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

func (n Normalizer) direct(id string) string {
	width := n.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return fmt.Sprintf("https://%s/d/%s=w%d", directHost, id, width)
}
