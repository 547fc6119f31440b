package dom

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset detection order follows the HTML loading algorithm: a byte
// order mark wins, then an early <meta charset> declaration, then UTF-8
// validity, then the windows-1252 legacy default.

const metaSniffWindow = 1024

var (
	metaCharsetRe  = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?\s*([a-zA-Z0-9_-]+)`)
	contentTypeRe  = regexp.MustCompile(`(?i)charset=([a-zA-Z0-9_-]+)`)
	knownEncodings = map[string]encoding.Encoding{
		"utf-8":        nil,
		"utf8":         nil,
		"us-ascii":     nil,
		"ascii":        nil,
		"iso-8859-1":   charmap.ISO8859_1,
		"latin1":       charmap.ISO8859_1,
		"windows-1252": charmap.Windows1252,
		"iso-8859-2":   charmap.ISO8859_2,
		"windows-1251": charmap.Windows1251,
		"koi8-r":       charmap.KOI8R,
		"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	}
)

// DetectCharset names the charset of raw HTML bytes and reports whether
// a byte order mark was present.
func DetectCharset(data []byte) (name string, hasBOM bool) {
	if len(data) >= 3 && bytes.Equal(data[:3], []byte{0xEF, 0xBB, 0xBF}) {
		return "utf-8", true
	}
	if len(data) >= 2 {
		if bytes.Equal(data[:2], []byte{0xFF, 0xFE}) {
			return "utf-16le", true
		}
		if bytes.Equal(data[:2], []byte{0xFE, 0xFF}) {
			return "utf-16be", true
		}
	}

	if name := sniffMetaCharset(data); name != "" {
		return name, false
	}

	if utf8.Valid(data) {
		return "utf-8", false
	}
	return "windows-1252", false
}

func sniffMetaCharset(data []byte) string {
	window := data
	if len(window) > metaSniffWindow {
		window = window[:metaSniffWindow]
	}

	if m := metaCharsetRe.FindSubmatch(window); m != nil {
		return normalizeCharset(string(m[1]))
	}
	if m := contentTypeRe.FindSubmatch(window); m != nil {
		return normalizeCharset(string(m[1]))
	}
	return ""
}

func normalizeCharset(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := knownEncodings[name]; ok {
		return name
	}
	return ""
}

// DecodeHTML converts raw HTML bytes to UTF-8, stripping any BOM.
// Unknown charsets fall back to windows-1252 rather than failing:
// a garbled document still gets audited.
func DecodeHTML(data []byte) []byte {
	name, hasBOM := DetectCharset(data)

	if hasBOM && name == "utf-8" {
		return data[3:]
	}

	enc := knownEncodings[name]
	if enc == nil {
		return data
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return data
	}
	return decoded
}

// Load reads and parses an HTML file, applying charset detection first.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(DecodeHTML(data)))
}
