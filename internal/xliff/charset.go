package xliff

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	// reDeclEncoding matches the encoding pseudo-attribute of a leading XML declaration.
	reDeclEncoding = regexp.MustCompile(`^(\s*<\?xml[^?]*?\sencoding\s*=\s*["'])([A-Za-z0-9._:\-]+)(["'])`)
)

// decodeUTF8 returns raw as UTF-8 text whose declaration, if any, says so.
// A byte order mark wins, then the declared encoding, then detection for
// undeclared input that is not valid UTF-8.
func decodeUTF8(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return declareUTF8(raw[len(bomUTF8):]), nil
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		text, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode UTF-16: %w", err)
		}
		return declareUTF8(text), nil
	}

	if m := reDeclEncoding.FindSubmatch(raw); m != nil {
		label := string(m[2])
		if isUTF8Label(label) {
			return declareUTF8(raw), nil
		}
		enc, name := charset.Lookup(label)
		if enc == nil {
			return nil, fmt.Errorf("unsupported declared encoding %q", label)
		}
		text, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return declareUTF8(text), nil
	}

	if utf8.Valid(raw) {
		return raw, nil
	}
	return decodeWithDetection(raw), nil
}

// decodeWithDetection detects the charset of undeclared data and decodes it.
// Data no candidate can decode is returned unchanged.
func decodeWithDetection(data []byte) []byte {
	results, err := chardet.NewTextDetector().DetectAll(data)
	if err != nil {
		return data
	}
	for _, r := range results {
		enc := lookupEncoding(r.Charset)
		if enc == nil {
			continue
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err == nil && utf8.Valid(decoded) {
			return decoded
		}
	}
	return data
}

// lookupEncoding maps a detector charset name to an encoding, nil when unknown.
func lookupEncoding(name string) encoding.Encoding {
	if isUTF8Label(name) {
		return nil
	}
	enc, _ := charset.Lookup(name)
	return enc
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(strings.ReplaceAll(label, "-", "")) {
	case "utf8", "unicode11utf8", "unicode20utf8", "xunicode20utf8":
		return true
	}
	return false
}

func declareUTF8(text []byte) []byte {
	return reDeclEncoding.ReplaceAll(text, []byte("${1}UTF-8${3}"))
}
