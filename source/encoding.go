package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported source encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingISO88591    = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// NormalizeEncoding maps accepted spellings onto one of the Encoding constants.
func NormalizeEncoding(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return EncodingISO88591, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}

// Decode wraps r so that it yields UTF-8. A leading UTF-8 BOM is dropped.
// UTF-8 input passes through unchanged and is validated by the caller.
func Decode(r io.Reader, name string) (io.Reader, error) {
	name, err := NormalizeEncoding(name)
	if err != nil {
		return nil, err
	}

	var enc encoding.Encoding
	switch name {
	case EncodingISO88591:
		enc = charmap.ISO8859_1
	case EncodingWindows1252:
		enc = charmap.Windows1252
	default:
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
