// Package textenc decodes corpus input files to UTF-8.
//
// Praat saves TextGrids as UTF-16 with a byte order mark whenever a label is
// outside ASCII, and Plotnik files made on classic Macintoshes are Mac Roman.
package textenc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for encoding names this package does not know.
var ErrUnknownEncoding = errors.New("textenc: unknown encoding")

// Auto decodes UTF-8, switching to UTF-16 or skipping a UTF-8 BOM when the
// input starts with a byte order mark.
const Auto = "auto"

// Names lists the accepted encoding names.
func Names() []string {
	return []string{Auto, "utf-8", "utf-16", "utf-16le", "utf-16be", "macintosh", "latin1", "windows-1252"}
}

// Lookup returns the encoding for name. Names are case-insensitive.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Auto:
		return bomSniffing{}, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "macintosh", "macroman", "mac-roman":
		return charmap.Macintosh, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// NewReader wraps r so that it yields UTF-8 decoded from the named encoding.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// bomSniffing decodes UTF-8 unless a BOM says otherwise.
type bomSniffing struct{}

func (bomSniffing) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: unicode.BOMOverride(unicode.UTF8.NewDecoder())}
}

func (bomSniffing) NewEncoder() *encoding.Encoder {
	return unicode.UTF8.NewEncoder()
}
