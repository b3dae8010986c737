package textgrid

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-plotnik/internal/parser"
	"github.com/shapestone/shape-plotnik/internal/textenc"
	"github.com/shapestone/shape-plotnik/internal/tokenizer"
)

var (
	// ErrNotTextGrid indicates a Praat text file holding some other object.
	ErrNotTextGrid = errors.New("textgrid: not a TextGrid")

	// ErrMalformed indicates the file does not follow the TextGrid text grammar.
	ErrMalformed = errors.New("textgrid: malformed file")
)

const (
	flagExists = "<exists>"
	flagAbsent = "<absent>"

	// maxPrealloc caps slice preallocation from declared sizes.
	maxPrealloc = 4096
)

// Parse parses a TextGrid in either Praat text format from a string.
func Parse(input string) (*TextGrid, error) {
	return parseStream(shapetokenizer.NewStream(input))
}

// ParseReader parses a TextGrid from r, which must yield UTF-8.
func ParseReader(r io.Reader) (*TextGrid, error) {
	return parseStream(shapetokenizer.NewStreamFromReader(r))
}

// ParseFile reads the TextGrid at path, decoding it from the named encoding
// (see internal/textenc; "auto" follows a byte order mark, else UTF-8).
func ParseFile(path, encoding string) (*TextGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := textenc.NewReader(f, encoding)
	if err != nil {
		return nil, err
	}
	tg, err := ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tg, nil
}

func parseStream(stream shapetokenizer.Stream) (*TextGrid, error) {
	tok := tokenizer.NewTextGridTokenizerWithStream(stream)
	p := &gridParser{
		c: parser.NewCursor(stream, tok,
			tokenizer.TokenWhitespace, tokenizer.TokenNewline, tokenizer.TokenComment),
	}
	return p.parseFile()
}

// gridParser reads a TextGrid as Praat does: as a sequence of values
// (strings, numbers and flags), skipping the labels, '=' and ':' signs and
// bracketed indices that only the long format carries.
//
// Grammar, over values only:
//
//	File     = "ooTextFile" "TextGrid" xmin xmax Flag [ size { Tier } ] ;
//	Tier     = class name xmin xmax count { Interval | Point } ;
//	Interval = xmin xmax text ;
//	Point    = time mark ;
type gridParser struct {
	c *parser.Cursor
}

func (p *gridParser) parseFile() (*TextGrid, error) {
	fileType, err := p.str("file type")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(fileType, "ooTextFile") {
		return nil, fmt.Errorf("%w: file type %q", ErrNotTextGrid, fileType)
	}
	class, err := p.str("object class")
	if err != nil {
		return nil, err
	}
	if class != "TextGrid" {
		return nil, fmt.Errorf("%w: object class %q", ErrNotTextGrid, class)
	}

	tg := New()
	if tg.XMin, err = p.num("xmin"); err != nil {
		return nil, err
	}
	if tg.XMax, err = p.num("xmax"); err != nil {
		return nil, err
	}
	exists, err := p.flag("tiers?")
	if err != nil {
		return nil, err
	}
	if !exists {
		return tg, nil
	}

	size, err := p.count("size")
	if err != nil {
		return nil, err
	}
	tg.Tiers = make([]*Tier, 0, min(size, maxPrealloc))
	for i := 0; i < size; i++ {
		tier, err := p.parseTier()
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i+1, err)
		}
		tg.Tiers = append(tg.Tiers, tier)
	}
	return tg, nil
}

func (p *gridParser) parseTier() (*Tier, error) {
	class, err := p.str("class")
	if err != nil {
		return nil, err
	}
	tier := &Tier{Class: Class(class)}
	if tier.Name, err = p.str("name"); err != nil {
		return nil, err
	}
	if tier.XMin, err = p.num("xmin"); err != nil {
		return nil, err
	}
	if tier.XMax, err = p.num("xmax"); err != nil {
		return nil, err
	}
	n, err := p.count("size")
	if err != nil {
		return nil, err
	}

	switch tier.Class {
	case IntervalTier:
		tier.Intervals = make([]Interval, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			var iv Interval
			if iv.XMin, err = p.num("interval xmin"); err != nil {
				return nil, err
			}
			if iv.XMax, err = p.num("interval xmax"); err != nil {
				return nil, err
			}
			if iv.Text, err = p.str("interval text"); err != nil {
				return nil, err
			}
			tier.Intervals = append(tier.Intervals, iv)
		}
	case TextTier:
		tier.Points = make([]Point, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			var pt Point
			if pt.Time, err = p.num("point number"); err != nil {
				return nil, err
			}
			if pt.Mark, err = p.str("point mark"); err != nil {
				return nil, err
			}
			tier.Points = append(tier.Points, pt)
		}
	default:
		return nil, fmt.Errorf("%w: unknown tier class %q", ErrMalformed, class)
	}
	return tier, nil
}

// skipLabels advances past labels, '=', ':' and bracketed indices.
func (p *gridParser) skipLabels() error {
	for p.c.HasToken() {
		switch p.c.PeekKind() {
		case tokenizer.TokenLabel, tokenizer.TokenEquals, tokenizer.TokenColon:
			p.c.Advance()
		case tokenizer.TokenLBracket:
			start := p.c.PositionStr()
			p.c.Advance()
			for p.c.HasToken() && p.c.PeekKind() != tokenizer.TokenRBracket {
				p.c.Advance()
			}
			if !p.c.HasToken() {
				return fmt.Errorf("%w: unclosed '[' at %s", ErrMalformed, start)
			}
			p.c.Advance()
		default:
			return nil
		}
	}
	return nil
}

func (p *gridParser) value(what, kind string) (string, error) {
	if err := p.skipLabels(); err != nil {
		return "", err
	}
	tok, err := p.c.Expect(kind)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMalformed, what, err)
	}
	return tok.ValueString(), nil
}

func (p *gridParser) str(what string) (string, error) {
	raw, err := p.value(what, tokenizer.TokenString)
	if err != nil {
		return "", err
	}
	return tokenizer.Unquote(raw), nil
}

func (p *gridParser) num(what string) (float64, error) {
	raw, err := p.value(what, tokenizer.TokenNumber)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: bad number %q", ErrMalformed, what, raw)
	}
	return f, nil
}

func (p *gridParser) count(what string) (int, error) {
	raw, err := p.value(what, tokenizer.TokenNumber)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: bad count %q", ErrMalformed, what, raw)
	}
	return n, nil
}

func (p *gridParser) flag(what string) (bool, error) {
	raw, err := p.value(what, tokenizer.TokenFlag)
	if err != nil {
		return false, err
	}
	switch raw {
	case flagExists:
		return true, nil
	case flagAbsent:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s: unknown flag %q", ErrMalformed, what, raw)
	}
}
