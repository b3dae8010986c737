package tiers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-plotnik/internal/parser"
	"github.com/shapestone/shape-plotnik/internal/tokenizer"
)

// ErrMalformedOrder indicates a tier-order description that cannot be parsed.
var ErrMalformedOrder = errors.New("tiers: malformed tier order")

// ParseOrder parses a tier-order description.
//
// Accepted forms are a Python list literal, as printed by FormatOrder and by
// the older Python tooling, and a bare comma-separated list:
//
//	['phone', 'word']
//	[u'phone', "speaker's notes"]
//	phone, word
//
// Grammar:
//
//	Order = "[" [ Name { "," Name } [ "," ] ] "]" | Name { "," Name } ;
//	Name  = Quoted | Bare ;
func ParseOrder(text string) ([]string, error) {
	stream := shapetokenizer.NewStream(text)
	c := parser.NewCursor(stream, tokenizer.NewOrderTokenizerWithStream(stream), tokenizer.TokenWhitespace)

	names, err := parseOrder(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOrder, err)
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOrder, err)
	}
	if c.HasToken() {
		return nil, fmt.Errorf("%w: unexpected %q at %s", ErrMalformedOrder, c.Peek().ValueString(), c.PositionStr())
	}
	return names, nil
}

func parseOrder(c *parser.Cursor) ([]string, error) {
	if !c.HasToken() {
		if err := c.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("empty tier order")
	}

	if c.PeekKind() != tokenizer.TokenListOpen {
		return parseNames(c, "")
	}

	c.Advance()
	names, err := parseNames(c, tokenizer.TokenListClose)
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect(tokenizer.TokenListClose); err != nil {
		return nil, err
	}
	return names, nil
}

// parseNames parses Name { "," Name } up to the closing kind (or end of
// input when closing is empty). A trailing comma is allowed before closing.
func parseNames(c *parser.Cursor, closing string) ([]string, error) {
	names := []string{}
	for c.HasToken() && c.PeekKind() != closing {
		name, err := parseName(c)
		if err != nil {
			return nil, err
		}
		names = append(names, name)

		if !c.HasToken() || c.PeekKind() == closing {
			break
		}
		if _, err := c.Expect(tokenizer.TokenComma); err != nil {
			return nil, err
		}
	}
	if closing == "" && len(names) == 0 {
		return nil, errors.New("empty tier order")
	}
	return names, nil
}

func parseName(c *parser.Cursor) (string, error) {
	tok := c.Peek()
	switch tok.Kind() {
	case tokenizer.TokenBare:
		c.Advance()
		name := strings.TrimSpace(tok.ValueString())
		if name == "" {
			return "", fmt.Errorf("empty tier name at %s", c.PositionStr())
		}
		return name, nil
	case tokenizer.TokenQuoted:
		pos := c.PositionStr()
		c.Advance()
		name, err := unquotePython(tok.ValueString())
		if err != nil {
			return "", fmt.Errorf("tier name at %s: %v", pos, err)
		}
		return name, nil
	case tokenizer.TokenUnterminated:
		return "", fmt.Errorf("unterminated string at %s", c.PositionStr())
	default:
		return "", fmt.Errorf("expected tier name at %s, got %q", c.PositionStr(), tok.ValueString())
	}
}

// unquotePython decodes a Python string literal with an optional u, b or r
// prefix. Without a u prefix, \x escapes are bytes, as in Python 2 str repr.
func unquotePython(raw string) (string, error) {
	i := strings.IndexAny(raw, `'"`)
	if i < 0 || len(raw)-i < 2 {
		return "", fmt.Errorf("bad string literal %s", raw)
	}
	prefix := strings.ToLower(raw[:i])
	quote := raw[i]
	body := raw[i+1:]
	if body[len(body)-1] != quote {
		return "", fmt.Errorf("bad string literal %s", raw)
	}
	body = body[:len(body)-1]

	if strings.Contains(prefix, "r") {
		return body, nil
	}
	unicodeEscapes := strings.Contains(prefix, "u")

	var sb strings.Builder
	for len(body) > 0 {
		value, multibyte, tail, err := strconv.UnquoteChar(body, quote)
		if err != nil {
			// Python keeps unknown escapes such as \d verbatim.
			_, size := utf8.DecodeRuneInString(body)
			sb.WriteString(body[:size])
			body = body[size:]
			continue
		}
		if multibyte || unicodeEscapes || value < utf8.RuneSelf {
			sb.WriteRune(value)
		} else {
			sb.WriteByte(byte(value))
		}
		body = tail
	}
	return sb.String(), nil
}

// FormatOrder prints names as a Python list literal, e.g. ['phone', 'word'].
// ParseOrder reads the result back.
func FormatOrder(names []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quotePython(name))
	}
	sb.WriteByte(']')
	return sb.String()
}

// quotePython mirrors Python's repr for str: single quotes unless the value
// contains a single quote and no double quote.
func quotePython(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(quote):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case !unicode.IsPrint(r):
			switch {
			case r < utf8.RuneSelf:
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r < 0x10000:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				fmt.Fprintf(&sb, `\U%08x`, r)
			}
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
