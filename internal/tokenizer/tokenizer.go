package tokenizer

import (
	"strings"
	"unicode"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTextGridTokenizer creates a tokenizer for Praat TextGrid text files
// (both the long and the short format).
//
// Matchers are tried in order:
// 1. Newlines (CRLF before LF and CR)
// 2. Whitespace and comments
// 3. Punctuation
// 4. Strings, flags, numbers and labels
func NewTextGridTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\r\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\r"),

		WhitespaceMatcher(),
		CommentMatcher(),

		tokenizer.StringMatcherFunc(TokenEquals, "="),
		tokenizer.StringMatcherFunc(TokenColon, ":"),
		tokenizer.StringMatcherFunc(TokenLBracket, "["),
		tokenizer.StringMatcherFunc(TokenRBracket, "]"),

		TextGridStringMatcher(),
		FlagMatcher(),
		NumberMatcher(),
		LabelMatcher(),
	)
}

// NewTextGridTokenizerWithStream creates a TextGrid tokenizer reading from stream.
func NewTextGridTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTextGridTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// NewOrderTokenizer creates a tokenizer for tier-order lists, as printed by
// Python (['a', u'b']) or written by hand (a, b).
func NewOrderTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		spaceMatcher(func(r rune) bool { return unicode.IsSpace(r) }),
		tokenizer.StringMatcherFunc(TokenListOpen, "["),
		tokenizer.StringMatcherFunc(TokenListClose, "]"),
		tokenizer.StringMatcherFunc(TokenComma, ","),
		NameMatcher(),
	)
}

// NewOrderTokenizerWithStream creates an order tokenizer reading from stream.
func NewOrderTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewOrderTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// WhitespaceMatcher matches runs of horizontal whitespace.
func WhitespaceMatcher() tokenizer.Matcher {
	return spaceMatcher(func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\f' || r == '\v' || r == '\u00a0'
	})
}

func spaceMatcher(isSpace func(rune) bool) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || !isSpace(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenWhitespace, value)
	}
}

// CommentMatcher matches a '!' comment up to (not including) the line end.
func CommentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != '!' {
			return nil
		}
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || r == '\n' || r == '\r' {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		return tokenizer.NewToken(TokenComment, value)
	}
}

// TextGridStringMatcher matches a double-quoted TextGrid string, keeping the
// raw text with its quotes; use Unquote for the value. Strings may span lines.
// A string without a closing quote yields TokenUnterminated.
func TextGridStringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != '"' {
			return nil
		}
		stream.NextChar()

		value := []rune{'"'}
		for {
			r, ok := stream.PeekChar()
			if !ok {
				return tokenizer.NewToken(TokenUnterminated, value)
			}
			stream.NextChar()
			value = append(value, r)
			if r != '"' {
				continue
			}
			// "" is an escaped quote; anything else closes the string.
			next, ok := stream.PeekChar()
			if !ok || next != '"' {
				return tokenizer.NewToken(TokenString, value)
			}
			stream.NextChar()
			value = append(value, '"')
		}
	}
}

// Unquote returns the value of a TokenString: the text between the outer
// quotes with each "" collapsed to ".
func Unquote(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	return strings.ReplaceAll(raw, `""`, `"`)
}

// FlagMatcher matches <exists> and <absent>, or any <word>.
func FlagMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != '<' {
			return nil
		}
		stream.NextChar()
		value := []rune{'<'}
		for {
			r, ok := stream.PeekChar()
			if !ok || r == '\n' || r == '\r' {
				break
			}
			stream.NextChar()
			value = append(value, r)
			if r == '>' {
				break
			}
		}
		return tokenizer.NewToken(TokenFlag, value)
	}
}

// NumberMatcher matches decimal numbers with optional sign, fraction and exponent.
//
// Grammar:
//
//	Number = [ "+" | "-" ] Digits [ "." Digits ] [ ( "e" | "E" ) [ "+" | "-" ] Digits ] ;
//
// The matcher is permissive about malformed tails; the parser validates the value.
func NumberMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || !(isDigit(r) || r == '-' || r == '+' || r == '.') {
			return nil
		}

		var value []rune
		take := func(accept func(rune) bool) {
			for {
				r, ok := stream.PeekChar()
				if !ok || !accept(r) {
					return
				}
				stream.NextChar()
				value = append(value, r)
			}
		}
		takeOne := func(accept func(rune) bool) bool {
			r, ok := stream.PeekChar()
			if !ok || !accept(r) {
				return false
			}
			stream.NextChar()
			value = append(value, r)
			return true
		}
		isSign := func(r rune) bool { return r == '-' || r == '+' }

		takeOne(isSign)
		take(isDigit)
		if takeOne(func(r rune) bool { return r == '.' }) {
			take(isDigit)
		}
		if takeOne(func(r rune) bool { return r == 'e' || r == 'E' }) {
			takeOne(isSign)
			take(isDigit)
		}
		return tokenizer.NewToken(TokenNumber, value)
	}
}

// LabelMatcher matches TextGrid field labels such as "xmin" or "tiers?".
func LabelMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || !(unicode.IsLetter(r) || r == '_') {
			return nil
		}
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || !(unicode.IsLetter(r) || isDigit(r) || r == '_' || r == '?') {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		return tokenizer.NewToken(TokenLabel, value)
	}
}

// NameMatcher matches one tier name in an order list: a quoted string with an
// optional Python prefix (u, b, r and combinations), or a bare run of
// characters up to the next ',', '[', ']' or line end.
//
// Quoted names keep their raw text (prefix, quotes and escapes) so the parser
// can apply the prefix's escape rules.
func NameMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || isOrderDelim(r) {
			return nil
		}

		var value []rune
		if !isQuote(r) {
			for {
				r, ok := stream.PeekChar()
				if !ok || isOrderDelim(r) {
					return tokenizer.NewToken(TokenBare, value)
				}
				if isQuote(r) && isStringPrefix(value) {
					break
				}
				stream.NextChar()
				value = append(value, r)
			}
		}

		// Quoted name; r is the opening quote.
		quote, _ := stream.PeekChar()
		stream.NextChar()
		value = append(value, quote)
		for {
			r, ok := stream.PeekChar()
			if !ok {
				return tokenizer.NewToken(TokenUnterminated, value)
			}
			stream.NextChar()
			value = append(value, r)
			switch r {
			case '\\':
				if esc, ok := stream.PeekChar(); ok {
					stream.NextChar()
					value = append(value, esc)
				}
			case quote:
				return tokenizer.NewToken(TokenQuoted, value)
			}
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isQuote(r rune) bool {
	return r == '\'' || r == '"'
}

func isOrderDelim(r rune) bool {
	return r == ',' || r == '[' || r == ']' || r == '\n' || r == '\r'
}

// isStringPrefix reports whether prefix is a Python string prefix.
func isStringPrefix(prefix []rune) bool {
	switch len(prefix) {
	case 0:
		return true
	case 1:
		switch unicode.ToLower(prefix[0]) {
		case 'u', 'b', 'r':
			return true
		}
	case 2:
		a, b := unicode.ToLower(prefix[0]), unicode.ToLower(prefix[1])
		return (a == 'u' || a == 'b') && b == 'r' || a == 'r' && b == 'b'
	}
	return false
}
