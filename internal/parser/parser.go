// Package parser provides the single-token-lookahead cursor shared by the
// LL(1) recursive descent parsers for TextGrid files and tier-order lists.
package parser

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// Cursor maintains a single token lookahead over a shape-core tokenizer,
// transparently skipping trivia tokens (whitespace, comments, ...).
type Cursor struct {
	stream    shapetokenizer.Stream
	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool
	last      ast.Position
	skip      map[string]bool
	err       error
}

// NewCursor creates a cursor over tok, which must already be initialized
// from stream. Tokens whose kind is listed in skip are never returned.
func NewCursor(stream shapetokenizer.Stream, tok shapetokenizer.Tokenizer, skip ...string) *Cursor {
	c := &Cursor{
		stream:    stream,
		tokenizer: &tok,
		skip:      make(map[string]bool, len(skip)),
		last:      ast.ZeroPosition(),
	}
	for _, kind := range skip {
		c.skip[kind] = true
	}
	c.Advance() // Load first token
	return c
}

// Peek returns the current token without advancing, or nil at end of input.
func (c *Cursor) Peek() *shapetokenizer.Token {
	return c.current
}

// PeekKind returns the kind of the current token, or "" at end of input.
func (c *Cursor) PeekKind() string {
	if c.current == nil {
		return ""
	}
	return c.current.Kind()
}

// HasToken reports whether a token is available.
func (c *Cursor) HasToken() bool {
	return c.hasToken
}

// Advance moves to the next non-trivia token.
func (c *Cursor) Advance() {
	if c.current != nil {
		c.last = c.Position()
	}
	for {
		token, ok := c.tokenizer.NextToken()
		if !ok {
			c.hasToken = false
			c.current = nil
			if c.err == nil && !c.stream.IsEos() {
				c.err = fmt.Errorf("unrecognized input after %s", c.last.String())
			}
			return
		}
		if c.skip[token.Kind()] {
			continue
		}
		c.current = token
		c.hasToken = true
		return
	}
}

// Expect consumes a token of the expected kind and returns it.
func (c *Cursor) Expect(kind string) (*shapetokenizer.Token, error) {
	token := c.Peek()
	if token == nil {
		if c.err != nil {
			return nil, c.err
		}
		return nil, fmt.Errorf("expected %s after %s, got end of input", kind, c.last.String())
	}
	if token.Kind() != kind {
		return nil, fmt.Errorf("expected %s at %s, got %s %q",
			kind, c.PositionStr(), token.Kind(), token.ValueString())
	}
	c.Advance()
	return token, nil
}

// Err returns the error recorded when the input stopped matching any token
// before the end of the stream.
func (c *Cursor) Err() error {
	return c.err
}

// Position returns the current position for AST nodes and error messages.
func (c *Cursor) Position() ast.Position {
	if c.hasToken && c.current != nil {
		return ast.NewPosition(
			c.current.Offset(),
			c.current.Row(),
			c.current.Column(),
		)
	}
	return c.last
}

// PositionStr returns the current position as a string for error messages.
func (c *Cursor) PositionStr() string {
	return c.Position().String()
}
