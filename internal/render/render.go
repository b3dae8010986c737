// Package render converts Shape AST records into CSV bytes.
//
// A record is an *ast.ArrayDataNode of *ast.LiteralNode fields; a file is an
// *ast.ArrayDataNode of records. Fields are quoted following RFC 4180 only
// when they contain the delimiter, a quote, CR or LF.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Options configures CSV rendering.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// UseCRLF ends lines with "\r\n" instead of "\n". Default: true
	UseCRLF bool
}

// DefaultOptions returns the default rendering configuration.
func DefaultOptions() Options {
	return Options{
		Comma:   ',',
		UseCRLF: true,
	}
}

// Validate reports whether the options can produce readable CSV.
func (o Options) Validate() error {
	if o.Comma == '"' || o.Comma == '\r' || o.Comma == '\n' ||
		!utf8.ValidRune(o.Comma) || o.Comma == utf8.RuneError {
		return fmt.Errorf("render: invalid delimiter %q", o.Comma)
	}
	return nil
}

func (o Options) lineEnding() string {
	if o.UseCRLF {
		return "\r\n"
	}
	return "\n"
}

// Record builds a record node from string fields.
func Record(fields []string) *ast.ArrayDataNode {
	nodes := make([]ast.SchemaNode, len(fields))
	for i, f := range fields {
		nodes[i] = ast.NewLiteralNode(f, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(nodes, ast.ZeroPosition())
}

// Render converts a file or record node to CSV bytes.
// A file node renders one line per record, each followed by a line ending.
func Render(node ast.SchemaNode, opts Options) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if err := renderNode(node, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AppendRecord renders one record node followed by a line ending into buf.
func AppendRecord(buf *bytes.Buffer, record *ast.ArrayDataNode, opts Options) error {
	if err := renderRecord(record, buf, opts.Comma); err != nil {
		return err
	}
	buf.WriteString(opts.lineEnding())
	return nil
}

// renderNode recursively renders an AST node to the buffer.
func renderNode(node ast.SchemaNode, buf *bytes.Buffer, opts Options) error {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		return renderArrayData(n, buf, opts)
	case *ast.LiteralNode:
		return renderLiteral(n, buf, opts.Comma)
	default:
		return fmt.Errorf("unsupported node type for CSV rendering: %T", node)
	}
}

// renderArrayData handles both the file level (array of records) and the
// record level (array of fields).
func renderArrayData(node *ast.ArrayDataNode, buf *bytes.Buffer, opts Options) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch elements[0].(type) {
	case *ast.ArrayDataNode:
		for _, elem := range elements {
			record, ok := elem.(*ast.ArrayDataNode)
			if !ok {
				return fmt.Errorf("unexpected element type in file: %T", elem)
			}
			if err := AppendRecord(buf, record, opts); err != nil {
				return err
			}
		}
		return nil

	case *ast.LiteralNode:
		return renderRecord(node, buf, opts.Comma)

	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

func renderRecord(node *ast.ArrayDataNode, buf *bytes.Buffer, delim rune) error {
	for i, elem := range node.Elements() {
		if i > 0 {
			buf.WriteRune(delim)
		}
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return fmt.Errorf("unexpected element type in record: %T", elem)
		}
		if err := renderLiteral(lit, buf, delim); err != nil {
			return err
		}
	}
	return nil
}

// renderLiteral renders a LiteralNode as a CSV field.
func renderLiteral(node *ast.LiteralNode, buf *bytes.Buffer, delim rune) error {
	var fieldValue string
	switch v := node.Value().(type) {
	case string:
		fieldValue = v
	case nil:
		fieldValue = ""
	default:
		fieldValue = fmt.Sprintf("%v", v)
	}

	writeField(buf, fieldValue, delim)
	return nil
}

// writeField writes a CSV field, quoting it when it contains the delimiter,
// quotes, newlines or carriage returns. Embedded quotes are doubled.
func writeField(buf *bytes.Buffer, value string, delim rune) {
	if !strings.ContainsRune(value, delim) && !strings.ContainsAny(value, "\"\n\r") {
		buf.WriteString(value)
		return
	}

	buf.WriteByte('"')
	for _, ch := range value {
		if ch == '"' {
			buf.WriteString(`""`)
		} else {
			buf.WriteRune(ch)
		}
	}
	buf.WriteByte('"')
}
