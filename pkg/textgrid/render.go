package textgrid

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Render converts the TextGrid to Praat's long text format.
//
// Output example:
//
//	File type = "ooTextFile"
//	Object class = "TextGrid"
//
//	xmin = 0
//	xmax = 2.3
//	tiers? <exists>
//	size = 1
//	item []:
//	    item [1]:
//	        class = "IntervalTier"
//	        ...
func (g *TextGrid) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the long text format to w.
func (g *TextGrid) WriteTo(w io.Writer) (int64, error) {
	data, err := g.Render()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (g *TextGrid) render(buf *bytes.Buffer) error {
	buf.WriteString("File type = \"ooTextFile\"\n")
	buf.WriteString("Object class = \"TextGrid\"\n\n")
	writeNum(buf, "", "xmin", g.XMin)
	writeNum(buf, "", "xmax", g.XMax)
	if len(g.Tiers) == 0 {
		buf.WriteString("tiers? <absent> \n")
		return nil
	}
	buf.WriteString("tiers? <exists> \n")
	fmt.Fprintf(buf, "size = %d \n", len(g.Tiers))
	buf.WriteString("item []: \n")

	for i, t := range g.Tiers {
		if err := renderTier(buf, i+1, t); err != nil {
			return err
		}
	}
	return nil
}

func renderTier(buf *bytes.Buffer, index int, t *Tier) error {
	const (
		itemIndent  = "    "
		fieldIndent = "        "
		elemIndent  = "            "
	)

	fmt.Fprintf(buf, "%sitem [%d]:\n", itemIndent, index)
	writeStr(buf, fieldIndent, "class", string(t.Class))
	writeStr(buf, fieldIndent, "name", t.Name)
	writeNum(buf, fieldIndent, "xmin", t.XMin)
	writeNum(buf, fieldIndent, "xmax", t.XMax)

	switch t.Class {
	case IntervalTier:
		fmt.Fprintf(buf, "%sintervals: size = %d \n", fieldIndent, len(t.Intervals))
		for i, iv := range t.Intervals {
			fmt.Fprintf(buf, "%sintervals [%d]:\n", fieldIndent, i+1)
			writeNum(buf, elemIndent, "xmin", iv.XMin)
			writeNum(buf, elemIndent, "xmax", iv.XMax)
			writeStr(buf, elemIndent, "text", iv.Text)
		}
	case TextTier:
		fmt.Fprintf(buf, "%spoints: size = %d \n", fieldIndent, len(t.Points))
		for i, pt := range t.Points {
			fmt.Fprintf(buf, "%spoints [%d]:\n", fieldIndent, i+1)
			writeNum(buf, elemIndent, "number", pt.Time)
			writeStr(buf, elemIndent, "mark", pt.Mark)
		}
	default:
		return fmt.Errorf("textgrid: cannot render tier %q of class %q", t.Name, t.Class)
	}
	return nil
}

// Praat ends every "label = value" line with a space.
func writeNum(buf *bytes.Buffer, indent, label string, v float64) {
	fmt.Fprintf(buf, "%s%s = %s \n", indent, label, strconv.FormatFloat(v, 'f', -1, 64))
}

func writeStr(buf *bytes.Buffer, indent, label, v string) {
	fmt.Fprintf(buf, "%s%s = \"%s\" \n", indent, label, strings.ReplaceAll(v, `"`, `""`))
}
