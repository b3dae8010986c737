// Package tiers lists and rewrites the tier order of annotation documents.
//
// The package depends on documents only through the narrow Document
// interface, so any annotation format with named tiers can be plugged in.
// FromTextGrid adapts Praat TextGrids from package textgrid.
//
// # Example
//
//	tg, _ := textgrid.ParseFile("in.TextGrid", "auto")
//	doc := tiers.FromTextGrid(tg)
//	fmt.Println(tiers.FormatOrder(tiers.ListTierNames(doc)))
//
//	fixed, err := tiers.Reorder(doc, []string{"word", "phone"})
//	if err != nil {
//	    // a requested tier is missing
//	}
//	fixed.Serialize(os.Stdout)
package tiers

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-plotnik/pkg/textgrid"
)

// Tier is an opaque named tier owned by a Document implementation.
type Tier interface {
	TierName() string
}

// Document is a named collection of independently ordered tiers.
type Document interface {
	// TierNames lists tier names in native file order.
	TierNames() []string
	// TierByName returns the first tier with the given name.
	TierByName(name string) (Tier, bool)
	// NewEmpty returns an empty document of the same kind.
	NewEmpty() Document
	// AppendTier adds a tier at the end.
	AppendTier(t Tier) error
	// Serialize writes the document in its native file format.
	Serialize(w io.Writer) error
}

// TextGridDocument adapts a *textgrid.TextGrid to Document.
type TextGridDocument struct {
	Grid *textgrid.TextGrid
}

// FromTextGrid wraps tg.
func FromTextGrid(tg *textgrid.TextGrid) *TextGridDocument {
	return &TextGridDocument{Grid: tg}
}

// TierNames implements Document.
func (d *TextGridDocument) TierNames() []string {
	return d.Grid.Names()
}

// TierByName implements Document.
func (d *TextGridDocument) TierByName(name string) (Tier, bool) {
	t, ok := d.Grid.First(name)
	if !ok {
		return nil, false
	}
	return t, true
}

// NewEmpty implements Document.
func (d *TextGridDocument) NewEmpty() Document {
	return FromTextGrid(textgrid.New())
}

// AppendTier implements Document. Only *textgrid.Tier values are accepted.
func (d *TextGridDocument) AppendTier(t Tier) error {
	tt, ok := t.(*textgrid.Tier)
	if !ok {
		return fmt.Errorf("tiers: cannot append %T to a TextGrid", t)
	}
	d.Grid.Append(tt)
	return nil
}

// Serialize implements Document.
func (d *TextGridDocument) Serialize(w io.Writer) error {
	_, err := d.Grid.WriteTo(w)
	return err
}
