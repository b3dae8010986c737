// Package textgrid reads and writes Praat TextGrid annotation files.
//
// A TextGrid is an ordered list of named tiers. Interval tiers partition a
// time range into labelled intervals; point tiers ("TextTier" in Praat) hold
// labelled instants.
//
// # Reading
//
// Parse and ParseReader accept both of Praat's text formats, the long
// ("verbose") one and the short one. ParseFile also decodes UTF-16 files,
// which Praat writes whenever a label is outside ASCII.
//
//	tg, err := textgrid.ParseFile("speaker.TextGrid", "auto")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(tg.Names())
//
// # Writing
//
// Render and WriteTo produce the long text format in UTF-8.
package textgrid

import "math"

// Class is a Praat tier class.
type Class string

// Tier classes.
const (
	IntervalTier Class = "IntervalTier"
	TextTier     Class = "TextTier"
)

// Interval is a labelled time span of an interval tier.
type Interval struct {
	XMin float64
	XMax float64
	Text string
}

// Point is a labelled instant of a point tier.
type Point struct {
	Time float64
	Mark string
}

// Tier is one named tier. Intervals is used by IntervalTier, Points by TextTier.
type Tier struct {
	Class     Class
	Name      string
	XMin      float64
	XMax      float64
	Intervals []Interval
	Points    []Point
}

// Len returns the number of intervals or points.
func (t *Tier) Len() int {
	if t.Class == TextTier {
		return len(t.Points)
	}
	return len(t.Intervals)
}

// TierName returns the tier's name.
func (t *Tier) TierName() string {
	return t.Name
}

// TextGrid is an ordered collection of tiers.
type TextGrid struct {
	XMin  float64
	XMax  float64
	Tiers []*Tier
}

// New returns an empty TextGrid.
func New() *TextGrid {
	return &TextGrid{}
}

// Names returns the tier names in file order.
func (g *TextGrid) Names() []string {
	names := make([]string, len(g.Tiers))
	for i, t := range g.Tiers {
		names[i] = t.Name
	}
	return names
}

// First returns the first tier called name.
func (g *TextGrid) First(name string) (*Tier, bool) {
	for _, t := range g.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Append adds tier at the end and widens the grid's time range to cover it.
func (g *TextGrid) Append(tier *Tier) {
	if len(g.Tiers) == 0 {
		g.XMin, g.XMax = tier.XMin, tier.XMax
	} else {
		g.XMin = math.Min(g.XMin, tier.XMin)
		g.XMax = math.Max(g.XMax, tier.XMax)
	}
	g.Tiers = append(g.Tiers, tier)
}
