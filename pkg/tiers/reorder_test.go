package tiers_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/shapestone/shape-plotnik/pkg/textgrid"
	"github.com/shapestone/shape-plotnik/pkg/tiers"
)

func gridWith(names ...string) *textgrid.TextGrid {
	g := textgrid.New()
	for i, name := range names {
		g.Append(&textgrid.Tier{
			Class:     textgrid.IntervalTier,
			Name:      name,
			XMin:      0,
			XMax:      float64(i + 1),
			Intervals: []textgrid.Interval{{XMin: 0, XMax: float64(i + 1), Text: name}},
		})
	}
	return g
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name  string
		tiers []string
		order []string
		want  []string
	}{
		{"subset and reorder", []string{"A", "B", "C"}, []string{"C", "A"}, []string{"C", "A"}},
		{"identity", []string{"A", "B"}, []string{"A", "B"}, []string{"A", "B"}},
		{"empty order", []string{"A", "B"}, []string{}, []string{}},
		{"duplicate name in order", []string{"A", "B"}, []string{"B", "B"}, []string{"B", "B"}},
		{"duplicate name in document", []string{"A", "B", "A"}, []string{"A"}, []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tiers.FromTextGrid(gridWith(tt.tiers...))
			got, err := tiers.Reorder(doc, tt.order)
			if err != nil {
				t.Fatalf("Reorder() error = %v", err)
			}
			if names := tiers.ListTierNames(got); !reflect.DeepEqual(names, tt.want) {
				t.Errorf("Reorder() tiers = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestReorder_KeepsTierContent(t *testing.T) {
	src := gridWith("A", "B", "A")
	got, err := tiers.Reorder(tiers.FromTextGrid(src), []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	out := got.(*tiers.TextGridDocument).Grid
	if out.Tiers[0] != src.Tiers[0] {
		t.Error("Reorder() should use the first tier with the requested name")
	}
	if out.XMin != 0 || out.XMax != 1 {
		t.Errorf("bounds = [%v, %v], want [0, 1]", out.XMin, out.XMax)
	}
	if len(src.Tiers) != 3 {
		t.Error("Reorder() must not modify the source document")
	}
}

func TestReorder_MissingTier(t *testing.T) {
	doc := tiers.FromTextGrid(gridWith("A", "B", "C"))
	got, err := tiers.Reorder(doc, []string{"C", "D"})
	if got != nil {
		t.Errorf("Reorder() returned a document on error: %v", got)
	}
	if !errors.Is(err, tiers.ErrTierNotFound) {
		t.Fatalf("Reorder() error = %v, want ErrTierNotFound", err)
	}
	var nf *tiers.TierNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %T is not a *TierNotFoundError", err)
	}
	if nf.Name != "D" {
		t.Errorf("missing name = %q, want D", nf.Name)
	}
	want := `tiers: tier "D" not found (document has ['A', 'B', 'C'])`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTextGridDocument_Serialize(t *testing.T) {
	doc := tiers.FromTextGrid(gridWith("A"))
	var buf bytes.Buffer
	if err := doc.Serialize(&buf); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	back, err := textgrid.Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse(Serialize()) error = %v", err)
	}
	if !reflect.DeepEqual(back.Names(), []string{"A"}) {
		t.Errorf("round trip tiers = %v", back.Names())
	}
}

type otherTier string

func (o otherTier) TierName() string { return string(o) }

func TestTextGridDocument_AppendForeignTier(t *testing.T) {
	doc := tiers.FromTextGrid(textgrid.New())
	if err := doc.AppendTier(otherTier("x")); err == nil {
		t.Error("AppendTier() should reject tiers from other document types")
	}
}
