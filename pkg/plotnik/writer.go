package plotnik

import (
	"bufio"
	"bytes"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-plotnik/internal/render"
)

// DefaultNaN is the not-a-number marker written for missing schooling and
// unknown place codes. It matches what Python's csv module writes for NaN,
// so existing R and pandas scripts keep reading the output.
const DefaultNaN = "nan"

var (
	idColumns          = []string{"Subject", "Speaker"}
	demographicColumns = []string{"Age", "Sex", "Ethnicity", "Schooling", "Neighborhood", "Year"}
	measureColumns     = []string{
		"F1", "F2", "F3", "Word",
		"Stress", "Duration", "VClass",
		"Manner", "Place", "Voice",
		"PreSeg", "FolSeq",
	}
)

// Columns returns the CSV header, with the demographic columns when requested.
func Columns(demographics bool) []string {
	cols := make([]string, 0, len(idColumns)+len(demographicColumns)+len(measureColumns)+trajectoryLen)
	cols = append(cols, idColumns...)
	if demographics {
		cols = append(cols, demographicColumns...)
	}
	cols = append(cols, measureColumns...)
	cols = append(cols, TrajectoryColumns[:]...)
	return cols
}

// Record flattens the token into CSV fields in Columns order.
// Legacy tokens leave the trajectory fields empty.
func (t Token) Record(demographics bool, nan string) []string {
	rec := make([]string, 0, len(Columns(demographics)))
	rec = append(rec, t.Subject, t.Speaker)
	if demographics {
		var d Demographics
		if t.Demographics != nil {
			d = *t.Demographics
		}
		rec = append(rec, d.Age, d.Sex, d.Ethnicity, d.Schooling.Or(nan), d.Neighborhood, d.Year)
	}
	rec = append(rec,
		t.F1, t.F2, t.F3, t.Word,
		t.Stress, t.Duration, t.VClass,
		t.Manner, t.Place.Or(nan), t.Voice,
		t.PreSeg, t.FolSeq,
	)
	if t.Trajectory != nil {
		rec = append(rec, t.Trajectory[:]...)
	} else {
		for i := 0; i < trajectoryLen; i++ {
			rec = append(rec, "")
		}
	}
	return rec
}

// WriterOptions configures CSV output.
type WriterOptions struct {
	// Demographics adds the six demographic columns after Speaker.
	Demographics bool
	// NaN is written for not-a-number values. Default: DefaultNaN
	NaN string
	// Comma is the field delimiter. Default: ','
	Comma rune
	// UseCRLF ends rows with "\r\n". Default: true
	UseCRLF bool
}

// DefaultWriterOptions returns the default output configuration.
func DefaultWriterOptions() WriterOptions {
	ro := render.DefaultOptions()
	return WriterOptions{
		NaN:     DefaultNaN,
		Comma:   ro.Comma,
		UseCRLF: ro.UseCRLF,
	}
}

// Writer writes tokens as CSV rows.
type Writer struct {
	w    *bufio.Writer
	opts WriterOptions
	ro   render.Options
	buf  bytes.Buffer
}

// NewWriter returns a Writer that writes to w.
// Call WriteHeader first and Flush when done.
func NewWriter(w io.Writer, opts WriterOptions) (*Writer, error) {
	ro := render.Options{Comma: opts.Comma, UseCRLF: opts.UseCRLF}
	if err := ro.Validate(); err != nil {
		return nil, err
	}
	return &Writer{w: bufio.NewWriter(w), opts: opts, ro: ro}, nil
}

// WriteHeader writes the column names.
func (w *Writer) WriteHeader() error {
	return w.writeRecord(Columns(w.opts.Demographics))
}

// Write writes one token as a row.
func (w *Writer) Write(t Token) error {
	return w.writeRecord(t.Record(w.opts.Demographics, w.opts.NaN))
}

// WriteAll writes tokens in order as one block of rows.
func (w *Writer) WriteAll(tokens []Token) error {
	records := make([]ast.SchemaNode, len(tokens))
	for i, t := range tokens {
		records[i] = render.Record(t.Record(w.opts.Demographics, w.opts.NaN))
	}
	data, err := render.Render(ast.NewArrayDataNode(records, ast.ZeroPosition()), w.ro)
	if err != nil {
		return err
	}
	_, err = w.w.Write(data)
	return err
}

// Flush writes any buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) writeRecord(fields []string) error {
	w.buf.Reset()
	if err := render.AppendRecord(&w.buf, render.Record(fields), w.ro); err != nil {
		return err
	}
	_, err := w.w.Write(w.buf.Bytes())
	return err
}
