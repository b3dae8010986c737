package plotnik

import (
	"bytes"
	"strings"
	"testing"
)

func sampleToken(t *testing.T, line string) Token {
	t.Helper()
	row, err := ParseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	return Token{
		Subject: "PH06-2-1",
		Speaker: "Bill",
		Demographics: &Demographics{
			Age: "45", Sex: "m", Ethnicity: "w", Neighborhood: "South Philly", Year: "1975",
		},
		Row: row,
	}
}

func TestColumns(t *testing.T) {
	plain := strings.Join(Columns(false), ",")
	want := "Subject,Speaker,F1,F2,F3,Word,Stress,Duration,VClass,Manner,Place,Voice,PreSeg,FolSeq," +
		"F1_20,F2_20,F1_35,F2_35,F1_50,F2_50,F1_65,F2_65,F1_80,F2_80"
	if plain != want {
		t.Errorf("Columns(false) = %s", plain)
	}
	demo := Columns(true)
	if len(demo) != len(Columns(false))+6 || demo[2] != "Age" || demo[7] != "Year" || demo[8] != "F1" {
		t.Errorf("Columns(true) = %v", demo)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, DefaultWriterOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAll([]Token{
		sampleToken(t, "744.1,1531.2,2478.5,11.47210,1.120,BEAT"),
		sampleToken(t, "744.1,1531.2,2478.5,11.43210,1.120,BEAT <1,2,3,4,5,6,7,8,9,10>"),
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\r\n")
	if len(lines) != 4 || lines[3] != "" {
		t.Fatalf("output = %q, want 3 CRLF-terminated rows", buf.String())
	}
	wantLegacy := "PH06-2-1,Bill,744.1,1531.2,2478.5,BEAT,1,120,iy,nasal,nan,voiced,oral labial,<n.a.>,,,,,,,,,,"
	if lines[1] != wantLegacy {
		t.Errorf("legacy row = %q\nwant        %q", lines[1], wantLegacy)
	}
	wantExtended := "PH06-2-1,Bill,744.1,1531.2,2478.5,BEAT,1,120,iy,nasal,interdental,voiced,oral labial,<n.a.>,1,2,3,4,5,6,7,8,9,10"
	if lines[2] != wantExtended {
		t.Errorf("extended row = %q\nwant          %q", lines[2], wantExtended)
	}
}

func TestWriter_Options(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WriterOptions{Demographics: true, NaN: "NA", Comma: ';'})
	if err != nil {
		t.Fatal(err)
	}
	tok := sampleToken(t, "744.1,1531.2,2478.5,11.47210,1.120,BEAT")
	if err := w.Write(tok); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "PH06-2-1;Bill;45;m;w;NA;South Philly;1975;744.1;1531.2;2478.5;BEAT;1;120;iy;nasal;NA;voiced;oral labial;<n.a.>;;;;;;;;;;\n"
	if buf.String() != want {
		t.Errorf("row = %q\nwant %q", buf.String(), want)
	}
}

func TestWriter_QuotesFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WriterOptions{Comma: ',', NaN: DefaultNaN})
	if err != nil {
		t.Fatal(err)
	}
	tok := sampleToken(t, "744.1,1531.2,2478.5,11.43210,1.120,BEAT")
	tok.Speaker = `Smith, "Bill"`
	if err := w.Write(tok); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	if !strings.HasPrefix(buf.String(), `PH06-2-1,"Smith, ""Bill""",744.1`) {
		t.Errorf("row = %q", buf.String())
	}
}

func TestWriter_WriteAllMatchesWrite(t *testing.T) {
	tokens := []Token{
		sampleToken(t, "744.1,1531.2,2478.5,11.47210,1.120,BEAT"),
		sampleToken(t, "650.0,1200.3,2500.1,72.14202,2.85,BOOT <640,1210,645,1205,650,1200,655,1195,660,1190>"),
	}
	opts := WriterOptions{Demographics: true, NaN: "NA", Comma: ';'}

	var all, each bytes.Buffer
	wa, err := NewWriter(&all, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := wa.WriteAll(tokens); err != nil {
		t.Fatal(err)
	}
	if err := wa.Flush(); err != nil {
		t.Fatal(err)
	}

	we, err := NewWriter(&each, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range tokens {
		if err := we.Write(tok); err != nil {
			t.Fatal(err)
		}
	}
	if err := we.Flush(); err != nil {
		t.Fatal(err)
	}

	if all.String() != each.String() {
		t.Errorf("WriteAll() = %q\nWrite()    = %q", all.String(), each.String())
	}
	if n := strings.Count(all.String(), "\n"); n != len(tokens) {
		t.Errorf("WriteAll() wrote %d rows, want %d", n, len(tokens))
	}
}

func TestWriter_WriteAllEmpty(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, DefaultWriterOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAll(nil); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	if buf.Len() != 0 {
		t.Errorf("WriteAll(nil) wrote %q", buf.String())
	}
}

func TestNewWriter_InvalidComma(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, WriterOptions{Comma: '"'}); err == nil {
		t.Error("NewWriter should reject '\"' as a delimiter")
	}
}

func TestToken_RecordLength(t *testing.T) {
	tok := sampleToken(t, "744.1,1531.2,2478.5,11.43210,1.120,BEAT")
	tok.Demographics = nil
	for _, demo := range []bool{false, true} {
		if got, want := len(tok.Record(demo, DefaultNaN)), len(Columns(demo)); got != want {
			t.Errorf("Record(%v) has %d fields, want %d", demo, got, want)
		}
	}
}
