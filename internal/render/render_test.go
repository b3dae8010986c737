package render

import (
	"bytes"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

func TestAppendRecord(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		opts   Options
		want   string
	}{
		{
			name:   "plain fields",
			fields: []string{"PH06-2-1", "Bill", "700"},
			opts:   DefaultOptions(),
			want:   "PH06-2-1,Bill,700\r\n",
		},
		{
			name:   "LF line ending",
			fields: []string{"a", "b"},
			opts:   Options{Comma: ',', UseCRLF: false},
			want:   "a,b\n",
		},
		{
			name:   "quotes delimiter",
			fields: []string{"a,b", "c"},
			opts:   DefaultOptions(),
			want:   "\"a,b\",c\r\n",
		},
		{
			name:   "doubles quotes",
			fields: []string{`say "hi"`},
			opts:   DefaultOptions(),
			want:   "\"say \"\"hi\"\"\"\r\n",
		},
		{
			name:   "quotes newline",
			fields: []string{"a\nb"},
			opts:   DefaultOptions(),
			want:   "\"a\nb\"\r\n",
		},
		{
			name:   "empty fields",
			fields: []string{"", "", ""},
			opts:   DefaultOptions(),
			want:   ",,\r\n",
		},
		{
			name:   "tab delimiter leaves commas alone",
			fields: []string{"a,b", "c"},
			opts:   Options{Comma: '\t', UseCRLF: false},
			want:   "a,b\tc\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := AppendRecord(&buf, Record(tt.fields), tt.opts); err != nil {
				t.Fatalf("AppendRecord() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("AppendRecord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_File(t *testing.T) {
	file := ast.NewArrayDataNode([]ast.SchemaNode{
		Record([]string{"Subject", "F1"}),
		Record([]string{"PH06-2-1", "700"}),
	}, ast.ZeroPosition())

	got, err := Render(file, Options{Comma: ',', UseCRLF: false})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "Subject,F1\nPH06-2-1,700\n"
	if string(got) != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_NilAndEmpty(t *testing.T) {
	got, err := Render(nil, DefaultOptions())
	if err != nil || len(got) != 0 {
		t.Errorf("Render(nil) = %q, %v", got, err)
	}
	got, err = Render(ast.NewArrayDataNode(nil, ast.ZeroPosition()), DefaultOptions())
	if err != nil || len(got) != 0 {
		t.Errorf("Render(empty) = %q, %v", got, err)
	}
}

func TestRender_NonStringLiteral(t *testing.T) {
	rec := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewLiteralNode(int64(42), ast.ZeroPosition()),
		ast.NewLiteralNode(nil, ast.ZeroPosition()),
	}, ast.ZeroPosition())

	got, err := Render(rec, DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != "42," {
		t.Errorf("Render() = %q, want %q", got, "42,")
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		comma   rune
		wantErr bool
	}{
		{',', false},
		{';', false},
		{'\t', false},
		{'"', true},
		{'\n', true},
		{'\r', true},
		{0xFFFD, true},
		{-1, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.comma), func(t *testing.T) {
			err := Options{Comma: tt.comma}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.comma, err, tt.wantErr)
			}
		})
	}
}
