package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shapestone/shape-plotnik/pkg/plotnik"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	opts, err := cfg.WriterOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts != plotnik.DefaultWriterOptions() {
		t.Errorf("WriterOptions() = %+v, want %+v", opts, plotnik.DefaultWriterOptions())
	}
	if cfg.StopOnError() {
		t.Error("default policy should skip failed files")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
plotnik:
  demographics: true
  encoding: MacRoman
output:
  comma: ";"
  crlf: false
  nan: NA
batch:
  on_error: Abort
log:
  format: json
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cfg.Plotnik.Demographics || cfg.Plotnik.Encoding != "macroman" {
		t.Errorf("plotnik = %+v", cfg.Plotnik)
	}
	if cfg.Plotnik.SubjectPattern != plotnik.DefaultSubjectPattern {
		t.Errorf("unset subject_pattern should keep the default, got %q", cfg.Plotnik.SubjectPattern)
	}
	opts, err := cfg.WriterOptions()
	if err != nil {
		t.Fatal(err)
	}
	want := plotnik.WriterOptions{Demographics: true, NaN: "NA", Comma: ';', UseCRLF: false}
	if opts != want {
		t.Errorf("WriterOptions() = %+v, want %+v", opts, want)
	}
	if !cfg.StopOnError() {
		t.Error("on_error: abort should stop on error")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Tiers.Encoding != "auto" {
		t.Errorf("tiers.encoding = %q, want auto", cfg.Tiers.Encoding)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "plotnik:\n  demographic: true\n", "demographic"},
		{"bad yaml", "plotnik: [", "parse"},
		{"unknown encoding", "plotnik:\n  encoding: ebcdic\n", "plotnik.encoding"},
		{"bad pattern", "plotnik:\n  subject_pattern: '('\n", "plotnik.subject_pattern"},
		{"long comma", "output:\n  comma: '::'\n", "output.comma"},
		{"empty comma", "output:\n  comma: ''\n", "output.comma"},
		{"bad tiers encoding", "tiers:\n  encoding: nope\n", "tiers.encoding"},
		{"bad on_error", "batch:\n  on_error: retry\n", "batch.on_error"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg != Default() {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "plotnik.yaml")
	if err := os.WriteFile(path, []byte("tiers:\n  encoding: utf-16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Tiers.Encoding != "utf-16" {
		t.Errorf("tiers.encoding = %q", cfg.Tiers.Encoding)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}
