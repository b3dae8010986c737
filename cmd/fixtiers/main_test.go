package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shapestone/shape-plotnik/pkg/textgrid"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeGrid(t *testing.T, dir, name string, tiers ...string) string {
	t.Helper()
	g := textgrid.New()
	for _, n := range tiers {
		g.Append(&textgrid.Tier{Class: textgrid.IntervalTier, Name: n, XMax: 1,
			Intervals: []textgrid.Interval{{XMax: 1, Text: n}}})
	}
	data, err := g.Render()
	if err != nil {
		t.Fatal(err)
	}
	return writeFile(t, dir, name, string(data))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestFixtiers_ListThenFix(t *testing.T) {
	dir := t.TempDir()
	a := writeGrid(t, dir, "a.TextGrid", "phone", "word", "notes")
	b := writeGrid(t, dir, "b.TextGrid", "word", "phone")
	inputs := writeFile(t, dir, "inputs.txt", a+"\n"+b+"\n")

	out, _, err := execute(t, "-g", inputs)
	if err != nil {
		t.Fatalf("-g error = %v", err)
	}
	if out != "['phone', 'word', 'notes']\n['word', 'phone']\n" {
		t.Fatalf("-g output = %q", out)
	}

	orders := writeFile(t, dir, "orders.txt", "['word', 'phone']\n['word', 'phone']\n")
	outA, outB := filepath.Join(dir, "a.out"), filepath.Join(dir, "b.out")
	outputs := writeFile(t, dir, "outputs.txt", outA+"\n"+outB+"\n")

	if _, _, err := execute(t, "-f", inputs, orders, outputs); err != nil {
		t.Fatalf("-f error = %v", err)
	}
	for _, path := range []string{outA, outB} {
		g, err := textgrid.ParseFile(path, "auto")
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if got := strings.Join(g.Names(), ","); got != "word,phone" {
			t.Errorf("%s tiers = %s, want word,phone", path, got)
		}
	}
}

func TestFixtiers_MissingTier(t *testing.T) {
	dir := t.TempDir()
	a := writeGrid(t, dir, "a.TextGrid", "A", "B", "C")
	inputs := writeFile(t, dir, "inputs.txt", a+"\n")
	orders := writeFile(t, dir, "orders.txt", "['C', 'D']\n")
	dest := filepath.Join(dir, "a.out")
	outputs := writeFile(t, dir, "outputs.txt", dest+"\n")

	_, logs, err := execute(t, "-f", inputs, orders, outputs)
	if !errors.Is(err, errFailures) {
		t.Fatalf("execute() error = %v, want errFailures", err)
	}
	if !strings.Contains(logs, "not found") {
		t.Errorf("logs = %s", logs)
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Error("no output file should be written for a missing tier")
	}
}

func TestFixtiers_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no mode", nil},
		{"both modes", []string{"-g", "x", "-f", "y", "a", "b"}},
		{"fix missing lists", []string{"-f", "x", "a"}},
		{"get with extra args", []string{"-g", "x", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Error("execute() should fail")
			}
		})
	}
}
