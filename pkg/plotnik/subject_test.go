package plotnik

import "testing"

func TestSubjectFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"PH06-2-1-AB.plt", "PH06-2-1"},
		{"/data/pnc/PH06-2-1-AB.plt", "PH06-2-1"},
		{"IHP2-1-12.plt", "IHP2-1-12"},
		{"PH73-0-10-JT.plt", "PH73-0-10"},
		{"speaker.plt", "speaker"},
		{"dir/notes.v2.plt", "notes.v2"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := SubjectFromPath(tt.path); got != tt.want {
				t.Errorf("SubjectFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewSubjectMatcher(t *testing.T) {
	m, err := NewSubjectMatcher(`^[A-Z]+\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Subject("data/SPK042_session1.plt"); got != "SPK042" {
		t.Errorf("Subject() = %q, want SPK042", got)
	}
	if got := m.Subject("lower.plt"); got != "lower" {
		t.Errorf("Subject() fallback = %q, want lower", got)
	}

	unanchored, err := NewSubjectMatcher(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if got := unanchored.Subject("SPK042.plt"); got != "SPK042" {
		t.Errorf("Subject() matched mid-name: got %q, want SPK042", got)
	}
	if got := unanchored.Subject("042SPK.plt"); got != "042" {
		t.Errorf("Subject() = %q, want 042", got)
	}

	def, err := NewSubjectMatcher("")
	if err != nil {
		t.Fatal(err)
	}
	if got := def.Subject("PH06-2-1-AB.plt"); got != "PH06-2-1" {
		t.Errorf("default Subject() = %q", got)
	}

	if _, err := NewSubjectMatcher("("); err == nil {
		t.Error("NewSubjectMatcher should reject an invalid pattern")
	}
}
