package plotnik

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultSubjectPattern matches PNC-style file names such as "PH06-2-1-AB.plt"
// or "IHP2-1-12.plt" and captures the subject id at their start.
const DefaultSubjectPattern = `^\D\D\D?\d?\d?-\D?\d?\d?-\d\d?`

var defaultSubjects = regexp.MustCompile(DefaultSubjectPattern)

// SubjectMatcher derives subject ids from token file paths.
type SubjectMatcher struct {
	re *regexp.Regexp
}

// NewSubjectMatcher compiles pattern, anchored at the start of the file name.
// An empty pattern selects DefaultSubjectPattern.
func NewSubjectMatcher(pattern string) (*SubjectMatcher, error) {
	if pattern == "" {
		return &SubjectMatcher{re: defaultSubjects}, nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("plotnik: subject pattern: %w", err)
	}
	return &SubjectMatcher{re: re}, nil
}

// Subject returns the pattern's match against the base name of path, or the
// base name without its extension when the name is not PNC-style.
func (m *SubjectMatcher) Subject(path string) string {
	base := filepath.Base(path)
	if id := m.re.FindString(base); id != "" {
		return id
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SubjectFromPath applies DefaultSubjectPattern to path.
func SubjectFromPath(path string) string {
	return (&SubjectMatcher{re: defaultSubjects}).Subject(path)
}
