package plotnik

// NullString is a string that may be not-a-number.
// The zero value is not-a-number.
type NullString struct {
	String string
	Valid  bool
}

// Or returns the string, or nan when the value is not-a-number.
func (n NullString) Or(nan string) string {
	if !n.Valid {
		return nan
	}
	return n.String
}

// Known wraps s as a valid NullString.
func Known(s string) NullString {
	return NullString{String: s, Valid: true}
}

// TrajectoryColumns names the ten trajectory values in file order:
// F1 and F2 at 20, 35, 50, 65 and 80% of the vowel's duration.
var TrajectoryColumns = [trajectoryLen]string{
	"F1_20", "F2_20",
	"F1_35", "F2_35",
	"F1_50", "F2_50",
	"F1_65", "F2_65",
	"F1_80", "F2_80",
}

const trajectoryLen = 10

// Trajectory holds the ten formant measurements of the extended file format,
// in TrajectoryColumns order. Values are passed through verbatim.
type Trajectory [trajectoryLen]string

// Demographics is the optional speaker information from the first header line.
type Demographics struct {
	Age          string
	Sex          string
	Ethnicity    string
	Schooling    NullString // not-a-number when the header field is empty
	Neighborhood string
	Year         string
}

// Header is the decoded file header.
type Header struct {
	Speaker      string
	Demographics Demographics
	// Rows is the number of data lines declared by the second header line.
	Rows int
}

// Row is one decoded data line, without the speaker identity.
type Row struct {
	F1, F2, F3 string
	Word       string
	Stress     string
	Duration   string
	Code       Code
	Labels
	// Trajectory is nil for lines in the legacy format.
	Trajectory *Trajectory
}

// Token is one vowel measurement ready for tabular output.
type Token struct {
	Subject string
	Speaker string
	// Demographics is nil unless the decoder was asked to include it.
	Demographics *Demographics
	Row
}
