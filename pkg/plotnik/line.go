package plotnik

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// delimiter separates Plotnik columns.
	delimiter = ","

	// lineColumns is the number of leading columns of a data line; the last
	// one (word and trajectory) may itself contain the delimiter.
	lineColumns = 6
)

// LineColumns are the six raw columns of a data line.
type LineColumns struct {
	F1, F2, F3 string
	// VowelCode is the packed "<vclass>.<envcode>" column.
	VowelCode string
	// StressDuration is the packed "<stress>.<duration>" column.
	StressDuration string
	// WordPart holds the word, Plotnik annotations and an optional <trajectory>.
	WordPart string
}

// SplitLine splits a data line into its six columns.
// Trailing whitespace is removed first; WordPart is not split further.
func SplitLine(line string) (LineColumns, error) {
	parts := strings.SplitN(strings.TrimRight(line, " \t\r\n\f\v"), delimiter, lineColumns)
	if len(parts) < lineColumns {
		return LineColumns{}, fmt.Errorf("%w: got %d columns, want %d", ErrMalformedRow, len(parts), lineColumns)
	}
	return LineColumns{
		F1:             parts[0],
		F2:             parts[1],
		F3:             parts[2],
		VowelCode:      parts[3],
		StressDuration: parts[4],
		WordPart:       parts[5],
	}, nil
}

// PackStressDuration joins stress and duration the way Plotnik stores them.
func PackStressDuration(stress, duration string) string {
	return stress + "." + duration
}

// UnpackStressDuration splits a "<stress>.<duration>" column.
func UnpackStressDuration(sd string) (stress, duration string, err error) {
	parts := strings.Split(sd, ".")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: stress/duration %q is not <stress>.<duration>", ErrMalformedRow, sd)
	}
	return parts[0], parts[1], nil
}

// SplitWordPart extracts the word and, for the extended format, the trajectory.
//
// A word part ending in '>' is extended: "WORD {glide} /nFormants/ time <f,f,...>".
// Anything else is legacy and has no trajectory. Trajectory values must be
// numbers but are kept verbatim.
func SplitWordPart(wp string) (string, *Trajectory, error) {
	if !strings.HasSuffix(wp, ">") {
		word, err := firstField(wp)
		return word, nil, err
	}

	wordPart, trajPart, ok := strings.Cut(wp, "<")
	if !ok {
		return "", nil, fmt.Errorf("%w: %q has a closing '>' but no '<'", ErrMalformedTrajectory, wp)
	}
	word, err := firstField(wordPart)
	if err != nil {
		return "", nil, err
	}

	values := strings.Split(strings.TrimRight(trajPart, ">"), ",")
	if len(values) != trajectoryLen {
		return "", nil, fmt.Errorf("%w: got %d values, want %d", ErrMalformedTrajectory, len(values), trajectoryLen)
	}
	for i, v := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return "", nil, fmt.Errorf("%w: value %d (%s) is %q, not a number", ErrMalformedTrajectory, i+1, TrajectoryColumns[i], v)
		}
	}
	var traj Trajectory
	copy(traj[:], values)
	return word, &traj, nil
}

func firstField(s string) (string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: missing word", ErrMalformedRow)
	}
	return fields[0], nil
}

// ParseLine decodes one data line. It is a pure function of the line.
func ParseLine(line string) (Row, error) {
	cols, err := SplitLine(line)
	if err != nil {
		return Row{}, err
	}

	word, traj, err := SplitWordPart(cols.WordPart)
	if err != nil {
		return Row{}, err
	}

	stress, duration, err := UnpackStressDuration(cols.StressDuration)
	if err != nil {
		return Row{}, err
	}

	code, err := UnpackVowelCode(cols.VowelCode)
	if err != nil {
		return Row{}, err
	}
	labels, err := code.Decode()
	if err != nil {
		return Row{}, err
	}

	return Row{
		F1:         cols.F1,
		F2:         cols.F2,
		F3:         cols.F3,
		Word:       word,
		Stress:     stress,
		Duration:   duration,
		Code:       code,
		Labels:     labels,
		Trajectory: traj,
	}, nil
}
