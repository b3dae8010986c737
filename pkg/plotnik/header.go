package plotnik

import (
	"fmt"
	"strconv"
	"strings"
)

// speakerFields is the number of fields on the first header line:
// speaker, age, sex, ethnicity, schooling, neighborhood, year.
const speakerFields = 7

// ParseSpeakerLine decodes the first header line.
func ParseSpeakerLine(line string) (string, Demographics, error) {
	fields := strings.Split(strings.TrimRight(line, " \t\r\n\f\v"), delimiter)
	if len(fields) != speakerFields {
		return "", Demographics{}, fmt.Errorf("%w: speaker line has %d fields, want %d",
			ErrMalformedHeader, len(fields), speakerFields)
	}

	demo := Demographics{
		Age:          fields[1],
		Sex:          fields[2],
		Ethnicity:    fields[3],
		Neighborhood: fields[5],
		Year:         fields[6],
	}
	if fields[4] != "" {
		demo.Schooling = Known(fields[4])
	}
	return strings.TrimSpace(fields[0]), demo, nil
}

// ParseRowCount decodes the second header line, whose first field is the
// number of data lines that follow.
func ParseRowCount(line string) (int, error) {
	first, _, _ := strings.Cut(line, delimiter)
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, fmt.Errorf("%w: row count %q is not an integer", ErrMalformedHeader, first)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative row count %d", ErrMalformedHeader, n)
	}
	return n, nil
}

// ParseHeader decodes both header lines.
func ParseHeader(speakerLine, countLine string) (Header, error) {
	speaker, demo, err := ParseSpeakerLine(speakerLine)
	if err != nil {
		return Header{}, err
	}
	rows, err := ParseRowCount(countLine)
	if err != nil {
		return Header{}, err
	}
	return Header{Speaker: speaker, Demographics: demo, Rows: rows}, nil
}
