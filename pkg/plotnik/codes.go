package plotnik

import (
	"fmt"
	"strconv"
	"strings"
)

// Table identifies one of the Plotnik coding tables.
type Table string

// Coding tables used by Plotnik's packed vowel/environment column.
const (
	TableVClass Table = "vclass"
	TableManner Table = "manner"
	TablePlace  Table = "place"
	TableVoice  Table = "voice"
	TablePreSeg Table = "preseg"
	TableFolSeq Table = "folseq"
)

// NotApplicable is the label Plotnik uses for code 0 in the environment tables.
const NotApplicable = "<n.a.>"

// codeTable is a read-only code-to-label mapping.
type codeTable struct {
	name   Table
	labels map[int]string
}

func (t codeTable) lookup(code int) (string, error) {
	label, ok := t.labels[code]
	if !ok {
		return "", &UnknownCodeError{Table: t.name, Code: code}
	}
	return label, nil
}

var vclasses = codeTable{TableVClass, map[int]string{
	1: "i", 2: "e", 3: "ae", 5: "o", 6: "uh", 7: "u",
	11: "iy", 12: "iyF", 14: "iyr",
	21: "ey", 22: "eyF", 24: "eyr",
	33: "aeh", 39: "aeBR",
	41: "ay", 42: "aw", 43: "ah", 44: "ahr", 47: "ay0",
	53: "oh", 54: "ohr",
	61: "oy", 62: "ow", 63: "owF", 64: "owr",
	72: "uw", 73: "Tuw", 74: "uwr",
	82: "iw",
	94: "*hr",
}}

var manners = codeTable{TableManner, map[int]string{
	0: NotApplicable, 1: "stop", 2: "affricate", 3: "fricative",
	4: "nasal", 5: "lateral", 6: "rhotic",
}}

var places = codeTable{TablePlace, map[int]string{
	0: NotApplicable, 1: "labial", 2: "labiodental", 3: "interdental",
	4: "alveolar", 5: "alveopalatal", 6: "velar",
}}

var voices = codeTable{TableVoice, map[int]string{
	0: NotApplicable, 1: "voiceless", 2: "voiced",
}}

var preSegs = codeTable{TablePreSeg, map[int]string{
	0: NotApplicable, 1: "oral labial", 2: "m", 3: "oral alveolar",
	4: "n", 5: "alveopalatal", 6: "velar", 7: "liquid",
	8: "obstruent-liquid", 9: "glide",
}}

var folSeqs = codeTable{TableFolSeq, map[int]string{
	0: NotApplicable, 1: "1.fol.syl", 2: "2.fol.syl", 3: "complex",
	4: "1.fol.syl.complex", 5: "2.fol.syl.complex",
}}

var tables = map[Table]codeTable{
	TableVClass: vclasses,
	TableManner: manners,
	TablePlace:  places,
	TableVoice:  voices,
	TablePreSeg: preSegs,
	TableFolSeq: folSeqs,
}

// Lookup returns the label for code in the named table.
// A miss is reported as *UnknownCodeError for every table, including place;
// the not-a-number degradation for place happens in Code.Decode.
func Lookup(table Table, code int) (string, error) {
	t, ok := tables[table]
	if !ok {
		return "", fmt.Errorf("plotnik: no such table %q", table)
	}
	return t.lookup(code)
}

// Code holds the raw integer codes packed into the "<vclass>.<envcode>" column.
type Code struct {
	VClass int
	Manner int
	Place  int
	Voice  int
	PreSeg int
	FolSeq int
}

// String packs the code back into Plotnik's "<vclass>.<envcode>" form.
func (c Code) String() string {
	return fmt.Sprintf("%d.%d%d%d%d%d", c.VClass, c.Manner, c.Place, c.Voice, c.PreSeg, c.FolSeq)
}

// Labels are the human-readable decodings of a Code.
type Labels struct {
	VClass string
	Manner string
	// Place is not-a-number when the place digit has no table entry.
	Place  NullString
	Voice  string
	PreSeg string
	FolSeq string
}

// Decode looks every code up in its table. Any miss returns *UnknownCodeError,
// except place, which degrades to an invalid NullString.
func (c Code) Decode() (Labels, error) {
	var (
		l   Labels
		err error
	)
	if l.VClass, err = vclasses.lookup(c.VClass); err != nil {
		return Labels{}, err
	}
	if l.Manner, err = manners.lookup(c.Manner); err != nil {
		return Labels{}, err
	}
	// TODO: confirm with corpus maintainers whether a bad place digit should
	// fail like the other tables; kept lenient for compatibility with old CSVs.
	if place, err := places.lookup(c.Place); err == nil {
		l.Place = NullString{String: place, Valid: true}
	}
	if l.Voice, err = voices.lookup(c.Voice); err != nil {
		return Labels{}, err
	}
	if l.PreSeg, err = preSegs.lookup(c.PreSeg); err != nil {
		return Labels{}, err
	}
	if l.FolSeq, err = folSeqs.lookup(c.FolSeq); err != nil {
		return Labels{}, err
	}
	return l, nil
}

// envCodeLen is the number of single-digit sub-codes in an environment code.
const envCodeLen = 5

// UnpackVowelCode splits a "<vclass>.<envcode>" column into its codes.
// The environment part must be exactly five ASCII digits, in the order
// manner, place, voice, preceding segment, following sequence.
func UnpackVowelCode(ve string) (Code, error) {
	parts := strings.Split(ve, ".")
	if len(parts) != 2 {
		return Code{}, fmt.Errorf("%w: vowel code %q is not <vclass>.<envcode>", ErrMalformedRow, ve)
	}

	vclass, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Code{}, fmt.Errorf("%w: vowel class %q is not an integer", ErrMalformedRow, parts[0])
	}

	env := parts[1]
	if len(env) != envCodeLen {
		return Code{}, fmt.Errorf("%w: %q has %d digits, want %d", ErrMalformedEnvironmentCode, env, len(env), envCodeLen)
	}
	var digits [envCodeLen]int
	for i := 0; i < envCodeLen; i++ {
		ch := env[i]
		if ch < '0' || ch > '9' {
			return Code{}, fmt.Errorf("%w: %q contains non-digit %q", ErrMalformedEnvironmentCode, env, ch)
		}
		digits[i] = int(ch - '0')
	}

	return Code{
		VClass: vclass,
		Manner: digits[0],
		Place:  digits[1],
		Voice:  digits[2],
		PreSeg: digits[3],
		FolSeq: digits[4],
	}, nil
}
