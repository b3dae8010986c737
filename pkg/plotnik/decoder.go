package plotnik

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Decoder reads tokens from a Plotnik file one data line at a time.
//
// Example usage:
//
//	file, _ := os.Open("PH06-2-1-AB.plt")
//	defer file.Close()
//
//	dec := plotnik.NewDecoder(file, "PH06-2-1").SetDemographics(true)
//	for dec.Scan() {
//	    tok := dec.Token()
//	    fmt.Println(tok.Word, tok.VClass)
//	}
//	if err := dec.Err(); err != nil {
//	    // handle error
//	}
//
// Only the declared number of data lines is read as data; anything after
// them (Plotnik's summary block) is left alone.
type Decoder struct {
	scanner      *bufio.Scanner
	subject      string
	demographics bool
	header       Header
	started      bool
	line         int // lines consumed so far
	emitted      int
	token        Token
	err          error
}

// NewDecoder creates a Decoder for the token file in r.
// Lines may end in "\n", "\r\n" or a bare "\r".
func NewDecoder(r io.Reader, subject string) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Split(ScanUniversalLines)
	return &Decoder{
		scanner: sc,
		subject: subject,
	}
}

// SetDemographics sets whether tokens carry the header's demographic fields.
// Returns the Decoder for method chaining.
func (d *Decoder) SetDemographics(include bool) *Decoder {
	d.demographics = include
	return d
}

// Header returns the decoded header. It is valid after the first call to Scan.
func (d *Decoder) Header() Header {
	return d.header
}

// Scan advances to the next token. It returns false after the last declared
// row or on error; Err reports which.
func (d *Decoder) Scan() bool {
	if d.err != nil {
		return false
	}
	if !d.started {
		d.started = true
		if err := d.readHeader(); err != nil {
			d.err = err
			return false
		}
	}
	if d.emitted >= d.header.Rows {
		return false
	}

	line, ok := d.nextLine()
	if !ok {
		if d.err == nil {
			d.err = &ParseError{
				Line: d.line + 1,
				Err: fmt.Errorf("%w: header declares %d rows, file has %d",
					ErrTruncatedFile, d.header.Rows, d.emitted),
			}
		}
		return false
	}

	row, err := ParseLine(line)
	if err != nil {
		d.err = &ParseError{Line: d.line, Err: err}
		return false
	}

	d.token = Token{
		Subject: d.subject,
		Speaker: d.header.Speaker,
		Row:     row,
	}
	if d.demographics {
		demo := d.header.Demographics
		d.token.Demographics = &demo
	}
	d.emitted++
	return true
}

// Token returns the most recent token produced by Scan.
func (d *Decoder) Token() Token {
	return d.token
}

// Err returns the first error encountered, or nil if the file decoded cleanly.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) readHeader() error {
	line, ok := d.nextLine()
	if !ok {
		return d.headerErr("missing speaker line")
	}
	speaker, demo, err := ParseSpeakerLine(line)
	if err != nil {
		return &ParseError{Line: d.line, Err: err}
	}

	line, ok = d.nextLine()
	if !ok {
		return d.headerErr("missing row count line")
	}
	rows, err := ParseRowCount(line)
	if err != nil {
		return &ParseError{Line: d.line, Err: err}
	}

	d.header = Header{Speaker: speaker, Demographics: demo, Rows: rows}
	return nil
}

func (d *Decoder) headerErr(msg string) error {
	if d.err != nil {
		return d.err
	}
	return &ParseError{Line: d.line + 1, Err: fmt.Errorf("%w: %s", ErrMalformedHeader, msg)}
}

// nextLine returns the next line. On a read error it sets d.err.
func (d *Decoder) nextLine() (string, bool) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			d.err = fmt.Errorf("plotnik: reading line %d: %w", d.line+1, err)
		}
		return "", false
	}
	d.line++
	return d.scanner.Text(), true
}

// Decode reads a whole token file. On error no tokens are returned, so a
// malformed file never contributes partial output.
func Decode(r io.Reader, subject string, demographics bool) ([]Token, error) {
	dec := NewDecoder(r, subject).SetDemographics(demographics)
	var tokens []Token
	for dec.Scan() {
		tokens = append(tokens, dec.Token())
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// ScanUniversalLines is a bufio.SplitFunc that accepts "\n", "\r\n" and bare
// "\r" line endings. Old Macintosh Plotnik files use "\r" only.
func ScanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': need one more byte to tell "\r\n" from a bare "\r".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
