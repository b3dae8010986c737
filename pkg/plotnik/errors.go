package plotnik

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ways a Plotnik file can fail to decode.
// Every decode error wraps exactly one of these; test with errors.Is.
var (
	// ErrMalformedHeader indicates a header line is missing, has the wrong
	// number of fields, or declares an unparseable row count.
	ErrMalformedHeader = errors.New("plotnik: malformed header")

	// ErrTruncatedFile indicates the file ended before the declared number of rows.
	ErrTruncatedFile = errors.New("plotnik: truncated file")

	// ErrMalformedRow indicates a data line does not split into its six columns,
	// its packed pairs, or a word.
	ErrMalformedRow = errors.New("plotnik: malformed row")

	// ErrMalformedTrajectory indicates the <...> trajectory does not hold exactly ten numbers.
	ErrMalformedTrajectory = errors.New("plotnik: malformed trajectory")

	// ErrMalformedEnvironmentCode indicates the environment code is not exactly five digits.
	ErrMalformedEnvironmentCode = errors.New("plotnik: malformed environment code")

	// ErrUnknownCode indicates a coded value has no entry in its lookup table.
	ErrUnknownCode = errors.New("plotnik: unknown code")
)

// UnknownCodeError reports a code missing from one of the coding tables.
type UnknownCodeError struct {
	Table Table
	Code  int
}

// Error returns the table and offending code.
func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("plotnik: unknown %s code %d", e.Table, e.Code)
}

// Is reports whether target is ErrUnknownCode.
func (e *UnknownCodeError) Is(target error) bool {
	return target == ErrUnknownCode
}

// ParseError records the file line on which decoding failed.
type ParseError struct {
	// Line is the 1-based line number in the token file, headers included.
	Line int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with the line number.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
