package plotnik

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/shapestone/shape-plotnik/internal/textenc"
)

// FileError records a token file that failed to convert.
type FileError struct {
	Path string
	Err  error
}

// Error returns the path and cause.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Report summarizes a conversion batch.
type Report struct {
	Files  int
	Tokens int
	Failed []*FileError
}

// Converter decodes token files in order and writes their tokens as CSV.
//
// Each file is decoded completely before any of its rows are written, so a
// malformed file contributes no rows.
type Converter struct {
	// Demographics includes the header's demographic fields in each token.
	Demographics bool
	// Encoding names the input encoding (see internal/textenc). Default: UTF-8
	Encoding string
	// Subjects derives subject ids from paths. Default: DefaultSubjectPattern
	Subjects *SubjectMatcher
	// StopOnError aborts at the first failed file instead of skipping it.
	StopOnError bool
	// Logger receives one record per file. Default: slog.Default()
	Logger *slog.Logger
}

// ConvertFiles converts paths in order, writing every token to w.
// The returned error is non-nil only for output errors, cancellation, or a
// failed file when StopOnError is set; skipped files are listed in the report.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, w *Writer) (Report, error) {
	var report Report
	log := c.logger().With("run", uuid.NewString())

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		subject := c.subjects().Subject(path)
		tokens, err := c.DecodeFile(path, subject)
		if err != nil {
			ferr := &FileError{Path: path, Err: err}
			report.Failed = append(report.Failed, ferr)
			log.Error("decode failed", "file", path, "subject", subject, "err", err)
			if c.StopOnError {
				return report, ferr
			}
			continue
		}

		if err := w.WriteAll(tokens); err != nil {
			return report, fmt.Errorf("writing %s: %w", path, err)
		}
		report.Files++
		report.Tokens += len(tokens)
		log.Info("converted", "file", path, "subject", subject, "tokens", len(tokens))
	}
	return report, w.Flush()
}

// DecodeFile opens and decodes one token file.
func (c *Converter) DecodeFile(path, subject string) ([]Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	encoding := c.Encoding
	if encoding == "" {
		encoding = "utf-8"
	}
	r, err := textenc.NewReader(f, encoding)
	if err != nil {
		return nil, err
	}
	return Decode(r, subject, c.Demographics)
}

func (c *Converter) subjects() *SubjectMatcher {
	if c.Subjects != nil {
		return c.Subjects
	}
	return &SubjectMatcher{re: defaultSubjects}
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
