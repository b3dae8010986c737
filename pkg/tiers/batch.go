package tiers

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/shapestone/shape-plotnik/pkg/textgrid"
)

// Job is one line-aligned conversion: line N of the source, order and
// destination lists.
type Job struct {
	// ID correlates the job's log lines.
	ID string
	// Line is the 1-based line number shared by the three lists.
	Line   int
	Source string
	// Order is the raw tier-order description; see ParseOrder.
	Order string
	Dest  string
}

// ReadJobs pairs the three lists strictly by position. The shortest list ends
// the batch; extra lines in the longer lists are ignored.
func ReadJobs(sources, orders, dests io.Reader) ([]Job, error) {
	src := newLineScanner(sources)
	ord := newLineScanner(orders)
	dst := newLineScanner(dests)

	var jobs []Job
	for line := 1; ; line++ {
		if !src.Scan() || !ord.Scan() || !dst.Scan() {
			break
		}
		jobs = append(jobs, Job{
			ID:     uuid.NewString(),
			Line:   line,
			Source: src.Text(),
			Order:  ord.Text(),
			Dest:   dst.Text(),
		})
	}
	for _, sc := range []*bufio.Scanner{src, ord, dst} {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("tiers: reading job lists: %w", err)
		}
	}
	return jobs, nil
}

// ReadPaths returns the lines of a path list.
func ReadPaths(r io.Reader) ([]string, error) {
	sc := newLineScanner(r)
	var paths []string
	for sc.Scan() {
		paths = append(paths, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tiers: reading path list: %w", err)
	}
	return paths, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		return advance, bytes.TrimRight(token, "\r"), err
	})
	return sc
}

// Opener loads the document at path.
type Opener func(path string) (Document, error)

// TextGridOpener returns an Opener for TextGrid files in the named encoding.
func TextGridOpener(encoding string) Opener {
	return func(path string) (Document, error) {
		tg, err := textgrid.ParseFile(path, encoding)
		if err != nil {
			return nil, err
		}
		return FromTextGrid(tg), nil
	}
}

// JobError records a failed job.
type JobError struct {
	Job Job
	Err error
}

// Error returns the job line, source and cause.
func (e *JobError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Job.Line, e.Job.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *JobError) Unwrap() error {
	return e.Err
}

// Report summarizes a batch.
type Report struct {
	Done   int
	Failed []*JobError
}

// Runner executes list and fix batches one file at a time.
type Runner struct {
	// Open loads source documents. Default: TextGridOpener("auto")
	Open Opener
	// StopOnError aborts the batch at the first failed job instead of
	// reporting it and moving on.
	StopOnError bool
	// Logger receives one record per job. Default: slog.Default()
	Logger *slog.Logger
}

func (r *Runner) opener() Opener {
	if r.Open != nil {
		return r.Open
	}
	return TextGridOpener("auto")
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run executes the jobs in order. Failed jobs produce no output file.
// The returned error is non-nil only when the context is cancelled or
// StopOnError is set and a job fails.
func (r *Runner) Run(ctx context.Context, jobs []Job) (Report, error) {
	var report Report
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		log := r.logger().With("job", job.ID, "line", job.Line, "source", job.Source)
		if err := r.runJob(job); err != nil {
			jerr := &JobError{Job: job, Err: err}
			report.Failed = append(report.Failed, jerr)
			log.Error("fix tiers failed", "err", err)
			if r.StopOnError {
				return report, jerr
			}
			continue
		}
		report.Done++
		log.Info("fixed tiers", "dest", job.Dest)
	}
	return report, nil
}

func (r *Runner) runJob(job Job) error {
	order, err := ParseOrder(job.Order)
	if err != nil {
		return err
	}
	doc, err := r.opener()(job.Source)
	if err != nil {
		return err
	}
	fixed, err := Reorder(doc, order)
	if err != nil {
		return err
	}

	// Serialize fully before touching the destination.
	var buf bytes.Buffer
	if err := fixed.Serialize(&buf); err != nil {
		return err
	}
	return os.WriteFile(job.Dest, buf.Bytes(), 0o644)
}

// List writes one tier-name list per source path to w, in FormatOrder form,
// so the output can be edited into the order list of a fix batch. An
// unreadable file gets an empty line to keep the lists aligned, and is
// reported; StopOnError aborts instead.
func (r *Runner) List(ctx context.Context, paths []string, w io.Writer) (Report, error) {
	var report Report
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		job := Job{ID: uuid.NewString(), Line: i + 1, Source: path}
		log := r.logger().With("job", job.ID, "line", job.Line, "source", path)
		doc, err := r.opener()(path)
		if err != nil {
			jerr := &JobError{Job: job, Err: err}
			report.Failed = append(report.Failed, jerr)
			log.Error("list tiers failed", "err", err)
			if r.StopOnError {
				return report, jerr
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return report, err
			}
			continue
		}

		names := ListTierNames(doc)
		if _, err := fmt.Fprintln(w, FormatOrder(names)); err != nil {
			return report, err
		}
		report.Done++
		log.Debug("listed tiers", "tiers", strings.Join(names, ","))
	}
	return report, nil
}
