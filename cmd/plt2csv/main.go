// Command plt2csv converts Plotnik vowel token files to a single CSV table.
//
// Usage:
//
//	plt2csv [-d] [--list FILE] [--config FILE] [-o OUT] [PLT...] > tokens.csv
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-plotnik/internal/config"
	"github.com/shapestone/shape-plotnik/internal/logging"
	"github.com/shapestone/shape-plotnik/pkg/plotnik"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errFailures is returned when some files were skipped; the summary has
// already been logged.
var errFailures = errors.New("some files failed to convert")

type options struct {
	configPath   string
	demographics bool
	list         string
	output       string
	encoding     string
	nan          string
	onError      string
	logLevel     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailures) {
			fmt.Fprintf(os.Stderr, "plt2csv: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "plt2csv [flags] [PLT...]",
		Short:         "Convert Plotnik token files to CSV",
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), opts, args, stdout, stderr)
		},
	}
	addFlags(cmd.Flags(), &opts)
	return cmd
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	fs.BoolVarP(&opts.demographics, "demographics", "d", false, "include speaker demographics from the file header")
	fs.StringVarP(&opts.list, "list", "l", "", "read token file paths from FILE, one per line (- for stdin)")
	fs.StringVarP(&opts.output, "output", "o", "", "write CSV to OUT instead of stdout")
	fs.StringVar(&opts.encoding, "encoding", "", "input encoding (utf-8, utf-16, macintosh, latin1, windows-1252)")
	fs.StringVar(&opts.nan, "nan", "", "marker written for not-a-number values")
	fs.StringVar(&opts.onError, "on-error", "", "what to do with a bad file: skip or abort")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// applyFlags overrides configuration values with the flags that were set.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet, opts options) error {
	if fs.Changed("demographics") {
		cfg.Plotnik.Demographics = opts.demographics
	}
	if fs.Changed("encoding") {
		cfg.Plotnik.Encoding = strings.ToLower(opts.encoding)
	}
	if fs.Changed("nan") {
		cfg.Output.NaN = opts.nan
	}
	if fs.Changed("on-error") {
		cfg.Batch.OnError = strings.ToLower(opts.onError)
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(opts.logLevel)
	}
	return cfg.Validate()
}

func run(ctx context.Context, fs *pflag.FlagSet, opts options, args []string, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, fs, opts); err != nil {
		return err
	}
	log, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	paths := args
	if opts.list != "" {
		listed, err := readList(opts.list)
		if err != nil {
			return err
		}
		paths = append(listed, paths...)
	}
	if len(paths) == 0 {
		return errors.New("no token files given")
	}

	subjects, err := plotnik.NewSubjectMatcher(cfg.Plotnik.SubjectPattern)
	if err != nil {
		return err
	}
	wopts, err := cfg.WriterOptions()
	if err != nil {
		return err
	}

	out := stdout
	if opts.output != "" {
		f, cerr := os.Create(opts.output)
		if cerr != nil {
			return cerr
		}
		defer closeOutput(f, opts.output, &err)
		out = f
	}
	w, err := plotnik.NewWriter(out, wopts)
	if err != nil {
		return err
	}
	if err := w.WriteHeader(); err != nil {
		return err
	}

	conv := &plotnik.Converter{
		Demographics: cfg.Plotnik.Demographics,
		Encoding:     cfg.Plotnik.Encoding,
		Subjects:     subjects,
		StopOnError:  cfg.StopOnError(),
		Logger:       log,
	}
	report, err := conv.ConvertFiles(ctx, paths, w)
	if err != nil {
		// Keep the rows of the files converted so far.
		_ = w.Flush()
		return err
	}
	log.Info("done", "files", report.Files, "tokens", report.Tokens, "failed", len(report.Failed))
	if len(report.Failed) > 0 {
		return errFailures
	}
	return nil
}

// closeOutput closes the CSV file, reporting a failed close through errp
// unless an earlier error is already set.
func closeOutput(c io.Closer, name string, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("closing %s: %w", name, cerr)
	}
}

// readList returns the non-blank lines of the list file at path.
func readList(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var paths []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if p := strings.TrimSpace(sc.Text()); p != "" {
			paths = append(paths, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return paths, nil
}
