// Command fixtiers lists and reorders the tiers of TextGrid files in batch.
//
// List the tier names of every TextGrid named in INPUTLIST, one line per file:
//
//	fixtiers -g INPUTLIST > NEWTIERS
//
// Rewrite each file with the tiers named on the same line of NEWTIERS, saving
// it to the path on the same line of OUTPUTLIST:
//
//	fixtiers -f INPUTLIST NEWTIERS OUTPUTLIST
package main

import (
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
	"github.com/shapestone/shape-plotnik/pkg/tiers"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errFailures = errors.New("some files failed")

type options struct {
	configPath string
	getTiers   string
	fixTiers   string
	encoding   string
	onError    string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailures) {
			fmt.Fprintf(os.Stderr, "fixtiers: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "fixtiers (-g INPUTLIST | -f INPUTLIST NEWTIERS OUTPUTLIST)",
		Short:         "List or reorder TextGrid tiers in batch",
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.getTiers != "" && opts.fixTiers != "":
				return errors.New("-g and -f are mutually exclusive")
			case opts.getTiers != "":
				return cobra.NoArgs(cmd, args)
			case opts.fixTiers != "":
				return cobra.ExactArgs(2)(cmd, args)
			default:
				return errors.New("one of -g or -f is required")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), opts, args, stdout, stderr)
		},
	}
	addFlags(cmd.Flags(), &opts)
	return cmd
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&opts.getTiers, "get-tiers", "g", "", "print the tier names of each TextGrid listed in INPUTLIST")
	fs.StringVarP(&opts.fixTiers, "fix-tiers", "f", "", "reorder the tiers of each TextGrid listed in INPUTLIST")
	fs.StringVar(&opts.encoding, "encoding", "", "TextGrid encoding (auto, utf-8, utf-16, ...)")
	fs.StringVar(&opts.onError, "on-error", "", "what to do with a bad file: skip or abort")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

func applyFlags(cfg *config.Config, fs *pflag.FlagSet, opts options) error {
	if fs.Changed("encoding") {
		cfg.Tiers.Encoding = strings.ToLower(opts.encoding)
	}
	if fs.Changed("on-error") {
		cfg.Batch.OnError = strings.ToLower(opts.onError)
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(opts.logLevel)
	}
	return cfg.Validate()
}

func run(ctx context.Context, fs *pflag.FlagSet, opts options, args []string, stdout, stderr io.Writer) error {
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

	runner := &tiers.Runner{
		Open:        tiers.TextGridOpener(cfg.Tiers.Encoding),
		StopOnError: cfg.StopOnError(),
		Logger:      log,
	}

	var report tiers.Report
	if opts.getTiers != "" {
		report, err = list(ctx, runner, opts.getTiers, stdout)
	} else {
		report, err = fix(ctx, runner, opts.fixTiers, args[0], args[1])
	}
	if err != nil {
		return err
	}
	log.Info("done", "files", report.Done, "failed", len(report.Failed))
	if len(report.Failed) > 0 {
		return errFailures
	}
	return nil
}

func list(ctx context.Context, runner *tiers.Runner, inputList string, stdout io.Writer) (tiers.Report, error) {
	f, err := os.Open(inputList)
	if err != nil {
		return tiers.Report{}, err
	}
	defer f.Close()

	paths, err := tiers.ReadPaths(f)
	if err != nil {
		return tiers.Report{}, err
	}
	return runner.List(ctx, paths, stdout)
}

func fix(ctx context.Context, runner *tiers.Runner, inputList, orderList, outputList string) (tiers.Report, error) {
	sources, err := os.Open(inputList)
	if err != nil {
		return tiers.Report{}, err
	}
	defer sources.Close()
	orders, err := os.Open(orderList)
	if err != nil {
		return tiers.Report{}, err
	}
	defer orders.Close()
	dests, err := os.Open(outputList)
	if err != nil {
		return tiers.Report{}, err
	}
	defer dests.Close()

	jobs, err := tiers.ReadJobs(sources, orders, dests)
	if err != nil {
		return tiers.Report{}, err
	}
	return runner.Run(ctx, jobs)
}
