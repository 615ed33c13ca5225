// Command lexicon builds the dictionary database from language model output.
//
// Usage:
//
//	lexicon submit [flags]           build the task file and start a batch job
//	lexicon process [flags]          poll the saved job and persist its results
//	lexicon direct [flags]           generate every lemma with synchronous requests
//	lexicon lookup [flags] <lemma>   print the stored tree of one lemma as JSON
//
// Flags:
//
//	-config   path to the YAML config (overrides CONFIG_PATH)
//	-input    path to the lemma TSV (overrides batch.input_path)
//	-results  process a result artifact on disk instead of contacting the job
//	-version  print the version and exit
//
// Exit codes: 0 = success (including a pending job and skipped records),
// 1 = error, 2 = usage error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/lexicon-builder/internal/app"
	"github.com/heartmarshall/lexicon-builder/internal/app/lexbatch"
	"github.com/heartmarshall/lexicon-builder/internal/config"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const (
	modeSubmit  = "submit"
	modeProcess = "process"
	modeDirect  = "direct"
	modeLookup  = "lookup"
)

type options struct {
	configPath string
	inputPath  string
	results    string
	version    bool
	mode       string
	args       []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stderr)
			return exitOK
		}
		fmt.Fprintf(stderr, "lexicon: %v\n\n", err)
		usage(stderr)
		return exitUsage
	}

	if opts.version {
		fmt.Fprintln(stdout, app.BuildVersion())
		return exitOK
	}

	if opts.configPath != "" {
		if err := os.Setenv("CONFIG_PATH", opts.configPath); err != nil {
			fmt.Fprintf(stderr, "lexicon: %v\n", err)
			return exitError
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "lexicon: load config: %v\n", err)
		return exitError
	}

	logger := app.NewLogger(cfg.Log)

	a := app.New(cfg, logger)
	defer a.Close()

	if err := dispatch(ctx, a, opts, stdout); err != nil {
		logger.Error(opts.mode+" failed", slog.String("error", err.Error()))
		return exitError
	}
	return exitOK
}

func parseArgs(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("lexicon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config")
	fs.StringVar(&opts.inputPath, "input", "", "path to lemma TSV")
	fs.StringVar(&opts.results, "results", "", "result artifact to process instead of the saved job")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	rest := fs.Args()
	if opts.version {
		return opts, nil
	}
	if len(rest) == 0 {
		return opts, errors.New("no mode given")
	}
	opts.mode = rest[0]

	// Flags may also follow the mode.
	if err := fs.Parse(rest[1:]); err != nil {
		return opts, err
	}
	opts.args = fs.Args()

	switch opts.mode {
	case modeSubmit, modeProcess, modeDirect:
		if len(opts.args) > 0 {
			return opts, fmt.Errorf("%s takes no arguments", opts.mode)
		}
	case modeLookup:
		if len(opts.args) != 1 {
			return opts, errors.New("lookup takes exactly one lemma")
		}
	default:
		return opts, fmt.Errorf("unknown mode %q", opts.mode)
	}

	if opts.results != "" && opts.mode != modeProcess {
		return opts, errors.New("-results only applies to process")
	}

	return opts, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: lexicon <submit|process|direct|lookup <lemma>> [-config path] [-input path] [-results path]")
}

func dispatch(ctx context.Context, a *app.App, opts options, stdout io.Writer) error {
	if opts.mode == modeLookup {
		store, err := a.Lexicon(ctx)
		if err != nil {
			return err
		}
		rec, err := store.Lookup(ctx, opts.args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	// The input is read before anything else so a missing file fails
	// without touching the job service or the local database.
	pairs, err := a.ReadInput(opts.inputPath)
	if err != nil {
		return err
	}

	switch opts.mode {
	case modeSubmit:
		handle, err := a.Submit(ctx, pairs)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "submitted job %s with %d tasks\n", handle.ID, handle.Tasks)
		return nil

	case modeProcess:
		sum, err := a.Process(ctx, pairs, opts.results)
		if err != nil {
			return err
		}
		report(stdout, sum)
		return nil

	default:
		sum, err := a.Direct(ctx, pairs)
		if err != nil {
			return err
		}
		report(stdout, sum)
		return nil
	}
}

// report prints the outcome of a run. Skipped records do not change the exit
// status.
func report(stdout io.Writer, sum lexbatch.Summary) {
	if sum.State == domain.BatchJobPending {
		fmt.Fprintln(stdout, "batch job still pending, run process again later")
		return
	}

	fmt.Fprintf(stdout, "persisted %d of %d records (%d skipped, %d lemmas already had entries)\n",
		sum.Persisted, sum.Total, len(sum.Failures), sum.EntriesSkipped)
	for _, f := range sum.Failures {
		fmt.Fprintf(stdout, "  skipped: %v\n", f)
	}
}
