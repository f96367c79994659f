// Package main provides the CLI entry point for excel2csv.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/internal/config"
	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv"
	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// exitError carries the process exit code out of RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...interface{}) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

type flags struct {
	output       string
	overwrite    string
	recursive    bool
	preserveTree bool
	prune        bool
	printArea    bool
	raw          bool
	password     string
	delimiter    string
	crlf         bool
	encoding     string
	includeSheet []string
	excludeSheet []string
	jobs         int
	logLevel     string
	logFormat    string
}

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cmd := newRootCommand(cfg, stdin, stderr)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitUsage
	}
	return exitOK
}

func newRootCommand(cfg *config.Config, stdin io.Reader, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "excel2csv [flags] <workbook.xlsx | directory>",
		Short: "Export every worksheet of Excel workbooks to CSV files",
		Long: `excel2csv writes each worksheet of an .xlsx workbook to its own CSV file.

Files are placed under <output>/<workbook name>/<sheet name>.csv. When the
input is a directory, every workbook found below it is converted.

Overwrite policies for existing CSV files:
  ask     prompt for each file (default, only "y" overwrites)
  always  replace existing files
  never   keep existing files`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), f, args[0], stdin, stderr)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", cfg.OutputRoot, "Directory that receives the exported CSV files")
	fs.StringVar(&f.overwrite, "overwrite", cfg.Overwrite, "Policy for existing CSV files: ask, always, or never")
	fs.BoolVar(&f.recursive, "recursive", true, "Scan directory inputs recursively")
	fs.BoolVar(&f.preserveTree, "preserve-tree", false, "Mirror the input directory layout under the output directory")
	fs.BoolVar(&f.prune, "prune", true, "Remove fully empty rows and columns")
	fs.BoolVar(&f.printArea, "print-area", false, "Export only the first print area of sheets that define one")
	fs.BoolVar(&f.raw, "raw", false, "Write raw cell values without number formats")
	fs.StringVar(&f.password, "password", "", "Password for encrypted workbooks")
	fs.StringVarP(&f.delimiter, "delimiter", "d", ",", `Field delimiter (a single character or "tab")`)
	fs.BoolVar(&f.crlf, "crlf", false, `End records with \r\n`)
	fs.StringVar(&f.encoding, "encoding", cfg.Encoding, "Output encoding label, e.g. utf-8 or windows-1252")
	fs.StringArrayVar(&f.includeSheet, "include-sheet", nil, "Only export sheets matching this regexp (repeatable)")
	fs.StringArrayVar(&f.excludeSheet, "exclude-sheet", nil, "Skip sheets matching this regexp (repeatable)")
	fs.IntVarP(&f.jobs, "jobs", "j", cfg.Jobs, "Number of workbooks converted at once")
	fs.StringVar(&f.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, or error")
	fs.StringVar(&f.logFormat, "log-format", cfg.LogFormat, "Log format: console or json")

	return cmd
}

func runExport(ctx context.Context, f *flags, input string, stdin io.Reader, stderr io.Writer) error {
	log, err := logger.New(f.logLevel, f.logFormat, stderr)
	if err != nil {
		return usageErrorf("%v", err)
	}
	defer log.Sync()

	opts, err := buildOptions(f, stdin, stderr)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	if samePath(input, opts.OutputRoot) {
		return usageErrorf("the input path %q must be different from the output path", input)
	}

	report, err := excel2csv.New(opts, log).Export(ctx, input)
	switch {
	case err == nil:
	case errors.Is(err, excel2csv.ErrSourceNotFound):
		// Nothing to convert is not a failure of the run.
		return nil
	case errors.Is(err, excel2csv.ErrInvalidOptions):
		return &exitError{code: exitUsage, err: err}
	default:
		return &exitError{code: exitFatal, err: err}
	}

	if failures := report.Err(); failures != nil {
		log.Warnw("Some items were not converted", "error", failures)
	}
	return nil
}

func buildOptions(f *flags, stdin io.Reader, stderr io.Writer) (excel2csv.Options, error) {
	opts := excel2csv.DefaultOptions()
	opts.OutputRoot = f.output
	opts.Recursive = f.recursive
	opts.PreserveTree = f.preserveTree
	opts.Prune = f.prune
	opts.PrintArea = f.printArea
	opts.RawValues = f.raw
	opts.Password = f.password
	opts.Jobs = f.jobs

	if f.jobs < 1 {
		return opts, fmt.Errorf("--jobs must be at least 1, got %d", f.jobs)
	}
	if strings.ToLower(f.overwrite) == excel2csv.PolicyAsk && f.jobs > 1 {
		return opts, fmt.Errorf("--overwrite=ask cannot be combined with --jobs > 1")
	}
	decide, err := excel2csv.ParsePolicy(f.overwrite, stdin, stderr)
	if err != nil {
		return opts, err
	}
	opts.Decide = decide

	delim, err := parseDelimiter(f.delimiter)
	if err != nil {
		return opts, err
	}
	opts.CSV = excel2csv.CSVOptions{Delimiter: delim, CRLF: f.crlf, Encoding: f.encoding}

	if opts.IncludeSheets, err = compilePatterns(f.includeSheet); err != nil {
		return opts, err
	}
	if opts.ExcludeSheets, err = compilePatterns(f.excludeSheet); err != nil {
		return opts, err
	}

	return opts, opts.Validate()
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid sheet pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
