// Command mpqextract lists, searches and extracts the members of an archive,
// optionally layering patch archives on top of it first.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/Kanma/MPQExtractor/archive/container"
	"github.com/Kanma/MPQExtractor/errors"
	"github.com/Kanma/MPQExtractor/fs/billy"
	"github.com/Kanma/MPQExtractor/fs/core"
	"github.com/Kanma/MPQExtractor/internal/logging"
	"github.com/Kanma/MPQExtractor/session"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// config holds the parsed command line.
type config struct {
	help     bool
	listFile string
	prefix   string
	patches  []string
	search   string
	extract  string
	dest     string
	fullPath bool
	lower    bool
	report   string
	logLevel string
	verbose  bool
}

func newFlagSet(name string, cfg *config) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SortFlags = false

	flagSet.BoolVarP(&cfg.help, "help", "h", false, "display this help")
	flagSet.StringVarP(&cfg.listFile, "listfile", "l", "", "save the list of files in the archive to `FILE`")
	flagSet.StringVarP(&cfg.search, "search", "s", "", "search for the files matching `PATTERN`")
	flagSet.StringVarP(&cfg.extract, "extract", "e", "", "same as --search, but the found files are also extracted")
	flagSet.StringVarP(&cfg.dest, "dest", "o", ".", "the folder where the files are extracted")
	flagSet.BoolVarP(&cfg.fullPath, "fullpath", "f", false, "preserve the path hierarchy found inside the archive")
	flagSet.StringArrayVarP(&cfg.patches, "patches", "p", nil, "patch to apply before extracting, as `FILE[,PREFIX]` (repeatable)")
	flagSet.StringVar(&cfg.prefix, "prefix", "", "path prefix for patches that do not specify their own")
	flagSet.BoolVarP(&cfg.lower, "lowercase", "c", false, "convert extracted file paths to lowercase")
	flagSet.StringVar(&cfg.report, "report", "", "write a YAML report of the run to `FILE`")
	flagSet.StringVar(&cfg.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "shorthand for --log-level debug")
	return flagSet
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	var cfg config
	flagSet := newFlagSet(name, &cfg)

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Invalid argument: %v\n", err)
		return exitUsage
	}
	if cfg.help {
		printUsage(stdout, name, flagSet)
		return exitOK
	}

	files := flagSet.Args()
	if len(files) != 1 {
		fmt.Fprintln(stderr, "No archive file specified")
		return exitUsage
	}

	level, err := logging.ParseLogLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid argument: %v\n", err)
		return exitUsage
	}
	if cfg.verbose {
		level = logging.LogLevelDebug
	}
	logger := logging.NewLogger(logging.LogConfig{Level: level, Output: stderr})

	fsys := billy.NewLocal()
	backend := container.New(
		container.WithFS(fsys),
		container.WithLogger(logger),
	)
	s := session.New(backend,
		session.WithFS(fsys),
		session.WithLogger(logger),
		session.WithOutput(stdout),
	)

	opts := session.Options{
		ListFile:      cfg.listFile,
		DefaultPrefix: cfg.prefix,
		Patches:       cfg.patches,
		Pattern:       cfg.search,
		Destination:   cfg.dest,
		FullPath:      cfg.fullPath,
		LowerCase:     cfg.lower,
	}
	if cfg.extract != "" {
		opts.Pattern = cfg.extract
		opts.Extract = true
	}

	report, runErr := s.Run(ctx, files[0], opts)
	if runErr != nil {
		fmt.Fprintf(stderr, "error: %v\n", runErr)
	}

	if cfg.report != "" {
		if err := writeReport(fsys, cfg.report, report); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitFatal
		}
	}

	if errors.IsFatal(runErr) {
		return exitFatal
	}
	if len(report.Extractions) > 0 {
		fmt.Fprintf(stdout, "\n%s\n", report.Summary())
	}
	return exitOK
}

func writeReport(fsys core.FS, path string, report *session.Report) error {
	data, err := report.YAML()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode the report")
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "failed to write the report to %s", path)
	}
	return nil
}

func printUsage(w io.Writer, name string, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `mpqextract
Usage: %[1]s [options] <filename>

This program can either:
  - retrieve the list of files in an archive
  - search for the list of files corresponding to a given pattern in an archive
  - extract some files from an archive
  - apply some patches to an archive before extracting some files
  - combine some of the above options

Options:
%[2]s
Patterns use '*' for any run of characters and '?' for a single character.
Member paths inside archives are separated by backslashes.

Examples:

  1) Retrieve the list of files in an archive:

       %[1]s -l list.txt archive.MPQ

  2) Search all the *.M2 files in an archive:

       %[1]s -s "*.M2" archive.MPQ

  3) Extract a specific file from an archive:

       %[1]s -e "Path\To\The\File" -o out archive.MPQ

  4) Extract some specific files from an archive, preserving the path
     hierarchy found inside the archive:

       %[1]s -e "Path\To\Extract\*" -f -o out archive.MPQ

  5) Apply some patches before extracting a specific file from an archive:

       %[1]s -p patch-1.MPQ -p patch-2.MPQ,base --prefix base -e "Path\To\The\File" -o out archive.MPQ

`, name, flagSet.FlagUsages())
}
