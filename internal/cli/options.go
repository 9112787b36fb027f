// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"msri/internal/version"
)

// Query modes accepted by -mode.
const (
	ModeMS  = "ms"
	ModePML = "pml"
)

// Options holds all cmd/msquery CLI flags and arguments.
type Options struct {
	RefPrefix string // -ref: index archive path prefix (without extension)
	Mode      string // -mode: ms | pml

	PatternsFile string // -patterns: file path, or "-" for stdin
	FASTA        bool   // -fasta: patterns file is FASTA-like, not newline-delimited

	WithDoc bool // -doc: load and emit the document array

	Output string // -output: text | jsonl
	Header bool    // true unless -no-header

	Threads int // -threads: 0 = all CPUs

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: matching-statistics / pseudo-matching-length query engine

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, os.Args[1:]) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noHeader bool

	fs.StringVar(&opt.RefPrefix, "ref", "", "reference index archive prefix [*]")
	fs.StringVar(&opt.Mode, "mode", ModeMS, "query mode: ms | pml ["+ModeMS+"]")
	fs.StringVar(&opt.PatternsFile, "patterns", "-", "pattern file, or '-' for stdin [-]")
	fs.BoolVar(&opt.FASTA, "fasta", false, "patterns file is FASTA-like instead of newline-delimited [false]")
	fs.BoolVar(&opt.WithDoc, "doc", false, "load the document array and emit per-position document ids [false]")
	fs.StringVar(&opt.Output, "output", "text", "output format: text | jsonl [text]")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker goroutines (0 = all CPUs) [0]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	if opt.RefPrefix == "" {
		return opt, errors.New("-ref is required")
	}
	if opt.Mode != ModeMS && opt.Mode != ModePML {
		return opt, fmt.Errorf("invalid -mode %q", opt.Mode)
	}
	if opt.Output != "text" && opt.Output != "jsonl" {
		return opt, fmt.Errorf("invalid -output %q", opt.Output)
	}
	if opt.Threads < 0 {
		return opt, errors.New("-threads must be ≥ 0")
	}
	return opt, nil
}
