// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"msri-core/docarray"
	"msri-core/engine"
	"msri-core/rindex"
	"msri-core/textaccess"
	"msri/internal/cli"
	"msri/internal/patterns"
	"msri/internal/pipeline"
	"msri/internal/version"
	"msri/internal/writers"
)

// RunContext is cmd/msquery's entry point: parse flags, load the
// reference archive, stream patterns through the engine, and write
// results, returning a process exit code (0 ok, 2 usage error, 3 I/O
// or load error).
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("msquery")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := flush(outw, stderr); e != 0 {
			return e
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "msquery version %s\n", version.Version)
		return flush(outw, stderr)
	}

	eng, closeFn, err := loadEngine(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if closeFn != nil {
		defer closeFn()
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	in, err := patterns.StreamCtx(parent, opts.PatternsFile, opts.FASTA)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	resultsIn, done := writers.StartQueryWriter(outw, opts.Output, opts.Header, threads*2)

	runErr := pipeline.ForEachQuery(parent, pipeline.Config{Threads: threads}, in, eng, func(r writers.QueryResult) error {
		resultsIn <- r
		return nil
	})
	close(resultsIn)
	writeErr := <-done

	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) && writeErr == nil {
		writeErr = e
	}

	switch {
	case runErr != nil:
		_, _ = fmt.Fprintln(stderr, runErr)
		return 3
	case writeErr != nil && !writers.IsBrokenPipe(writeErr):
		_, _ = fmt.Fprintln(stderr, writeErr)
		return 3
	}
	return 0
}

// Run is the context.Background() convenience wrapper.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// loadEngine opens the -ref archive (derived path: <ref>.ms or
// <ref>.pml per opts.Mode) plus the optional document array and
// random-access text sidecar files, and builds the Engine.
func loadEngine(opts cli.Options) (*engine.Engine, func(), error) {
	var (
		eng      *engine.Engine
		idx      *rindex.Index
		closeFns []func()
	)

	switch opts.Mode {
	case cli.ModeMS:
		f, err := os.Open(opts.RefPrefix + ".ms")
		if err != nil {
			return nil, nil, fmt.Errorf("app: open MS archive: %w", err)
		}
		defer f.Close()
		i, th, sa, err := rindex.LoadMS(f)
		if err != nil {
			return nil, nil, fmt.Errorf("app: load MS archive: %w", err)
		}
		idx = i
		eng = engine.NewMS(idx, th, sa)
		if text, err := textaccess.OpenMappedFile(opts.RefPrefix + ".text"); err == nil {
			eng = eng.WithText(text)
			closeFns = append(closeFns, func() { _ = text.Close() })
		}
	default:
		f, err := os.Open(opts.RefPrefix + ".pml")
		if err != nil {
			return nil, nil, fmt.Errorf("app: open PML archive: %w", err)
		}
		defer f.Close()
		i, th, err := rindex.LoadPML(f)
		if err != nil {
			return nil, nil, fmt.Errorf("app: load PML archive: %w", err)
		}
		idx = i
		eng = engine.NewPML(idx, th)
	}

	if opts.WithDoc {
		df, err := os.Open(opts.RefPrefix + ".doc")
		if err != nil {
			return nil, nil, fmt.Errorf("app: open document array: %w", err)
		}
		doc, err := docarray.Load(df, idx.NumberOfRuns())
		_ = df.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("app: load document array: %w", err)
		}
		eng = eng.WithDocArray(doc)
	}

	return eng, func() {
		for _, fn := range closeFns {
			fn()
		}
	}, nil
}

func flush(outw *bufio.Writer, stderr io.Writer) int {
	if err := outw.Flush(); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}
