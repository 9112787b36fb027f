// internal/pipeline/pipeline.go
//
// Package pipeline runs queries against a loaded engine.Engine across
// a worker pool, preserving input order in the output stream (the
// "partition by offset, concatenate in order" rule of spec.md §5):
// each query is tagged with its input index and a single collector
// buffers out-of-order results until it can flush a contiguous run.
package pipeline

import (
	"context"
	"sync"

	"msri-core/engine"
	"msri/internal/patterns"
	"msri/internal/writers"
)

// Config controls the query worker pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// ForEachQuery reads patterns from in, runs eng.Run on each in parallel,
// and calls visit with results in input order. It returns the first
// error encountered, including context cancellation.
func ForEachQuery(
	ctx context.Context,
	cfg Config,
	in <-chan patterns.Pattern,
	eng *engine.Engine,
	visit func(writers.QueryResult) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		id int
		p  []byte
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan writers.QueryResult, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					res := eng.Run(j.p)
					qr := writers.QueryResult{ID: j.id, Lengths: res.Lengths, Pointers: res.Pointers, DocIDs: res.DocIDs}
					select {
					case results <- qr:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	var (
		cerr    error
		cwg     sync.WaitGroup
		pending = make(map[int]writers.QueryResult, 1<<8)
		nextID  = 0
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.ID] = r
			for {
				next, ok := pending[nextID]
				if !ok {
					break
				}
				delete(pending, nextID)
				nextID++
				if err := visit(next); err != nil && cerr == nil {
					cerr = err
				}
			}
		}
	}()

feed:
	for p := range in {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{id: p.ID, p: p.P}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
