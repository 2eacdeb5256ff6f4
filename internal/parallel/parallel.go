// Package parallel provides the chunked worker loop used by the per-row
// evaluation sweep.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how a loop is partitioned across goroutines.
type Config struct {
	Workers  int // Number of worker goroutines.
	MinChunk int // Minimum iterations per goroutine; below this the loop stays sequential.
}

// Default returns a configuration sized to the machine.
func Default() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		MinChunk: 64,
	}
}

// For executes f(i) for every i in [0, n). Iterations must be independent:
// the chunks run concurrently and complete in no particular order. Small
// loops run sequentially on the calling goroutine.
func For(n int, cfg Config, f func(i int)) {
	if cfg.Workers <= 1 || n < cfg.MinChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
