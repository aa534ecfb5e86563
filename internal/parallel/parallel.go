// Package parallel provides chunked worker loops for the CPU backend kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how loops are split across goroutines.
type Config struct {
	Enabled      bool // Whether loops run on multiple goroutines.
	NumWorkers   int  // Number of goroutines to spread work over.
	MinChunkSize int  // Minimum iterations per goroutine to amortize spawn cost.
}

// DefaultConfig sizes the worker pool from the CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// For runs f(i) for i in [0, n). Iterations are assumed independent; callers
// must write to disjoint output regions so results do not depend on schedule.
// Small loops run sequentially.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

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

// ForBatch flattens a (batch, channel) nest into a single parallel loop.
// Convolution and pooling kernels iterate this way.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
