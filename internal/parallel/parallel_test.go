package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForSequentialSmall(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 64}
	out := make([]int, 10)
	For(10, func(i int) { out[i] = i * i }, cfg)
	for i := range out {
		if out[i] != i*i {
			t.Errorf("out[%d] = %d, want %d", i, out[i], i*i)
		}
	}
}

func TestForParallelCoversAllIndices(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	const n = 1000
	var count int64
	seen := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt64(&count, 1)
		atomic.AddInt32(&seen[i], 1)
	}, cfg)
	if count != n {
		t.Errorf("executed %d iterations, want %d", count, n)
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestForDisabledRunsSequentially(t *testing.T) {
	cfg := Config{Enabled: false}
	order := make([]int, 0, 5)
	For(5, func(i int) { order = append(order, i) }, cfg)
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestForBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 1
	const batch, channels = 3, 4
	var visits [batch][channels]int32
	ForBatch(batch, channels, func(b, c int) {
		atomic.AddInt32(&visits[b][c], 1)
	}, cfg)
	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			if visits[b][c] != 1 {
				t.Errorf("(%d,%d) visited %d times, want 1", b, c, visits[b][c])
			}
		}
	}
}
