package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_VisitsEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	seen := make([]int32, 37)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		assert.Equal(t, int32(1), v, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, Sequential())

	assert.Equal(t, int64(100), counter)
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to sequential.
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 16}

	order := make([]int, 0, 10)
	For(10, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestMap_IndexOrder(t *testing.T) {
	square := func(i int) float64 { return float64(i * i) }

	seq := Map(50, square, Sequential())
	par := Map(50, square, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})

	assert.Equal(t, seq, par)
	assert.Equal(t, 49.0*49.0, par[49])
}

func TestMap_Empty(t *testing.T) {
	assert.Empty(t, Map(0, func(int) float64 { return 1 }, DefaultConfig()))
}

func BenchmarkMap(b *testing.B) {
	cfg := DefaultConfig()
	n := 256
	work := func(i int) float64 {
		s := 0.0
		for k := 0; k < 2000; k++ {
			s += float64(i*k) * 1e-9
		}
		return s
	}

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Map(n, work, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Map(n, work, Sequential())
		}
	})
}
