package dfrs

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ============================================================================
// Parallel Execution Configuration
// ============================================================================

// ParallelConfig controls when elementwise kernels and CSV column building
// split their work across goroutines. Results never depend on it.
type ParallelConfig struct {
	// MinRowsForParallel is the minimum rows to justify parallel overhead
	MinRowsForParallel int

	// MorselSize is the number of rows per work unit (default 4096)
	MorselSize int

	// MaxWorkers limits the number of worker goroutines (0 = GOMAXPROCS)
	MaxWorkers int

	// Enabled controls whether parallelism is used at all
	Enabled bool
}

// DefaultParallelConfig returns sensible defaults
func DefaultParallelConfig() *ParallelConfig {
	return &ParallelConfig{
		MinRowsForParallel: 8192,
		MorselSize:         4096,
		MaxWorkers:         0,
		Enabled:            true,
	}
}

var globalConfig atomic.Pointer[ParallelConfig]

func init() {
	globalConfig.Store(DefaultParallelConfig())
}

// SetParallelConfig sets the global parallelization configuration
func SetParallelConfig(cfg *ParallelConfig) {
	if cfg != nil {
		globalConfig.Store(cfg)
	}
}

// GetParallelConfig returns the current configuration
func GetParallelConfig() *ParallelConfig {
	return globalConfig.Load()
}

// numWorkers returns the number of workers to use
func (cfg *ParallelConfig) numWorkers() int {
	if cfg.MaxWorkers > 0 {
		return cfg.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// shouldParallelize determines if an operation should be parallelized
func (cfg *ParallelConfig) shouldParallelize(rows int) bool {
	return cfg.Enabled && rows >= cfg.MinRowsForParallel
}

func (cfg *ParallelConfig) morselSize() int {
	if cfg.MorselSize <= 0 {
		return 4096
	}
	return cfg.MorselSize
}

// ============================================================================
// Morsel-Based Work Distribution
// ============================================================================

// Morsel represents a range of rows to process
type Morsel struct {
	Start int
	End   int
}

// MorselIterator hands out consecutive row ranges to competing workers.
type MorselIterator struct {
	totalRows  int
	morselSize int
	nextStart  atomic.Int64
}

// NewMorselIterator creates a new morsel iterator
func NewMorselIterator(totalRows, morselSize int) *MorselIterator {
	if morselSize <= 0 {
		morselSize = GetParallelConfig().morselSize()
	}
	return &MorselIterator{
		totalRows:  totalRows,
		morselSize: morselSize,
	}
}

// Next returns the next morsel, or nil if exhausted.
// It is safe for concurrent use.
func (mi *MorselIterator) Next() *Morsel {
	for {
		start := mi.nextStart.Load()
		if int(start) >= mi.totalRows {
			return nil
		}

		end := int(start) + mi.morselSize
		if end > mi.totalRows {
			end = mi.totalRows
		}

		if mi.nextStart.CompareAndSwap(start, int64(end)) {
			return &Morsel{Start: int(start), End: end}
		}
	}
}

// ============================================================================
// Parallel Execution Helpers
// ============================================================================

// ParallelFor calls fn over disjoint row ranges covering [0, totalRows).
// Small inputs run on the calling goroutine in a single call.
func ParallelFor(totalRows int, fn func(start, end int)) {
	cfg := GetParallelConfig()
	if !cfg.shouldParallelize(totalRows) {
		fn(0, totalRows)
		return
	}

	numWorkers := cfg.numWorkers()
	morselIter := NewMorselIterator(totalRows, cfg.morselSize())

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				morsel := morselIter.Next()
				if morsel == nil {
					return
				}
				fn(morsel.Start, morsel.End)
			}
		}()
	}
	wg.Wait()
}

// ParallelMap applies fn to each index, in parallel when rows (the amount
// of work behind each index) is large enough.
func ParallelMap[T any](n, rows int, fn func(i int) T) []T {
	results := make([]T, n)

	cfg := GetParallelConfig()
	if n < 2 || !cfg.shouldParallelize(rows) {
		for i := 0; i < n; i++ {
			results[i] = fn(i)
		}
		return results
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = fn(idx)
		}(i)
	}
	wg.Wait()
	return results
}
