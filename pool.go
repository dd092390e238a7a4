package dfrs

import (
	"sync"
)

// scratch is a pooled slice used for temporary operand conversions in the
// kernels. Call release() when done to return it to the pool.
type scratch[T any] struct {
	data []T
	pool *sync.Pool
}

func (s *scratch[T]) release() {
	if s.pool != nil && s.data != nil {
		s.pool.Put(s)
	}
}

// Pool sizes - we use power-of-2 buckets
var (
	float64Pools [32]*sync.Pool // pools for sizes 2^0 to 2^31
	int64Pools   [32]*sync.Pool
	poolInit     sync.Once
)

func initPools() {
	poolInit.Do(func() {
		for i := range float64Pools {
			size := 1 << i
			float64Pools[i] = &sync.Pool{
				New: func() any {
					return &scratch[float64]{data: make([]float64, size)}
				},
			}
			int64Pools[i] = &sync.Pool{
				New: func() any {
					return &scratch[int64]{data: make([]int64, size)}
				},
			}
		}
	})
}

// getBucket returns the pool bucket index for a given size
func getBucket(size int) int {
	if size <= 0 {
		return 0
	}
	// Find the smallest power of 2 >= size
	bucket := 0
	n := size - 1
	for n > 0 {
		n >>= 1
		bucket++
	}
	if bucket >= 32 {
		bucket = 31
	}
	return bucket
}

func getScratch[T any](pools *[32]*sync.Pool, size int) *scratch[T] {
	initPools()
	bucket := getBucket(size)
	pool := pools[bucket]
	s := pool.Get().(*scratch[T])
	s.pool = pool

	if size > cap(s.data) {
		s.data = make([]T, size)
	}
	s.data = s.data[:size]
	return s
}

// getFloat64Scratch gets a float64 slice of length size from the pool.
// Contents are unspecified.
func getFloat64Scratch(size int) *scratch[float64] {
	return getScratch[float64](&float64Pools, size)
}

// getInt64Scratch gets an int64 slice of length size from the pool.
func getInt64Scratch(size int) *scratch[int64] {
	return getScratch[int64](&int64Pools, size)
}
