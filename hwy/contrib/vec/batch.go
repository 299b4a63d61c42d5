package vec

import "github.com/ajroetker/hwycore/hwy/contrib/workerpool"

// minRowsPerTask keeps tiny batches on the calling goroutine, where pool
// dispatch would cost more than the sums themselves.
const minRowsPerTask = 64

// BatchSum computes dst[i] = Sum(rows[i]) for every row.
//
// Rows are spread across pool workers; each row is still reduced by a
// single Sum call, so every dst[i] is bit-identical to Sum(rows[i])
// regardless of the worker count. A nil pool runs sequentially.
//
// Panics if dst is shorter than rows.
//
// Example:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	rows := [][]float64{{1, 2}, {3, 4, 5}}
//	dst := make([]float64, len(rows))
//	BatchSum(pool, rows, dst) // dst = [3, 12]
func BatchSum(pool *workerpool.Pool, rows [][]float64, dst []float64) {
	if len(dst) < len(rows) {
		panic("vec: BatchSum dst is shorter than rows")
	}
	if pool == nil || len(rows) < minRowsPerTask {
		for i, row := range rows {
			dst[i] = Sum(row)
		}
		return
	}

	pool.ParallelForAtomicBatched(len(rows), minRowsPerTask, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = Sum(rows[i])
		}
	})
}
