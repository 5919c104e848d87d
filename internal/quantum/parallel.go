package quantum

import "sync"

// Kernel accumulates contributions from source indices [start, end) into dst.
type Kernel func(start, end int, dst []complex128)

// ParallelFor splits [0, n) into at most workers contiguous chunks and runs fn
// on each chunk in its own goroutine. fn receives the chunk's worker index.
func ParallelFor(n, workers int, fn func(worker, start, end int)) {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, 0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(worker, s, e int) {
			defer wg.Done()
			fn(worker, s, e)
		}(w, start, end)
	}

	wg.Wait()
}
