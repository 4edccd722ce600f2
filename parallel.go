package mvngrad

import "sync"

// forEachRow runs fn for rows 0..n-1. With a single worker the loop is a
// plain serial pass; otherwise rows are split into contiguous chunks, one
// chunk per worker, which keeps each worker streaming through adjacent
// memory. Every worker gets its own scratch; the plan itself is read-only
// and shared.
//
// Row independence is a property of the kernel, so the worker count never
// affects results or their order, only throughput.
func (p *plan) forEachRow(n, workers int, fn func(i int, sc *scratch) error) error {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		sc := p.newScratch()
		for i := 0; i < n; i++ {
			if err := fn(i, sc); err != nil {
				return err
			}
		}
		return nil
	}

	chunk := (n + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			sc := p.newScratch()
			start := w * chunk
			end := min(start+chunk, n)
			for i := start; i < end; i++ {
				if err := fn(i, sc); err != nil {
					errs[w] = err
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
