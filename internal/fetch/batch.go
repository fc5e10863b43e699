package fetch

import (
	"context"
	"sync"
)

// DefaultBatchWorkers bounds concurrent resolutions in FetchAll. Individual
// resolutions are independent and stateless, and the client rate limiters
// keep the services polite regardless of pool size.
const DefaultBatchWorkers = 4

// BatchItem is the outcome of resolving one key in a batch. Err is non-nil
// (wrapping ErrNotFound) when every attempt for the key was exhausted.
type BatchItem struct {
	Key string `json:"key"`
	Result
	Err error `json:"-"`
}

// FetchAll resolves a batch of keys concurrently with a bounded worker pool.
// Results are returned in the same order as keys. A failed key never aborts
// the batch; callers inspect each item's Err to report unresolved keys.
func (r *Resolver) FetchAll(ctx context.Context, keys []string, strategy Strategy, workers int) []BatchItem {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(keys) {
		workers = len(keys)
	}

	items := make([]BatchItem, len(keys))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := r.Fetch(ctx, keys[i], strategy)
				items[i] = BatchItem{Key: keys[i], Result: res, Err: err}
			}
		}()
	}

	for i := range keys {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return items
}
