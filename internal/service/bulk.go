package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// BulkFailure names one item of a bulk call that did not go through
type BulkFailure struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// BulkResult - bulk calls are not atomic, so the caller gets both sides
type BulkResult struct {
	Succeeded []uuid.UUID   `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func (r BulkResult) OK() bool {
	return len(r.Failed) == 0
}

// runEach calls fn once per id in its own goroutine and waits for all of them
func runEach(ids []uuid.UUID, fn func(id uuid.UUID) error) BulkResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result = BulkResult{Succeeded: []uuid.UUID{}, Failed: []BulkFailure{}}
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			err := fn(id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BulkFailure{ID: id, Error: err.Error()})
				return
			}
			result.Succeeded = append(result.Succeeded, id)
		}(id)
	}
	wg.Wait()

	// goroutines finish in any order
	sort.Slice(result.Succeeded, func(i, j int) bool {
		return result.Succeeded[i].String() < result.Succeeded[j].String()
	})
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].ID.String() < result.Failed[j].ID.String()
	})
	return result
}
