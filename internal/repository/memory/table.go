// Package memory is the mock fallback backend: records live in
// mutex-guarded slices for the lifetime of the process.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
)

// table keeps rows in insertion order; lookups are linear scans.
type table[T any] struct {
	mu      sync.RWMutex
	rows    []*T
	id      func(*T) uuid.UUID
	status  func(*T) string
	created func(*T) time.Time
	search  func(*T) []string
	clone   func(*T) *T
}

func (t *table[T]) insert(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, t.clone(row))
}

func (t *table[T]) get(id uuid.UUID) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if t.id(row) == id {
			return t.clone(row)
		}
	}
	return nil
}

// update applies fn to the stored row under the write lock.
func (t *table[T]) update(id uuid.UUID, fn func(*T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range t.rows {
		if t.id(row) == id {
			fn(row)
			return nil
		}
	}
	return model.ErrNotFound
}

func (t *table[T]) list(ctx context.Context, filter model.ListFilter) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter = filter.Normalize()

	t.mu.RLock()
	matched := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		if filter.Status != "" && t.status(row) != filter.Status {
			continue
		}
		if !filter.MatchesQuery(t.search(row)...) {
			continue
		}
		matched = append(matched, t.clone(row))
	}
	t.mu.RUnlock()

	// newest first, stable for equal timestamps
	sort.SliceStable(matched, func(i, j int) bool {
		return t.created(matched[i]).After(t.created(matched[j]))
	})

	if filter.Offset >= len(matched) {
		return []*T{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}

func (t *table[T]) counts() model.StatusCounts {
	t.mu.RLock()
	defer t.mu.RUnlock()
	counts := make(model.StatusCounts)
	for _, row := range t.rows {
		counts[t.status(row)]++
	}
	return counts
}
