// Package listview is the one list abstraction every screen shares:
// a fetched source collection, a conjunction of categorical filters, a
// free-text search, and mutation flows that reconcile the collection
// in place. Filtering derives a view; it never reorders and never
// mutates the source.
package listview

import (
	"context"
	"strings"
	"sync"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/common/metrics"
)

// RowState tracks the lifecycle of a mutation on one row. Exactly the
// acted-on row is busy; every other row stays interactive.
type RowState int

const (
	RowIdle RowState = iota
	RowInFlight
	RowFailed
)

type rowStatus struct {
	state RowState
	msg   string
}

// filter is one categorical selector. Selecting the sentinel value
// disables the predicate entirely.
type filter[T any] struct {
	name     string
	sentinel string
	value    string
	match    func(item T, value string) bool
}

// List holds one page's copy of a fetched collection plus its filter
// state. Pages never share a List; cross-page consistency is not a goal.
type List[T any] struct {
	mu           sync.Mutex
	name         string
	identity     func(T) string
	searchFields func(T) []string

	source  []T
	loading bool
	errMsg  string
	search  string
	filters []*filter[T]
	rows    map[string]rowStatus

	generation uint64
	closed     bool

	logger logger.Logger
}

// New creates a list for a page. identity extracts the row key used by
// mutations; searchFields lists the values free-text search scans.
func New[T any](name string, identity func(T) string, searchFields func(T) []string, log logger.Logger) *List[T] {
	return &List[T]{
		name:         name,
		identity:     identity,
		searchFields: searchFields,
		rows:         make(map[string]rowStatus),
		logger:       log.WithFields(map[string]interface{}{"page": name}),
	}
}

// AddFilter registers a categorical filter. Filters apply in
// registration order; the initial value is the sentinel (inactive).
func (l *List[T]) AddFilter(name, sentinel string, match func(item T, value string) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filters = append(l.filters, &filter[T]{
		name:     name,
		sentinel: sentinel,
		value:    sentinel,
		match:    match,
	})
}

// SetFilter selects a value for a named filter. Setting the sentinel
// value is equivalent to removing the filter.
func (l *List[T]) SetFilter(name, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.filters {
		if f.name == name {
			f.value = value
			return
		}
	}
}

// FilterValue returns the current value of a named filter.
func (l *List[T]) FilterValue(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.filters {
		if f.name == name {
			return f.value
		}
	}
	return ""
}

// SetSearch sets the free-text search term.
func (l *List[T]) SetSearch(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.search = term
}

// Load fetches a fresh source collection. A completion that lost to a
// newer Load, or that lands after Close, is discarded: last write wins
// and a torn-down page never sees an update. On failure the previous
// collection stays as it was and the error becomes the page message.
func (l *List[T]) Load(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.generation++
	gen := l.generation
	l.loading = true
	l.errMsg = ""
	l.mu.Unlock()

	metrics.PageFetchesActive.WithLabelValues(l.name).Inc()
	items, err := fetch(ctx)
	metrics.PageFetchesActive.WithLabelValues(l.name).Dec()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.generation {
		l.logger.Debug("stale fetch discarded", map[string]interface{}{"generation": gen})
		return nil
	}
	l.loading = false
	if err != nil {
		l.errMsg = apperrors.UserMessage(err)
		return err
	}
	l.source = items
	l.rows = make(map[string]rowStatus)
	return nil
}

// Visible derives the filtered view: every categorical filter ANDed in
// registration order, then the search term ORed across searchFields.
// Relative order of the source is preserved.
func (l *List[T]) Visible() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, 0, len(l.source))
	term := strings.ToLower(strings.TrimSpace(l.search))

	for _, item := range l.source {
		if !l.matchesLocked(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *List[T]) matchesLocked(item T, term string) bool {
	for _, f := range l.filters {
		if f.value == f.sentinel {
			continue
		}
		if !f.match(item, f.value) {
			return false
		}
	}

	if term == "" {
		return true
	}
	for _, field := range l.searchFields(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Source returns a copy of the last fetched collection.
func (l *List[T]) Source() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.source))
	copy(out, l.source)
	return out
}

// Len reports the size of the source collection.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.source)
}

// Loading reports whether a fetch is outstanding.
func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Error returns the page-scoped message from the last failed fetch.
func (l *List[T]) Error() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// RowStateOf returns the mutation state for one row.
func (l *List[T]) RowStateOf(id string) RowState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows[id].state
}

// RowError returns the row-scoped message from a failed mutation.
func (l *List[T]) RowError(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows[id].msg
}

// Close tears the page down. Later fetch completions are ignored.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}
