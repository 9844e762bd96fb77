package listview

import (
	"context"

	apperrors "marketplace-admin/internal/common/errors"
)

// Delete runs the confirmed destructive flow for one row: mark the row
// in flight, call the API, and on success remove exactly the id-matched
// entry without disturbing the rest. A failed call leaves the collection
// untouched and parks the error on the row. confirmed must already have
// been collected from the operator; an unconfirmed delete never fires.
func (l *List[T]) Delete(ctx context.Context, id string, confirmed bool, call func(ctx context.Context) error) error {
	if !confirmed {
		return apperrors.NewValidationError("delete requires confirmation")
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	if l.rows[id].state == RowInFlight {
		l.mu.Unlock()
		return apperrors.NewValidationError("row action already in flight")
	}
	if !l.containsLocked(id) {
		l.mu.Unlock()
		return apperrors.NewValidationError("no such row: " + id)
	}
	l.rows[id] = rowStatus{state: RowInFlight}
	l.mu.Unlock()

	err := call(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	if err != nil {
		l.rows[id] = rowStatus{state: RowFailed, msg: apperrors.UserMessage(err)}
		return err
	}
	l.removeLocked(id)
	delete(l.rows, id)
	return nil
}

// Mutate runs a non-destructive row mutation (approve, save) with the
// same per-row busy contract as Delete. On success apply patches the
// row in place instead of removing it.
func (l *List[T]) Mutate(ctx context.Context, id string, call func(ctx context.Context) error, apply func(item *T)) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	if l.rows[id].state == RowInFlight {
		l.mu.Unlock()
		return apperrors.NewValidationError("row action already in flight")
	}
	if !l.containsLocked(id) {
		l.mu.Unlock()
		return apperrors.NewValidationError("no such row: " + id)
	}
	l.rows[id] = rowStatus{state: RowInFlight}
	l.mu.Unlock()

	err := call(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	if err != nil {
		l.rows[id] = rowStatus{state: RowFailed, msg: apperrors.UserMessage(err)}
		return err
	}
	if apply != nil {
		for i := range l.source {
			if l.identity(l.source[i]) == id {
				apply(&l.source[i])
				break
			}
		}
	}
	l.rows[id] = rowStatus{state: RowIdle}
	return nil
}

// Patch applies an optimistic in-place update to the id-matched row.
func (l *List[T]) Patch(id string, mutate func(item *T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.source {
		if l.identity(l.source[i]) == id {
			mutate(&l.source[i])
			return true
		}
	}
	return false
}

// Append adds a freshly created item at the end of the source.
func (l *List[T]) Append(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.source = append(l.source, item)
}

func (l *List[T]) containsLocked(id string) bool {
	for i := range l.source {
		if l.identity(l.source[i]) == id {
			return true
		}
	}
	return false
}

func (l *List[T]) removeLocked(id string) bool {
	for i := range l.source {
		if l.identity(l.source[i]) == id {
			l.source = append(l.source[:i], l.source[i+1:]...)
			return true
		}
	}
	return false
}
