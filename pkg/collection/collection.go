// Package collection keeps one in-memory record list in step with the store.
package collection

import (
	"fmt"
	"time"

	"farm/entities"
	"farm/pkg/store/service"
	"farm/pkg/validation"
)

// Collection is the in-memory copy of one stored collection. Every mutation
// writes the whole list back. It is not safe for concurrent use; callers
// serialize access (see session.State).
type Collection[T entities.Record] struct {
	name  string
	store service.Store
	now   func() time.Time
	items []T
	load  service.LoadResult
	// highest id ever seen, so ids stay unique after deletes
	maxID int
}

// Open loads name from st. A missing or unreadable collection starts empty;
// the outcome is kept in LoadResult.
func Open[T entities.Record](name string, st service.Store, now func() time.Time) *Collection[T] {
	c := &Collection[T]{name: name, store: st, now: now, items: []T{}}
	c.load = st.Load(name, &c.items)
	if c.items == nil {
		c.items = []T{}
	}
	for _, it := range c.items {
		c.maxID = max(c.maxID, it.RecordID())
	}
	return c
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) LoadResult() service.LoadResult { return c.load }

func (c *Collection[T]) Len() int { return len(c.items) }

// List returns a copy in insertion order.
func (c *Collection[T]) List() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Get(id int) (T, error) {
	for _, it := range c.items {
		if it.RecordID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, c.notFound(id)
}

// NextID is one more than the largest id the collection has held.
func (c *Collection[T]) NextID() int { return c.maxID + 1 }

// Stamp is the creation timestamp for a record created now.
func (c *Collection[T]) Stamp() string { return c.now().Format(entities.TimestampLayout) }

// Today is the current date in entities.DateLayout.
func (c *Collection[T]) Today() string { return c.now().Format(entities.DateLayout) }

// Insert appends rec and persists. On a failed write rec stays in memory and
// the error wraps service.ErrNotPersisted.
func (c *Collection[T]) Insert(rec T) (T, error) {
	c.items = append(c.items, rec)
	c.maxID = max(c.maxID, rec.RecordID())
	return rec, c.persist()
}

// Update applies fn to a copy of the record with id and stores the result.
// If fn fails nothing changes.
func (c *Collection[T]) Update(id int, fn func(*T) error) (T, error) {
	var zero T
	for i := range c.items {
		if c.items[i].RecordID() != id {
			continue
		}
		next := c.items[i]
		if err := fn(&next); err != nil {
			return zero, err
		}
		c.items[i] = next
		return next, c.persist()
	}
	return zero, c.notFound(id)
}

// RemoveWhere drops every record match accepts and returns how many went.
// Nothing is written when nothing matched.
func (c *Collection[T]) RemoveWhere(match func(T) bool) (int, error) {
	kept := c.items[:0:0]
	for _, it := range c.items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	n := len(c.items) - len(kept)
	if n == 0 {
		return 0, nil
	}
	c.items = kept
	return n, c.persist()
}

func (c *Collection[T]) persist() error {
	if !c.store.Save(c.name, c.items) {
		return fmt.Errorf("%s: %w", c.name, service.ErrNotPersisted)
	}
	return nil
}

func (c *Collection[T]) notFound(id int) error {
	return fmt.Errorf("%s id %d: %w", c.name, id, validation.ErrNotFound)
}
