package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/zettelhaus/zettel/pkg/core"
)

// tempFilePrefix marks in-flight collection writes. The watcher skips
// events for files carrying it.
const tempFilePrefix = "zettel-tmp-"

// collection persists one record type as a single JSON array file. Records
// are held in memory under a lock; every mutation rewrites the file through
// an atomic temp-file rename, so a crash can never leave a half-written
// array behind.
type collection[T any] struct {
	path string
	id   func(T) string
	less func(a, b T) bool

	mu      sync.RWMutex
	records map[string]T
}

func newCollection[T any](path string, id func(T) string, less func(a, b T) bool) (*collection[T], error) {
	c := &collection[T]{
		path:    path,
		id:      id,
		less:    less,
		records: make(map[string]T),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// load replaces the in-memory map with the file contents. A missing file
// is an empty collection, not an error.
func (c *collection[T]) load() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string]T, len(items))
	for _, item := range items {
		c.records[c.id(item)] = item
	}
	return nil
}

// flush rewrites the collection file. Callers must hold at least the
// read lock. The array is staged in a temp file beside the target and
// moved into place with a rename; the temp file must share the target's
// directory so the rename never crosses filesystems.
func (c *collection[T]) flush() error {
	items := make([]T, 0, len(c.records))
	for _, item := range c.records {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return c.less(items[i], items[j]) })

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", c.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err != nil {
		return fmt.Errorf("stage %s: %w", c.path, err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

func (c *collection[T]) Save(_ context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[c.id(item)] = item
	return c.flush()
}

func (c *collection[T]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.records[id]
	if !ok {
		var zero T
		return zero, core.ErrNotFound
	}
	return item, nil
}

func (c *collection[T]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]T, 0, len(c.records))
	for _, item := range c.records {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return c.less(items[i], items[j]) })
	return items, nil
}

func (c *collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[id]; !ok {
		return core.ErrNotFound
	}
	delete(c.records, id)
	return c.flush()
}

// filter returns the records matching keep, in sorted order.
func (c *collection[T]) filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var items []T
	for _, item := range c.records {
		if keep(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return c.less(items[i], items[j]) })
	return items
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
