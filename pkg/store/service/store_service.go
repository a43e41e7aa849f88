package service

import "errors"

// ErrNotPersisted is returned together with a record whose change was
// applied in memory but could not be written to the backend.
var ErrNotPersisted = errors.New("change kept in memory but not persisted")

type LoadStatus int

const (
	Loaded LoadStatus = iota
	Missing
	Failed
)

func (s LoadStatus) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	}
	return "unknown"
}

func (s LoadStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// LoadResult tells a caller why it got its default back, if it did.
type LoadResult struct {
	Collection string     `json:"collection"`
	Status     LoadStatus `json:"status"`
	Err        error      `json:"-"`
}

func (r LoadResult) Failed() bool { return r.Status == Failed }

// Store reads and writes whole collections. Failures never panic or return
// errors to callers; they are logged and reported through the return value.
type Store interface {
	// Load decodes the collection into dst, which must be a pointer to a
	// slice. dst is left untouched unless the result is Loaded.
	Load(name string, dst any) LoadResult
	Save(name string, records any) bool
	Delete(name string) bool
	// Summary counts records per known collection; unreadable ones count 0.
	Summary() map[string]int
	// Backup returns the backup location; "" with true means nothing to copy.
	Backup() (string, bool)
	Ping() error
}
