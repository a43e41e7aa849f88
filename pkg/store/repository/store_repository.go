package repository

import "errors"

// ErrNotExist reports that a collection has never been written.
var ErrNotExist = errors.New("collection does not exist")

// Backend persists one opaque document per collection name.
type Backend interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	// Remove is idempotent: removing an absent collection is not an error.
	Remove(name string) error
	// Backup copies every collection and returns where the copy went.
	// An empty location with a nil error means there was nothing to copy.
	Backup(stamp string) (string, error)
	Ping() error
}
