// Package docstore keeps tasks, programs and editors as JSON documents in named collections
// and turns a backend's change feed into complete snapshots.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Backend.Get when no document has the given ID.
var ErrNotFound = errors.New("document not found")

// Backend persists raw JSON documents grouped by collection.
// Every write must be visible to List and Get as soon as it returns.
type Backend interface {
	// Initialize creates the underlying schema or file if it doesn't exist.
	Initialize(ctx context.Context) error

	// Get returns one document. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) ([]byte, error)

	// List returns every document in the collection, in no particular order.
	List(ctx context.Context, collection string) ([][]byte, error)

	// Put creates or replaces a document.
	Put(ctx context.Context, collection, id string, doc []byte) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Changes returns a channel that receives a signal after any collection changes,
	// including changes made by other processes. Signals may be coalesced.
	// The channel is closed when ctx is done or the feed fails.
	Changes(ctx context.Context) (<-chan struct{}, error)

	// Close releases connections and watchers.
	Close() error
}

// Signal performs a non-blocking send on a change channel with a buffer of one,
// so a burst of writes collapses into a single pending reload.
func Signal(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
