package docstore

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Memory is a Backend that keeps documents in process memory.
// Changes are only those made through the same Memory value.
type Memory struct {
	docs   map[string]map[string][]byte
	subs   map[chan struct{}]struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]map[string][]byte),
		subs: make(map[chan struct{}]struct{}),
	}
}

// Initialize is a no-op.
func (m *Memory) Initialize(_ context.Context) error {
	return nil
}

// Get returns a copy of one document.
func (m *Memory) Get(_ context.Context, collection, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(doc), nil
}

// List returns copies of every document in the collection, ordered by ID.
func (m *Memory) List(_ context.Context, collection string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.docs[collection]
	out := make([][]byte, 0, len(coll))
	for _, id := range slices.Sorted(maps.Keys(coll)) {
		out = append(out, slices.Clone(coll[id]))
	}
	return out, nil
}

// Put stores a copy of the document and signals subscribers.
func (m *Memory) Put(_ context.Context, collection, id string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string][]byte)
	}
	m.docs[collection][id] = slices.Clone(doc)
	m.notifyLocked()
	return nil
}

// Delete removes a document and signals subscribers if it existed.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return nil
	}
	delete(m.docs[collection], id)
	m.notifyLocked()
	return nil
}

// Changes registers a subscriber until ctx is done.
func (m *Memory) Changes(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	m.mu.Lock()
	if m.closed {
		close(ch)
		m.mu.Unlock()
		return ch, nil
	}
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
	}()
	return ch, nil
}

// Close closes every subscriber channel.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for ch := range m.subs {
		delete(m.subs, ch)
		close(ch)
	}
	return nil
}

func (m *Memory) notifyLocked() {
	for ch := range m.subs {
		Signal(ch)
	}
}

// Ensure Memory implements Backend.
var _ Backend = (*Memory)(nil)
