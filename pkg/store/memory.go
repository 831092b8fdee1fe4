package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// Memory is an in-process Store driver. Documents are normalised through
// JSON so reads always return copies and filter values compare the same way
// they would against the Mongo driver.
//
// Stored document maps are immutable once inserted: Patch swaps in a fresh
// map rather than writing fields in place. Get and Find may therefore
// serialise a matched document after releasing the lock without racing a
// concurrent update.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]interface{} // collection → id → document
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]map[string]interface{})}
}

func (m *Memory) Find(ctx context.Context, collection string, filter Filter, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	match, err := normalizeFilter(filter)
	if err != nil {
		return err
	}

	m.mu.RLock()
	var docs []map[string]interface{}
	for _, doc := range m.data[collection] {
		if matches(doc, match) {
			docs = append(docs, doc)
		}
	}
	m.mu.RUnlock()

	if docs == nil {
		docs = []map[string]interface{}{}
	}
	return decodeInto(docs, out)
}

func (m *Memory) Get(ctx context.Context, collection, id string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	doc, ok := m.data[collection][id]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return decodeInto(doc, out)
}

func (m *Memory) Create(ctx context.Context, collection string, doc interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := normalizeDoc(doc)
	if err != nil {
		return err
	}

	id, _ := normalized["_id"].(string)
	if id == "" {
		return fmt.Errorf("store: create %s: document has no _id", collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]map[string]interface{})
	}
	m.data[collection][id] = normalized
	return nil
}

func (m *Memory) Patch(ctx context.Context, collection, id string, changes Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := normalizeFilter(changes)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return ErrNotFound
	}

	// Replace the whole document so readers holding the old map never see
	// a partial update (and never race this write).
	next := make(map[string]interface{}, len(doc)+len(normalized))
	for k, v := range doc {
		next[k] = v
	}
	for k, v := range normalized {
		next[k] = v
	}
	m.data[collection][id] = next
	return nil
}

func (m *Memory) Remove(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.data[collection], id)
	return nil
}

// matches reports field-equality of filter against doc.
func matches(doc map[string]interface{}, filter map[string]interface{}) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

// normalizeDoc round-trips doc through JSON so stored values have the same
// dynamic types (float64, string, bool, []interface{}) as decoded filters.
func normalizeDoc(doc interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("store: marshal document: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("store: normalize document: %w", err)
	}
	return out, nil
}

func normalizeFilter(filter Filter) (map[string]interface{}, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	return normalizeDoc(map[string]interface{}(filter))
}

func decodeInto(src, out interface{}) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("store: marshal result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: decode result: %w", err)
	}
	return nil
}
