package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shashiranjanraj/tavola/pkg/store"
)

type doc struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestMemory_CreateAndGet(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	in := doc{ID: store.NewID(), Name: "fries", Count: 3, Tags: []string{"hot"}}
	if err := m.Create(ctx, "docs", in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var out doc
	if err := m.Get(ctx, "docs", in.ID, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.Name != "fries" || out.Count != 3 || len(out.Tags) != 1 {
		t.Errorf("round-trip mismatch: %+v", out)
	}
}

func TestMemory_CreateWithoutID(t *testing.T) {
	m := store.NewMemory()

	err := m.Create(context.Background(), "docs", doc{Name: "no id"})
	if err == nil {
		t.Error("expected create without _id to fail")
	}
}

func TestMemory_GetMissing(t *testing.T) {
	m := store.NewMemory()

	var out doc
	err := m.Get(context.Background(), "docs", "nope", &out)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_FindFilter(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	for _, d := range []doc{
		{ID: store.NewID(), Name: "fries", Count: 1},
		{ID: store.NewID(), Name: "fries", Count: 2},
		{ID: store.NewID(), Name: "salad", Count: 1},
	} {
		if err := m.Create(ctx, "docs", d); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	var out []doc
	if err := m.Find(ctx, "docs", store.Filter{"name": "fries"}, &out); err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 matches, got %d", len(out))
	}

	// Numeric filter values must compare equal despite JSON normalisation.
	out = nil
	if err := m.Find(ctx, "docs", store.Filter{"count": 1}, &out); err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 matches on count, got %d", len(out))
	}
}

func TestMemory_FindEmptyResult(t *testing.T) {
	m := store.NewMemory()

	var out []doc
	if err := m.Find(context.Background(), "docs", nil, &out); err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", out)
	}
}

func TestMemory_Patch(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	in := doc{ID: store.NewID(), Name: "fries", Count: 1}
	if err := m.Create(ctx, "docs", in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := m.Patch(ctx, "docs", in.ID, store.Filter{"count": 9}); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	var out doc
	if err := m.Get(ctx, "docs", in.ID, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.Count != 9 || out.Name != "fries" {
		t.Errorf("patch result mismatch: %+v", out)
	}

	if err := m.Patch(ctx, "docs", "nope", store.Filter{"count": 1}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestMemory_Remove(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	in := doc{ID: store.NewID(), Name: "fries"}
	if err := m.Create(ctx, "docs", in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := m.Remove(ctx, "docs", in.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	var out doc
	if err := m.Get(ctx, "docs", in.ID, &out); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}

	if err := m.Remove(ctx, "docs", in.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for double remove, got %v", err)
	}
}

func TestMemory_ReadsReturnCopies(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	in := doc{ID: store.NewID(), Name: "fries", Tags: []string{"hot"}}
	if err := m.Create(ctx, "docs", in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var first doc
	if err := m.Get(ctx, "docs", in.ID, &first); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	first.Tags[0] = "mutated"

	var second doc
	if err := m.Get(ctx, "docs", in.ID, &second); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if second.Tags[0] != "hot" {
		t.Error("mutating a read result leaked into the store")
	}
}

func TestMemory_ConcurrentReadsAndPatches(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	in := doc{ID: store.NewID(), Name: "fries", Count: 0}
	if err := m.Create(ctx, "docs", in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Readers serialise documents after releasing the lock, so overlapping
	// them with updates must stay race-free (run with -race).
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := m.Patch(ctx, "docs", in.ID, store.Filter{"count": i}); err != nil {
				t.Errorf("patch failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			var out doc
			if err := m.Get(ctx, "docs", in.ID, &out); err != nil {
				t.Errorf("get failed: %v", err)
			}
			var list []doc
			if err := m.Find(ctx, "docs", store.Filter{"name": "fries"}, &list); err != nil {
				t.Errorf("find failed: %v", err)
			}
		}()
	}
	wg.Wait()

	var out doc
	if err := m.Get(ctx, "docs", in.ID, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.Name != "fries" {
		t.Errorf("untouched field lost after concurrent patches: %+v", out)
	}
}

func TestMemory_ContextCancelled(t *testing.T) {
	m := store.NewMemory()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out []doc
	if err := m.Find(ctx, "docs", nil, &out); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
