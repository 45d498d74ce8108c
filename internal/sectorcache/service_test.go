package sectorcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kartavantaj/kampanya/internal/model"
)

type stubStore struct {
	sectors []model.SectorDefinition
	err     error
	calls   int
}

func (s *stubStore) SectorsWithKeywords(ctx context.Context) ([]model.SectorDefinition, error) {
	s.calls++
	return s.sectors, s.err
}

func TestService_CachesAcrossCalls(t *testing.T) {
	store := &stubStore{sectors: []model.SectorDefinition{{Slug: "akaryakit", Name: "Akaryakıt"}}}
	svc := New(store, 5*time.Minute, 10*time.Minute, nil)

	ctx := context.Background()
	first := svc.Sectors(ctx)
	second := svc.Sectors(ctx)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Expected 1 sector, got %d and %d", len(first), len(second))
	}
	if store.calls != 1 {
		t.Errorf("Expected a single store call, got %d", store.calls)
	}
}

func TestService_InvalidateForcesRefresh(t *testing.T) {
	store := &stubStore{sectors: []model.SectorDefinition{{Slug: "akaryakit"}}}
	svc := New(store, 5*time.Minute, 10*time.Minute, nil)

	ctx := context.Background()
	svc.Sectors(ctx)
	svc.Invalidate()
	svc.Sectors(ctx)

	if store.calls != 2 {
		t.Errorf("Expected 2 store calls after invalidate, got %d", store.calls)
	}
}

func TestService_DegradesToBuiltinTaxonomy(t *testing.T) {
	store := &stubStore{err: fmt.Errorf("connection refused")}
	svc := New(store, 5*time.Minute, 10*time.Minute, nil)

	sectors := svc.Sectors(context.Background())
	if len(sectors) != len(model.DefaultSectors()) {
		t.Errorf("Expected built-in taxonomy on store failure, got %d sectors", len(sectors))
	}

	// A failed refresh must not be cached
	if st := svc.CacheStatus(); st.Cached {
		t.Error("Expected nothing cached after failed refresh")
	}
}

func TestService_NilStore(t *testing.T) {
	svc := New(nil, 5*time.Minute, 10*time.Minute, nil)

	sectors := svc.Sectors(context.Background())
	if len(sectors) != len(model.DefaultSectors()) {
		t.Errorf("Expected built-in taxonomy without a store, got %d sectors", len(sectors))
	}
}

func TestService_ConcurrentSectorsAndStatus(t *testing.T) {
	store := &syncStubStore{sectors: []model.SectorDefinition{{Slug: "akaryakit"}}}
	// TTL short enough that refreshes happen while readers are running
	svc := New(store, time.Millisecond, time.Minute, nil)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if sectors := svc.Sectors(ctx); len(sectors) == 0 {
					t.Error("Expected a non-empty taxonomy")
					return
				}
				svc.CacheStatus()
			}
		}()
	}
	wg.Wait()

	if st := svc.CacheStatus(); st.Cached && st.LoadedAt.IsZero() {
		t.Error("Expected LoadedAt set while cached")
	}
}

// syncStubStore is safe for concurrent SectorsWithKeywords calls.
type syncStubStore struct {
	mu      sync.Mutex
	sectors []model.SectorDefinition
}

func (s *syncStubStore) SectorsWithKeywords(ctx context.Context) ([]model.SectorDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sectors, nil
}

func TestService_CacheStatus(t *testing.T) {
	store := &stubStore{sectors: []model.SectorDefinition{{Slug: "a"}, {Slug: "b"}}}
	svc := New(store, 5*time.Minute, 10*time.Minute, nil)

	if st := svc.CacheStatus(); st.Cached {
		t.Error("Expected empty cache before first load")
	}

	svc.Sectors(context.Background())

	st := svc.CacheStatus()
	if !st.Cached || st.SectorCount != 2 {
		t.Errorf("Expected cached status with 2 sectors, got %+v", st)
	}
	if st.LoadedAt.IsZero() {
		t.Error("Expected LoadedAt to be set")
	}
}
