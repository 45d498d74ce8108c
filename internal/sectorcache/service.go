package sectorcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kartavantaj/kampanya/internal/model"
)

const sectorsKey = "sectors"

// Store supplies the sector taxonomy from its backing source, typically a
// collaborator-managed sheet or database.
type Store interface {
	SectorsWithKeywords(ctx context.Context) ([]model.SectorDefinition, error)
}

// Status describes the cache state for diagnostics.
type Status struct {
	Cached      bool      `json:"cached"`
	SectorCount int       `json:"sector_count"`
	LoadedAt    time.Time `json:"loaded_at,omitempty"`
}

// Service caches the sector taxonomy in memory so repeated extractions do
// not hammer the backing store. A failed refresh degrades to the built-in
// taxonomy instead of failing the extraction.
type Service struct {
	store  Store
	cache  *gocache.Cache
	logger *slog.Logger

	mu       sync.Mutex // guards loadedAt; the cache itself is safe
	loadedAt time.Time
}

// New creates a sector cache over store with the given TTL.
func New(store Store, ttl, cleanupInterval time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		cache:  gocache.New(ttl, cleanupInterval),
		logger: logger,
	}
}

// Sectors returns the taxonomy, from cache when fresh. It never returns
// an error: when the store is unreachable and nothing is cached, the
// built-in taxonomy is used.
func (s *Service) Sectors(ctx context.Context) []model.SectorDefinition {
	if val, found := s.cache.Get(sectorsKey); found {
		return val.([]model.SectorDefinition)
	}

	if s.store != nil {
		sectors, err := s.store.SectorsWithKeywords(ctx)
		if err == nil && len(sectors) > 0 {
			s.cache.SetDefault(sectorsKey, sectors)
			s.mu.Lock()
			s.loadedAt = time.Now()
			s.mu.Unlock()
			s.logger.Debug("sector taxonomy refreshed", "sectors", len(sectors))
			return sectors
		}
		if err != nil {
			s.logger.Warn("sector store unavailable, using built-in taxonomy", "error", err)
		}
	}
	return model.DefaultSectors()
}

// Invalidate drops the cached taxonomy so the next Sectors call refreshes.
func (s *Service) Invalidate() {
	s.cache.Delete(sectorsKey)
	s.logger.Debug("sector cache invalidated")
}

// CacheStatus reports whether a taxonomy is cached and when it was loaded.
func (s *Service) CacheStatus() Status {
	val, found := s.cache.Get(sectorsKey)
	st := Status{Cached: found}
	if found {
		st.SectorCount = len(val.([]model.SectorDefinition))
		s.mu.Lock()
		st.LoadedAt = s.loadedAt
		s.mu.Unlock()
	}
	return st
}
