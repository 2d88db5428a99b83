package repositories

import (
	"fmt"
	"time"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/patrickmn/go-cache"
)

// StatsCache stores finished scoring results keyed by the query that produced them
type StatsCache interface {
	Get(key models.StatsQuery) ([]models.ContributorStats, bool)
	Set(key models.StatsQuery, value []models.ContributorStats, ttl time.Duration)
	Has(key models.StatsQuery) bool
}

// MemoryStatsCache is an in-process StatsCache backed by go-cache. Expiry is
// checked on read and no janitor goroutine is started
type MemoryStatsCache struct {
	memCache *cache.Cache
}

func NewMemoryStatsCache() *MemoryStatsCache {
	return &MemoryStatsCache{
		memCache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns the cached result if present and not expired
func (r *MemoryStatsCache) Get(key models.StatsQuery) ([]models.ContributorStats, bool) {
	value, found := r.memCache.Get(cacheKey(key))
	if !found {
		return nil, false
	}

	stats, ok := value.([]models.ContributorStats)
	if !ok {
		return nil, false
	}

	return cloneStats(stats), true
}

// Set stores a result under the key for the given time-to-live, a non-positive
// ttl is ignored
func (r *MemoryStatsCache) Set(key models.StatsQuery, value []models.ContributorStats, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	r.memCache.Set(cacheKey(key), cloneStats(value), ttl)
}

// Has checks if a live entry exists for the key
func (r *MemoryStatsCache) Has(key models.StatsQuery) bool {
	_, found := r.memCache.Get(cacheKey(key))
	return found
}

// cacheKey flattens the query tuple; owner and repo are quoted so no two queries collide
func cacheKey(q models.StatsQuery) string {
	return fmt.Sprintf("%q|%q|%d|%d", q.Owner, q.Repo, q.SinceDays, q.MaxCommits)
}

// cloneStats copies the slice and breakdown maps so callers cannot mutate a stored entry
func cloneStats(stats []models.ContributorStats) []models.ContributorStats {
	if stats == nil {
		return nil
	}
	cloned := make([]models.ContributorStats, len(stats))
	for i, s := range stats {
		breakdown := make(map[models.ChangeType]int, len(s.Breakdown))
		for t, count := range s.Breakdown {
			breakdown[t] = count
		}
		s.Breakdown = breakdown
		cloned[i] = s
	}
	return cloned
}
