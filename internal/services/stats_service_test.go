package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/alimgiray/contribution-analyzer/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func newTestStatsService(source CommitSource, cache repositories.StatsCache, clock *testClock) *StatsService {
	service := NewStatsService(
		source,
		&SequentialDetailFetcher{},
		cache,
		NewClassifierService(),
		NewScoreService(nil),
		NewAggregationService(),
		5*time.Minute,
	)
	service.now = clock.Now
	return service
}

func TestGetContributorStats(t *testing.T) {
	query := models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: 30, MaxCommits: 50}

	t.Run("Scores and aggregates commits", func(t *testing.T) {
		clock := &testClock{current: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
		source := newFakeCommitSource(
			&models.RawCommit{SHA: "c1", Message: "fix: null pointer, closes #42", Author: models.CommitAuthor{Login: "alice", AvatarURL: "https://a/alice"}, ParentCount: 1},
			&models.RawCommit{SHA: "c2", Message: "Merge branch 'main'", Author: models.CommitAuthor{Login: "alice"}, ParentCount: 2},
			&models.RawCommit{SHA: "c3", Message: "wip", Author: models.CommitAuthor{Name: "Bob"}, ParentCount: 1},
		)
		source.details["c1"] = &models.CommitDetail{Additions: 10, Deletions: 5, Files: []string{"src/app.js"}}
		source.details["c3"] = &models.CommitDetail{Additions: 1, Files: []string{"docs/guide.html"}}
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		result, err := service.GetContributorStats(context.Background(), query)

		require.NoError(t, err)
		require.Len(t, result, 2)

		alice := result[0]
		assert.Equal(t, "alice", alice.Username)
		assert.Equal(t, "https://a/alice", alice.Avatar)
		assert.Equal(t, 1, alice.Commits)
		assert.Equal(t, 1, alice.Breakdown[models.ChangeTypeBugfix])
		assert.Equal(t, 16.7, alice.Score)

		bob := result[1]
		assert.Equal(t, "Bob", bob.Username)
		assert.Equal(t, 1, bob.Breakdown[models.ChangeTypeDocs])
		assert.Equal(t, 8.0, bob.Score) // 5 + sqrt(1)*2 + 1.0

		assert.NotContains(t, source.detailCalls, "c2", "merge commit details should not be fetched")
		require.Len(t, source.sinces, 1)
		assert.Equal(t, clock.current.Add(-30*24*time.Hour), source.sinces[0])
	})

	t.Run("Cached within TTL and recomputed after", func(t *testing.T) {
		clock := &testClock{current: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
		source := newFakeCommitSource(generateCommits(3, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)
		service.cacheTTL = 50 * time.Millisecond

		first, err := service.GetContributorStats(context.Background(), query)
		require.NoError(t, err)
		callsAfterFirst := source.totalCalls()

		second, err := service.GetContributorStats(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, callsAfterFirst, source.totalCalls(), "cache hit should not call upstream")

		firstJSON, _ := json.Marshal(first)
		secondJSON, _ := json.Marshal(second)
		assert.Equal(t, string(firstJSON), string(secondJSON))

		time.Sleep(100 * time.Millisecond)
		_, err = service.GetContributorStats(context.Background(), query)
		require.NoError(t, err)
		assert.Greater(t, source.totalCalls(), callsAfterFirst, "expired entry should trigger recomputation")
	})

	t.Run("Very large window stays in the past", func(t *testing.T) {
		clock := &testClock{current: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
		source := newFakeCommitSource(generateCommits(1, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		wide := query
		wide.SinceDays = 200000
		result, err := service.GetContributorStats(context.Background(), wide)

		require.NoError(t, err)
		require.Len(t, source.sinces, 1)
		assert.True(t, source.sinces[0].Before(clock.current), "cutoff %s should lie in the past", source.sinces[0])
		assert.Equal(t, clock.current.AddDate(0, 0, -200000), source.sinces[0])
		assert.Len(t, result, 1)
	})

	t.Run("Different parameters are cached separately", func(t *testing.T) {
		clock := &testClock{current: time.Now()}
		source := newFakeCommitSource(generateCommits(2, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		_, err := service.GetContributorStats(context.Background(), query)
		require.NoError(t, err)
		other := query
		other.MaxCommits = 10
		_, err = service.GetContributorStats(context.Background(), other)
		require.NoError(t, err)

		assert.Len(t, source.listCalls, 2)
	})

	t.Run("Empty window returns empty array", func(t *testing.T) {
		clock := &testClock{current: time.Now()}
		cache := repositories.NewMemoryStatsCache()
		service := newTestStatsService(newFakeCommitSource(), cache, clock)

		result, err := service.GetContributorStats(context.Background(), query)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.False(t, cache.Has(query))

		encoded, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(encoded))
	})

	t.Run("Only merge commits returns empty array", func(t *testing.T) {
		clock := &testClock{current: time.Now()}
		source := newFakeCommitSource(&models.RawCommit{SHA: "m1", ParentCount: 2})
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		result, err := service.GetContributorStats(context.Background(), query)

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.Empty(t, source.detailCalls)
	})

	t.Run("Upstream failure aborts without caching", func(t *testing.T) {
		clock := &testClock{current: time.Now()}
		source := newFakeCommitSource(generateCommits(3, "alice")...)
		source.detailErrs["alice-001"] = &models.UpstreamError{Kind: models.UpstreamRejected, StatusCode: 403, Message: "API rate limit exceeded"}
		cache := repositories.NewMemoryStatsCache()
		service := newTestStatsService(source, cache, clock)

		result, err := service.GetContributorStats(context.Background(), query)

		assert.Nil(t, result)
		var upstreamErr *models.UpstreamError
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, 403, upstreamErr.StatusCode)
		assert.False(t, cache.Has(query))
	})

	t.Run("List failure aborts", func(t *testing.T) {
		clock := &testClock{current: time.Now()}
		source := newFakeCommitSource()
		source.listErr = &models.UpstreamError{Kind: models.UpstreamUnavailable, Message: "no such host"}
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		_, err := service.GetContributorStats(context.Background(), query)

		var upstreamErr *models.UpstreamError
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, models.UpstreamUnavailable, upstreamErr.Kind)
	})

	t.Run("Invalid query", func(t *testing.T) {
		service := newTestStatsService(newFakeCommitSource(), repositories.NewMemoryStatsCache(), &testClock{current: time.Now()})

		_, err := service.GetContributorStats(context.Background(), models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: -1})

		var validationErr *models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "sinceDays", validationErr.Field)
	})
}

func TestCollectCommitsPagination(t *testing.T) {
	clock := &testClock{current: time.Now()}

	t.Run("Stops at maxCommits and truncates", func(t *testing.T) {
		source := newFakeCommitSource(generateCommits(350, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		commits, err := service.collectCommits(context.Background(), models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: 60, MaxCommits: 150})

		require.NoError(t, err)
		assert.Len(t, commits, 150)
		assert.Equal(t, []int{1, 2}, source.listCalls)
		assert.Equal(t, "alice-149", commits[149].SHA)
	})

	t.Run("Short page ends history", func(t *testing.T) {
		source := newFakeCommitSource(generateCommits(130, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		commits, err := service.collectCommits(context.Background(), models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: 60, MaxCommits: 500})

		require.NoError(t, err)
		assert.Len(t, commits, 130)
		assert.Equal(t, []int{1, 2}, source.listCalls)
	})

	t.Run("Empty page ends history", func(t *testing.T) {
		source := newFakeCommitSource(generateCommits(200, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		commits, err := service.collectCommits(context.Background(), models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: 60, MaxCommits: 500})

		require.NoError(t, err)
		assert.Len(t, commits, 200)
		assert.Equal(t, []int{1, 2, 3}, source.listCalls)
	})

	t.Run("Merge commits dropped after truncation", func(t *testing.T) {
		commits := generateCommits(5, "alice")
		commits[1].ParentCount = 2
		commits[4].ParentCount = 2
		source := newFakeCommitSource(commits...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		collected, err := service.collectCommits(context.Background(), models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: 60, MaxCommits: 4})

		require.NoError(t, err)
		require.Len(t, collected, 3)
		assert.Equal(t, "alice-000", collected[0].SHA)
		assert.Equal(t, "alice-002", collected[1].SHA)
		assert.Equal(t, "alice-003", collected[2].SHA)
	})

	t.Run("Zero maxCommits makes no requests", func(t *testing.T) {
		source := newFakeCommitSource(generateCommits(5, "alice")...)
		service := newTestStatsService(source, repositories.NewMemoryStatsCache(), clock)

		collected, err := service.collectCommits(context.Background(), models.StatsQuery{Owner: "foo", Repo: "bar", SinceDays: 60, MaxCommits: 0})

		require.NoError(t, err)
		assert.Empty(t, collected)
		assert.Empty(t, source.listCalls)
	})
}
