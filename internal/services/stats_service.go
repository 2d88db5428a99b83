package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/alimgiray/contribution-analyzer/internal/repositories"
	"github.com/alimgiray/contribution-analyzer/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DefaultStatsCacheTTL is how long a computed result is served from the cache
const DefaultStatsCacheTTL = 5 * time.Minute

// StatsService fetches commits, scores them and caches the per-contributor result
type StatsService struct {
	source             CommitSource
	detailFetcher      DetailFetcher
	cache              repositories.StatsCache
	classifierService  *ClassifierService
	scoreService       *ScoreService
	aggregationService *AggregationService
	cacheTTL           time.Duration
	now                func() time.Time
}

func NewStatsService(
	source CommitSource,
	detailFetcher DetailFetcher,
	cache repositories.StatsCache,
	classifierService *ClassifierService,
	scoreService *ScoreService,
	aggregationService *AggregationService,
	cacheTTL time.Duration,
) *StatsService {
	if detailFetcher == nil {
		detailFetcher = &SequentialDetailFetcher{}
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultStatsCacheTTL
	}

	return &StatsService{
		source:             source,
		detailFetcher:      detailFetcher,
		cache:              cache,
		classifierService:  classifierService,
		scoreService:       scoreService,
		aggregationService: aggregationService,
		cacheTTL:           cacheTTL,
		now:                time.Now,
	}
}

// GetContributorStats returns the scored contributors for the query, from the
// cache when a live entry exists. Upstream failures abort without caching
func (s *StatsService) GetContributorStats(ctx context.Context, query models.StatsQuery) ([]models.ContributorStats, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	log := logger.WithFields(logrus.Fields{
		"owner":       query.Owner,
		"repo":        query.Repo,
		"since_days":  query.SinceDays,
		"max_commits": query.MaxCommits,
	})

	if cached, found := s.cache.Get(query); found {
		log.Debug("Returning cached contributor stats")
		return cached, nil
	}

	start := s.now()

	commits, err := s.collectCommits(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(commits) == 0 {
		log.Info("No commits in window")
		return []models.ContributorStats{}, nil
	}

	if err := s.detailFetcher.FetchDetails(ctx, s.source, query.Owner, query.Repo, commits); err != nil {
		return nil, err
	}

	scored := s.ScoreCommits(commits)
	result := s.aggregationService.Aggregate(scored)

	s.cache.Set(query, result, s.cacheTTL)

	log.WithFields(logrus.Fields{
		"commits":      len(commits),
		"contributors": len(result),
		"duration":     s.now().Sub(start).String(),
	}).Info("Computed contributor stats")

	return result, nil
}

// ScoreCommits classifies and scores commits whose details have been fetched
func (s *StatsService) ScoreCommits(commits []*models.RawCommit) []*models.ScoredCommit {
	scored := make([]*models.ScoredCommit, 0, len(commits))
	for _, commit := range commits {
		changeType := s.classifierService.Classify(commit.Message, commit.Files())
		scored = append(scored, &models.ScoredCommit{
			Commit: commit,
			Type:   changeType,
			Score:  s.scoreService.Score(commit.Additions(), commit.Deletions(), changeType, commit.Message),
		})
	}
	return scored
}

// collectCommits pages through the commit list until maxCommits is reached or history
// ends, then truncates and drops merge commits
func (s *StatsService) collectCommits(ctx context.Context, query models.StatsQuery) ([]*models.RawCommit, error) {
	since := s.now().AddDate(0, 0, -query.SinceDays)

	var commits []*models.RawCommit
	for page := 1; len(commits) < query.MaxCommits; page++ {
		batch, err := s.source.ListCommits(ctx, query.Owner, query.Repo, since, page, CommitPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for %s/%s: %w", query.Owner, query.Repo, err)
		}
		commits = append(commits, batch...)

		// A short page means there is no more history
		if len(batch) < CommitPageSize {
			break
		}
	}

	if len(commits) > query.MaxCommits {
		commits = commits[:query.MaxCommits]
	}

	filtered := make([]*models.RawCommit, 0, len(commits))
	for _, commit := range commits {
		if !commit.IsMergeCommit() {
			filtered = append(filtered, commit)
		}
	}

	return filtered, nil
}
