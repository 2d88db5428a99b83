package services

import (
	"sort"

	"github.com/alimgiray/contribution-analyzer/internal/models"
)

// AggregationService folds scored commits into one record per author
type AggregationService struct{}

func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

type contributorAccumulator struct {
	stats *models.ContributorStats
	score float64
}

// Aggregate builds per-author records sorted by descending score. Merge commits
// are skipped. Scores accumulate unrounded and are rounded to one decimal at the end
func (s *AggregationService) Aggregate(commits []*models.ScoredCommit) []models.ContributorStats {
	byUser := make(map[string]*contributorAccumulator)
	var order []*contributorAccumulator

	for _, sc := range commits {
		if sc == nil || sc.Commit == nil || sc.Commit.IsMergeCommit() {
			continue
		}

		username := sc.Commit.AuthorIdentity()
		acc, exists := byUser[username]
		if !exists {
			acc = &contributorAccumulator{
				stats: models.NewContributorStats(username, sc.Commit.AuthorAvatar()),
			}
			byUser[username] = acc
			order = append(order, acc)
		}

		changeType := sc.Type
		if !changeType.IsValid() {
			changeType = models.ChangeTypeGeneral
		}

		acc.stats.Commits++
		acc.stats.Additions += sc.Commit.Additions()
		acc.stats.Deletions += sc.Commit.Deletions()
		acc.stats.Breakdown[changeType]++
		acc.score += sc.Score
	}

	// Sort on the unrounded totals; ties keep first-seen order
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].score > order[j].score
	})

	result := make([]models.ContributorStats, 0, len(order))
	for _, acc := range order {
		acc.stats.Score = models.RoundScore(acc.score)
		result = append(result, *acc.stats)
	}

	return result
}

// Summarize projects full records onto the simplified feature/bugfix view
func Summarize(stats []models.ContributorStats) []models.ContributorSummary {
	summaries := make([]models.ContributorSummary, 0, len(stats))
	for i := range stats {
		summaries = append(summaries, stats[i].Summary())
	}
	return summaries
}
