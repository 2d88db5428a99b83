package models

import "math"

// ContributorStats is the per-author scoring summary rendered by the dashboard
type ContributorStats struct {
	Username  string             `json:"username"`
	Avatar    string             `json:"avatar"`
	Commits   int                `json:"commits"`
	Additions int                `json:"additions"`
	Deletions int                `json:"deletions"`
	Breakdown map[ChangeType]int `json:"breakdown"`
	Score     float64            `json:"score"`
}

// NewContributorStats creates an empty record with every change type counter present
func NewContributorStats(username, avatar string) *ContributorStats {
	return &ContributorStats{
		Username:  username,
		Avatar:    avatar,
		Breakdown: NewBreakdown(),
	}
}

// BreakdownTotal sums the per-type counters; it always equals Commits
func (cs *ContributorStats) BreakdownTotal() int {
	total := 0
	for _, count := range cs.Breakdown {
		total += count
	}
	return total
}

// ContributorSummary is the simplified view that only reports feature and bugfix counts
type ContributorSummary struct {
	Username  string  `json:"username"`
	Avatar    string  `json:"avatar"`
	Commits   int     `json:"commits"`
	Additions int     `json:"additions"`
	Deletions int     `json:"deletions"`
	Features  int     `json:"features"`
	Bugfixes  int     `json:"bugfixes"`
	Score     float64 `json:"score"`
}

// Summary projects the full record onto the simplified view
func (cs *ContributorStats) Summary() ContributorSummary {
	return ContributorSummary{
		Username:  cs.Username,
		Avatar:    cs.Avatar,
		Commits:   cs.Commits,
		Additions: cs.Additions,
		Deletions: cs.Deletions,
		Features:  cs.Breakdown[ChangeTypeFeature],
		Bugfixes:  cs.Breakdown[ChangeTypeBugfix],
		Score:     cs.Score,
	}
}

// RoundScore rounds a score to one decimal place, half away from zero
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
