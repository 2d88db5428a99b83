package services

import (
	"math"
	"regexp"

	"github.com/alimgiray/contribution-analyzer/internal/models"
)

var issueReferencePattern = regexp.MustCompile(`(?i)#\d+|closes\s+#\d+|fixes\s+#\d+`)

// ScoreService converts a classified commit into points
type ScoreService struct {
	settings *models.ScoringConfig
}

// NewScoreService creates a score service, a nil config falls back to the defaults
func NewScoreService(settings *models.ScoringConfig) *ScoreService {
	if settings == nil {
		settings = models.NewScoringConfig()
	}
	return &ScoreService{
		settings: settings,
	}
}

// Score calculates the points awarded for a single commit
func (s *ScoreService) Score(additions, deletions int, changeType models.ChangeType, message string) float64 {
	score := s.settings.CommitWeight
	score += s.DampenedLOC(additions, deletions)
	score += s.settings.TypeBonus[changeType]
	if HasIssueReference(message) {
		score += s.settings.IssueRefBonus
	}
	return score
}

// DampenedLOC returns the size contribution: sqrt of the capped line count times the weight
func (s *ScoreService) DampenedLOC(additions, deletions int) float64 {
	loc := additions + deletions
	if loc < 0 {
		loc = 0
	}
	if loc > s.settings.LOCCap {
		loc = s.settings.LOCCap
	}
	return math.Sqrt(float64(loc)) * s.settings.LOCWeight
}

// HasIssueReference reports whether a commit message references an issue or PR number
func HasIssueReference(message string) bool {
	return issueReferencePattern.MatchString(message)
}
