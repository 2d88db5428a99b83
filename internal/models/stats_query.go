package models

import "strings"

// StatsQuery identifies one scoring computation; the cache keys results by all four fields
type StatsQuery struct {
	Owner      string
	Repo       string
	SinceDays  int
	MaxCommits int
}

// Validate validates the query parameters
func (q StatsQuery) Validate() error {
	if strings.TrimSpace(q.Owner) == "" {
		return &ValidationError{Field: "owner", Message: "owner is required"}
	}
	if strings.TrimSpace(q.Repo) == "" {
		return &ValidationError{Field: "repo", Message: "repo is required"}
	}
	if q.SinceDays < 0 {
		return &ValidationError{Field: "sinceDays", Message: "sinceDays cannot be negative"}
	}
	if q.MaxCommits < 0 {
		return &ValidationError{Field: "maxCommits", Message: "maxCommits cannot be negative"}
	}
	return nil
}
