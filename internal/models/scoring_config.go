package models

import "fmt"

// ScoringConfig holds the weights used to turn a commit into points
type ScoringConfig struct {
	CommitWeight  float64                `json:"commit_weight"`
	LOCCap        int                    `json:"loc_cap"`
	LOCWeight     float64                `json:"loc_weight"`
	IssueRefBonus float64                `json:"issue_ref_bonus"`
	TypeBonus     map[ChangeType]float64 `json:"type_bonus"`
}

// NewScoringConfig creates a ScoringConfig with the default weights
func NewScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		CommitWeight:  5,
		LOCCap:        800,
		LOCWeight:     2.0,
		IssueRefBonus: 1.0,
		TypeBonus: map[ChangeType]float64{
			ChangeTypeBugfix:   3.0,
			ChangeTypeFeature:  4.0,
			ChangeTypeTest:     2.0,
			ChangeTypeRefactor: 1.5,
			ChangeTypeDocs:     1.0,
			ChangeTypeChore:    0.5,
			ChangeTypeGeneral:  0.0,
		},
	}
}

// Validate ensures no weight could produce a negative score
func (sc *ScoringConfig) Validate() error {
	if sc.CommitWeight < 0 || sc.LOCWeight < 0 || sc.IssueRefBonus < 0 {
		return &ValidationError{Message: "score weights must be non-negative"}
	}
	if sc.LOCCap < 0 {
		return &ValidationError{Field: "loc_cap", Message: "LOC cap must be non-negative"}
	}
	for t, bonus := range sc.TypeBonus {
		if !t.IsValid() {
			return &ValidationError{Field: "type_bonus", Message: fmt.Sprintf("unknown change type %q", t)}
		}
		if bonus < 0 {
			return &ValidationError{Field: "type_bonus", Message: fmt.Sprintf("bonus for %s must be non-negative", t)}
		}
	}
	return nil
}
