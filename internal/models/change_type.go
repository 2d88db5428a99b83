package models

// ChangeType labels the nature of a commit
type ChangeType string

const (
	ChangeTypeBugfix   ChangeType = "bugfix"
	ChangeTypeFeature  ChangeType = "feature"
	ChangeTypeTest     ChangeType = "test"
	ChangeTypeRefactor ChangeType = "refactor"
	ChangeTypeDocs     ChangeType = "docs"
	ChangeTypeChore    ChangeType = "chore"
	ChangeTypeGeneral  ChangeType = "general"
)

// AllChangeTypes lists every change type from highest to lowest precedence
var AllChangeTypes = []ChangeType{
	ChangeTypeBugfix,
	ChangeTypeFeature,
	ChangeTypeTest,
	ChangeTypeRefactor,
	ChangeTypeDocs,
	ChangeTypeChore,
	ChangeTypeGeneral,
}

// Precedence returns the tie-breaking rank of the change type (bugfix=6 ... general=0),
// unknown values rank below general
func (t ChangeType) Precedence() int {
	switch t {
	case ChangeTypeBugfix:
		return 6
	case ChangeTypeFeature:
		return 5
	case ChangeTypeTest:
		return 4
	case ChangeTypeRefactor:
		return 3
	case ChangeTypeDocs:
		return 2
	case ChangeTypeChore:
		return 1
	case ChangeTypeGeneral:
		return 0
	default:
		return -1
	}
}

// IsValid checks if the change type is one of the known labels
func (t ChangeType) IsValid() bool {
	return t.Precedence() >= 0
}

// NewBreakdown returns a type counter with every change type set to zero
func NewBreakdown() map[ChangeType]int {
	breakdown := make(map[ChangeType]int, len(AllChangeTypes))
	for _, t := range AllChangeTypes {
		breakdown[t] = 0
	}
	return breakdown
}
