package model

// ProficiencyLevel is a CEFR tier derived from accumulated XP.
type ProficiencyLevel string

const (
	LevelA1 ProficiencyLevel = "A1"
	LevelA2 ProficiencyLevel = "A2"
	LevelB1 ProficiencyLevel = "B1"
	LevelB2 ProficiencyLevel = "B2"
	LevelC1 ProficiencyLevel = "C1"
	LevelC2 ProficiencyLevel = "C2"
)

// Levels lists the tiers in ascending order.
var Levels = []ProficiencyLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// XPPerLevel is the XP span of each tier.
const XPPerLevel = 1000

// LevelForXP maps XP to its proficiency tier. The tier is always recomputed
// from XP on every write path; it must never be stored independently.
func LevelForXP(xp int) ProficiencyLevel {
	if xp < 0 {
		xp = 0
	}
	idx := xp / XPPerLevel
	if idx >= len(Levels) {
		idx = len(Levels) - 1
	}
	return Levels[idx]
}
