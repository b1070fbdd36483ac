package model

type ActivityType string

const (
	ActivityQuiz    ActivityType = "quiz"
	ActivityVoice   ActivityType = "voice"
	ActivityCulture ActivityType = "culture"
	ActivityVocab   ActivityType = "vocab"
)

// ValidActivityType reports whether t is one of the four learning activities.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityQuiz, ActivityVoice, ActivityCulture, ActivityVocab:
		return true
	}
	return false
}

// ActivityLogCap bounds the per-user activity log. Writes beyond the cap evict
// the oldest entries.
const ActivityLogCap = 50

// ActivityLog is an immutable ledger entry: inserted on every saved activity,
// never mutated afterwards.
// swagger:model ActivityLog
type ActivityLog struct {
	UUIDBase
	UserID   uint         `gorm:"index;not null" json:"userId"`
	Type     ActivityType `gorm:"size:20;not null" json:"type"`
	Title    string       `gorm:"size:255;not null" json:"title"`
	XPEarned int          `gorm:"not null" json:"xpEarned"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
