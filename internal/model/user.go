package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type SubscriptionPlan string

const (
	PlanStarter   SubscriptionPlan = "starter"
	PlanPro       SubscriptionPlan = "pro"
	PlanImmersion SubscriptionPlan = "immersion"
)

// ValidUpgradePlan reports whether plan is one of the paid tiers a user may
// switch to. The starter plan is only ever assigned at account creation.
func ValidUpgradePlan(plan SubscriptionPlan) bool {
	return plan == PlanPro || plan == PlanImmersion
}

// swagger:model User
type User struct {
	BaseModel
	Name         string           `gorm:"size:100;not null" json:"name"`
	Email        string           `gorm:"size:100;unique;not null" json:"email"`
	Role         UserRole         `gorm:"size:20;default:'student'" json:"role"`
	XP           int              `gorm:"default:0" json:"xp"`
	Level        ProficiencyLevel `gorm:"size:2;default:'A1'" json:"level"`
	Subscription SubscriptionPlan `gorm:"size:20;default:'starter'" json:"subscription"`
	Streak       int              `gorm:"default:0" json:"streak"`
	LastActive   time.Time        `json:"lastActive"`
	LastLogin    time.Time        `json:"lastLogin"`

	Completed []LessonCompletion `gorm:"foreignKey:UserID" json:"completed,omitempty"`
	Logs      []ActivityLog      `gorm:"foreignKey:UserID" json:"logs,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SyncLevel recomputes the derived proficiency tier from XP.
func (u *User) SyncLevel() {
	u.Level = LevelForXP(u.XP)
}

// LessonCompletion marks a lesson as completed by a user. Set semantics:
// the (user, lesson) pair is unique, insertion order is irrelevant.
type LessonCompletion struct {
	BaseModel
	UserID   uint   `gorm:"index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID string `gorm:"index:idx_user_lesson,unique;size:36;not null" json:"lessonId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
