package model

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	Title       string           `gorm:"size:255;not null" json:"title"`
	Slug        string           `gorm:"size:255;index;not null" json:"slug"`
	Level       ProficiencyLevel `gorm:"size:2;not null" json:"level"`
	Category    string           `gorm:"size:100" json:"category"`
	Icon        string           `gorm:"size:16" json:"icon"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	VideoURL    string           `gorm:"size:512" json:"videoUrl,omitempty"`
	Custom      bool             `gorm:"default:false;index" json:"custom"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// BuiltinLessons is the fixed catalog seeded at migration time. Custom lessons
// are always listed after these.
func BuiltinLessons() []Lesson {
	return []Lesson{
		{UUIDBase: UUIDBase{ID: "pres-cont"}, Title: "Present Continuous", Slug: "present-continuous", Level: LevelA1, Icon: "🏃", Category: "Grammar"},
		{UUIDBase: UUIDBase{ID: "job-interview"}, Title: "Corporate Interview Prep", Slug: "corporate-interview-prep", Level: LevelB2, Icon: "💼", Category: "Business"},
		{UUIDBase: UUIDBase{ID: "condit-1"}, Title: "First Conditional", Slug: "first-conditional", Level: LevelB1, Icon: "🔀", Category: "Grammar"},
		{UUIDBase: UUIDBase{ID: "travel-airport"}, Title: "Airport Survival", Slug: "airport-survival", Level: LevelA2, Icon: "✈️", Category: "Travel"},
	}
}
