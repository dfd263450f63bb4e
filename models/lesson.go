package models

// LessonStatus indicates the publishing status of a lesson
type LessonStatus string

const (
	LessonStatusDraft     LessonStatus = "draft"
	LessonStatusPublished LessonStatus = "published"
	LessonStatusArchived  LessonStatus = "archived"
)

// AudioStatus tracks the synthesis pipeline for a lesson's narration clip
type AudioStatus string

const (
	AudioStatusPending AudioStatus = "pending"
	AudioStatusReady   AudioStatus = "ready"
	AudioStatusFailed  AudioStatus = "failed"
)

// Lesson is an AI-generated lesson: text body produced by the generation
// service, narration audio synthesized asynchronously and stored on R2.
type Lesson struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Language string `gorm:"index;not null;size:16" json:"language"`
	Topic    string `gorm:"not null" json:"topic"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Body     string `gorm:"type:text" json:"body"`

	AudioURL    string      `gorm:"type:text" json:"audio_url"`
	AudioStatus AudioStatus `gorm:"size:16;default:'pending';index" json:"audio_status"`

	XPReward int64        `gorm:"default:20" json:"xp_reward"`
	Status   LessonStatus `gorm:"not null;default:'draft'" json:"status"`

	Timestamps
}
