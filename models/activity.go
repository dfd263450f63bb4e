package models

import "time"

// ActivityKind names a tracked activity metric.
type ActivityKind string

const (
	ActivityLessonCompleted ActivityKind = "lesson_completed" // Amount = 1 per lesson
	ActivityPractice        ActivityKind = "practice_session" // Amount = minutes practiced
	ActivityXPEarned        ActivityKind = "xp_earned"        // Amount = XP credited
)

// ActivityEvent is the append-only ledger quest progress is derived from.
// Rows are never updated after insert.
type ActivityEvent struct {
	ID             string       `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string       `gorm:"index:idx_activity_user_day;not null" json:"external_user_id"`
	Language       string       `gorm:"not null;size:16" json:"language"`
	Kind           ActivityKind `gorm:"not null;size:32" json:"kind"`
	Amount         int64        `gorm:"not null" json:"amount"`
	EventDate      string       `gorm:"index:idx_activity_user_day;not null;size:10" json:"event_date"` // YYYY-MM-DD bucket
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
}
