package models

import "time"

// QuestType is the closed catalog of daily quest kinds.
type QuestType string

const (
	QuestCompleteLessons QuestType = "COMPLETE_LESSONS"
	QuestEarnXP          QuestType = "EARN_XP"
	QuestPracticeMinutes QuestType = "PRACTICE_MINUTES"
)

// QuestCatalog: declaration order here is the dashboard display order.
var QuestCatalog = []QuestType{
	QuestCompleteLessons,
	QuestEarnXP,
	QuestPracticeMinutes,
}

// DailyQuest = one goal-tracking record per (user, type, calendar day).
// Progress is always derived from the activity ledger, never set by a caller.
// Claimed is a one-way flag: once true it never flips back.
type DailyQuest struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_user_quest_day;not null" json:"external_user_id"`
	Type           QuestType `gorm:"uniqueIndex:idx_user_quest_day;not null;size:32" json:"type"`
	QuestDate      string    `gorm:"uniqueIndex:idx_user_quest_day;not null;size:10" json:"quest_date"` // YYYY-MM-DD, server-local
	Language       string    `gorm:"not null;size:16" json:"language"`                                   // language the reward credits into

	Target    int64      `gorm:"not null" json:"target"`
	Progress  int64      `gorm:"default:0" json:"progress"`
	Completed bool       `gorm:"default:false" json:"completed"`
	Claimed   bool       `gorm:"default:false;index" json:"claimed"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
