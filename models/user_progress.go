package models

import (
	"time"

	"gorm.io/gorm"
)

// UserLanguageProgress tracks gamified progression per (user, language) pair (denormalized for performance)
type UserLanguageProgress struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex:idx_user_language;not null" json:"external_user_id"` // links to profile service
	Language       string `gorm:"uniqueIndex:idx_user_language;not null;size:16" json:"language"` // canonical BCP-47 tag, e.g. "hr", "sr-Latn"

	// Core progression
	XP     int64  `json:"xp" gorm:"default:0"`
	Level  string `json:"level" gorm:"size:8;default:'A1'"` // CEFR ladder A1→C2
	Streak int    `json:"streak" gorm:"default:0"`          // consecutive active days

	// Milestones
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	LastLevelUpAt    *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
