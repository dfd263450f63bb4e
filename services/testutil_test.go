package services

import (
	"testing"
	"time"

	"lingo-quest-service/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.UserLanguageProgress{},
		&models.DailyQuest{},
		&models.ActivityEvent{},
		&models.Lesson{},
	); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// newTestServices wires the service graph over an in-memory store with a
// fixed clock shared by every service.
func newTestServices(tb testing.TB) (*ProgressService, *ActivityService, *QuestService, *fakeClock) {
	tb.Helper()

	db := newTestDB(tb)
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}

	progress := NewProgressService(db)
	progress.Clock = clock
	activity := NewActivityService(db, progress)
	activity.Clock = clock
	quests := NewQuestService(db, progress, activity)
	quests.Clock = clock

	return progress, activity, quests, clock
}
