// services/activity.go
package services

import (
	"fmt"

	"lingo-quest-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityService owns the append-only activity ledger. Quest progress is
// derived from its same-day aggregates, so recording is the only write path.
type ActivityService struct {
	DB       *gorm.DB
	Progress *ProgressService
	Clock    Clock
}

func NewActivityService(db *gorm.DB, progress *ProgressService) *ActivityService {
	return &ActivityService{DB: db, Progress: progress, Clock: NewRealClock()}
}

// RecordLessonCompleted logs a finished lesson, bumps the streak and credits
// the lesson's XP — all in one transaction.
func (s *ActivityService) RecordLessonCompleted(externalUserID, lang string, xp int64) (*models.UserLanguageProgress, error) {
	if xp <= 0 {
		xp = DefaultXPWeights.LessonXP
	}
	var updated *models.UserLanguageProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := s.Clock.Now()
		event := models.ActivityEvent{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Language:       lang,
			Kind:           models.ActivityLessonCompleted,
			Amount:         1,
			EventDate:      dayOf(now),
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if err := s.Progress.touchStreakIn(tx, externalUserID, lang, now); err != nil {
			return err
		}
		var err error
		updated, err = s.Progress.AddExperienceIn(tx, externalUserID, lang, xp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordPractice logs a practice session of the given length in minutes.
func (s *ActivityService) RecordPractice(externalUserID, lang string, minutes int64) (*models.UserLanguageProgress, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: practice minutes must be positive, got %d", ErrInvalidArgument, minutes)
	}
	var updated *models.UserLanguageProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := s.Clock.Now()
		event := models.ActivityEvent{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Language:       lang,
			Kind:           models.ActivityPractice,
			Amount:         minutes,
			EventDate:      dayOf(now),
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if err := s.Progress.touchStreakIn(tx, externalUserID, lang, now); err != nil {
			return err
		}
		var err error
		updated, err = s.Progress.AddExperienceIn(tx, externalUserID, lang, minutes*DefaultXPWeights.PracticeMinuteXP)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CountToday sums a metric's ledger amounts for one user and calendar day.
func (s *ActivityService) CountToday(externalUserID string, kind models.ActivityKind, day string) (int64, error) {
	return s.countTodayIn(s.DB, externalUserID, kind, day)
}

func (s *ActivityService) countTodayIn(db *gorm.DB, externalUserID string, kind models.ActivityKind, day string) (int64, error) {
	var total int64
	err := db.Model(&models.ActivityEvent{}).
		Where("external_user_id = ? AND kind = ? AND event_date = ?", externalUserID, kind, day).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
