// services/progress.go
package services

import (
	"errors"
	"fmt"
	"time"

	"lingo-quest-service/models"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ErrInvalidArgument marks caller mistakes (malformed key, negative amount).
// Never retried, surfaced immediately.
var ErrInvalidArgument = errors.New("invalid argument")

type ProgressService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db, Clock: NewRealClock()}
}

// NormalizeLanguage canonicalizes a BCP-47 tag ("HR" → "hr").
// Malformed codes are an ErrInvalidArgument.
func NormalizeLanguage(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: language %q", ErrInvalidArgument, code)
	}
	return tag.String(), nil
}

// EnsureProgress returns the progress row for (user, language), creating it
// with zero defaults on first access (idempotent). A create race against a
// concurrent request is resolved by re-fetching, never surfaced to the caller.
func (s *ProgressService) EnsureProgress(externalUserID, lang string) (*models.UserLanguageProgress, error) {
	return s.ensureProgressIn(s.DB, externalUserID, lang)
}

func (s *ProgressService) ensureProgressIn(db *gorm.DB, externalUserID, lang string) (*models.UserLanguageProgress, error) {
	if externalUserID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidArgument)
	}
	lang, err := NormalizeLanguage(lang)
	if err != nil {
		return nil, err
	}

	var prog models.UserLanguageProgress
	err = db.Where("external_user_id = ? AND language = ?", externalUserID, lang).First(&prog).Error
	if err == nil {
		return &prog, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	prog = models.UserLanguageProgress{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Language:       lang,
		XP:             0,
		Level:          models.LevelForXP(0),
		Streak:         0,
	}
	if createErr := db.Create(&prog).Error; createErr != nil {
		// Unique index on (user, language): a concurrent create won the race.
		var existing models.UserLanguageProgress
		if err := db.Where("external_user_id = ? AND language = ?", externalUserID, lang).First(&existing).Error; err == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &prog, nil
}

// AddExperience atomically credits XP and recomputes the CEFR level.
// Also appends an xp_earned ledger event so the EARN_XP quest sees it.
func (s *ProgressService) AddExperience(externalUserID, lang string, amount int64) (*models.UserLanguageProgress, error) {
	var updated *models.UserLanguageProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = s.AddExperienceIn(tx, externalUserID, lang, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddExperienceIn is the tx-scoped variant, used when the credit must commit
// or roll back together with other writes (reward claiming).
func (s *ProgressService) AddExperienceIn(tx *gorm.DB, externalUserID, lang string, amount int64) (*models.UserLanguageProgress, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: negative XP amount %d", ErrInvalidArgument, amount)
	}

	prog, err := s.ensureProgressIn(tx, externalUserID, lang)
	if err != nil {
		return nil, err
	}

	// Row-level atomic increment; no read-modify-write on XP.
	if err := tx.Model(&models.UserLanguageProgress{}).
		Where("id = ?", prog.ID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id = ?", prog.ID).First(prog).Error; err != nil {
		return nil, err
	}

	if newLevel := models.LevelForXP(prog.XP); newLevel != prog.Level {
		now := s.Clock.Now()
		prog.Level = newLevel
		prog.LastLevelUpAt = &now
		if err := tx.Model(prog).Updates(map[string]interface{}{
			"level":            prog.Level,
			"last_level_up_at": prog.LastLevelUpAt,
		}).Error; err != nil {
			return nil, err
		}
	}

	if amount > 0 {
		event := models.ActivityEvent{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Language:       prog.Language,
			Kind:           models.ActivityXPEarned,
			Amount:         amount,
			EventDate:      dayOf(s.Clock.Now()),
		}
		if err := tx.Create(&event).Error; err != nil {
			return nil, err
		}
	}

	return prog, nil
}

// touchStreakIn bumps the streak counter for a day of activity:
// same day is a no-op, consecutive day increments, a gap restarts at 1.
func (s *ProgressService) touchStreakIn(tx *gorm.DB, externalUserID, lang string, now time.Time) error {
	prog, err := s.ensureProgressIn(tx, externalUserID, lang)
	if err != nil {
		return err
	}

	today := dayOf(now)
	if prog.LastActivityDate != nil && dayOf(*prog.LastActivityDate) == today {
		return nil
	}

	streak := 1
	if prog.LastActivityDate != nil && dayOf(*prog.LastActivityDate) == dayOf(now.AddDate(0, 0, -1)) {
		streak = prog.Streak + 1
	}

	return tx.Model(&models.UserLanguageProgress{}).
		Where("id = ?", prog.ID).
		Updates(map[string]interface{}{
			"streak":             streak,
			"last_activity_date": now,
		}).Error
}

// ResetStaleStreaks zeroes streaks for rows idle since before yesterday.
// Called from the maintenance scheduler.
func (s *ProgressService) ResetStaleStreaks(now time.Time) (int64, error) {
	yesterdayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	result := s.DB.Model(&models.UserLanguageProgress{}).
		Where("streak > 0 AND (last_activity_date IS NULL OR last_activity_date < ?)", yesterdayStart).
		Update("streak", 0)
	return result.RowsAffected, result.Error
}
