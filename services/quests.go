// services/quests.go
package services

import (
	"fmt"
	"log"

	"lingo-quest-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestService struct {
	DB       *gorm.DB
	Progress *ProgressService
	Activity *ActivityService
	Clock    Clock
}

func NewQuestService(db *gorm.DB, progress *ProgressService, activity *ActivityService) *QuestService {
	return &QuestService{DB: db, Progress: progress, Activity: activity, Clock: NewRealClock()}
}

// QuestView is a dashboard row: the stored record plus the pure presentation
// mapping (description + reward descriptor are never persisted).
type QuestView struct {
	ID          string           `json:"id"`
	Type        models.QuestType `json:"type"`
	Description string           `json:"description"`
	Target      int64            `json:"target"`
	Progress    int64            `json:"progress"` // clamped at Target for display
	Completed   bool             `json:"completed"`
	Claimed     bool             `json:"claimed"`
	Reward      Reward           `json:"reward"`
}

// GenerateDailyQuests materializes today's quest set for a user on first call
// of the day and refreshes derived progress on every call. Safe to call many
// times per day: quest identities are stable within a day, progress only grows.
// The language is the one the user is currently studying; it is stamped on the
// quest at creation so a later claim knows where to credit the reward.
func (s *QuestService) GenerateDailyQuests(externalUserID, lang string) ([]QuestView, error) {
	if externalUserID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidArgument)
	}
	lang, err := NormalizeLanguage(lang)
	if err != nil {
		return nil, err
	}

	today := dayOf(s.Clock.Now())
	views := make([]QuestView, 0, len(models.QuestCatalog))

	for _, questType := range models.QuestCatalog {
		quest, err := s.ensureQuest(externalUserID, lang, questType, today)
		if err != nil {
			return nil, err
		}

		progress, err := s.Activity.CountToday(externalUserID, metricFor(questType), today)
		if err != nil {
			return nil, err
		}

		// Progress is derived, monotonic within a day. Completed never
		// flips back to false once set.
		completed := quest.Completed || progress >= quest.Target
		if progress != quest.Progress || completed != quest.Completed {
			if err := s.DB.Model(&models.DailyQuest{}).
				Where("id = ?", quest.ID).
				Updates(map[string]interface{}{
					"progress":  progress,
					"completed": completed,
				}).Error; err != nil {
				return nil, err
			}
			quest.Progress = progress
			quest.Completed = completed
		}

		display := quest.Progress
		if display > quest.Target {
			display = quest.Target
		}
		views = append(views, QuestView{
			ID:          quest.ID,
			Type:        quest.Type,
			Description: DescriptionFor(quest.Type, quest.Target),
			Target:      quest.Target,
			Progress:    display,
			Completed:   quest.Completed,
			Claimed:     quest.Claimed,
			Reward:      RewardFor(quest.Type, quest.Target),
		})
	}

	return views, nil
}

// ensureQuest fetches or lazily creates the (user, type, day) record. The
// unique index backs the idempotency: if a concurrent request created the row
// first, the create fails and the winner's row is fetched instead.
func (s *QuestService) ensureQuest(externalUserID, lang string, questType models.QuestType, day string) (*models.DailyQuest, error) {
	var quest models.DailyQuest
	err := s.DB.Where("external_user_id = ? AND type = ? AND quest_date = ?", externalUserID, questType, day).
		First(&quest).Error
	if err == nil {
		return &quest, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	quest = models.DailyQuest{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Type:           questType,
		QuestDate:      day,
		Language:       lang,
		Target:         TargetFor(questType, externalUserID, day),
	}
	if createErr := s.DB.Create(&quest).Error; createErr != nil {
		var existing models.DailyQuest
		if err := s.DB.Where("external_user_id = ? AND type = ? AND quest_date = ?", externalUserID, questType, day).
			First(&existing).Error; err == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &quest, nil
}

// ClaimQuestReward marks a completed, unclaimed quest as claimed and credits
// its reward, atomically. Returns (reward, true, nil) on success. Expected
// negative outcomes — quest missing, not owned, incomplete, already claimed,
// or a lost double-claim race — return (nil, false, nil): these are normal
// caller-driven states, not errors. Claims are allowed retroactively for past
// days' quests; a quest never expires.
func (s *QuestService) ClaimQuestReward(questID, externalUserID string) (*Reward, bool, error) {
	if externalUserID == "" {
		return nil, false, fmt.Errorf("%w: empty user id", ErrInvalidArgument)
	}
	if _, err := uuid.Parse(questID); err != nil {
		return nil, false, fmt.Errorf("%w: quest id %q", ErrInvalidArgument, questID)
	}

	var reward *Reward
	claimed := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quest models.DailyQuest
		if err := tx.Where("id = ? AND external_user_id = ?", questID, externalUserID).
			First(&quest).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil // sentinel: stale client link or wrong owner
			}
			return err
		}

		if quest.Claimed {
			return nil
		}

		// Re-derive completion inside the transaction so a quest whose
		// counters crossed the target since the last dashboard refresh is
		// still claimable.
		progress, err := s.Activity.countTodayIn(tx, externalUserID, metricFor(quest.Type), quest.QuestDate)
		if err != nil {
			return err
		}
		if !quest.Completed && progress < quest.Target {
			return nil
		}

		// Conditional update is the double-claim guard: exactly one of two
		// concurrent transactions flips the flag, the other matches zero rows.
		now := s.Clock.Now()
		result := tx.Model(&models.DailyQuest{}).
			Where("id = ? AND claimed = ?", quest.ID, false).
			Updates(map[string]interface{}{
				"claimed":    true,
				"claimed_at": now,
				"progress":   progress,
				"completed":  true,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		r := RewardFor(quest.Type, quest.Target)
		if _, err := s.Progress.AddExperienceIn(tx, externalUserID, quest.Language, r.Amount); err != nil {
			// Credit failed: the whole transaction rolls back, the
			// claimed flag is not left set.
			return err
		}

		reward = &r
		claimed = true
		log.Printf("🏅 Quest claimed: user=%s quest=%s type=%s reward=%d XP",
			externalUserID, quest.ID, quest.Type, r.Amount)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return reward, claimed, nil
}
