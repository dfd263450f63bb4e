// services/catalog.go
package services

import (
	"fmt"
	"hash/fnv"

	"lingo-quest-service/models"
)

// XPWeights define relative values (tunable via config/env later)
type XPWeights struct {
	LessonXP         int64 `default:"20"`
	PracticeMinuteXP int64 `default:"2"`
}

var DefaultXPWeights = XPWeights{
	LessonXP:         20,
	PracticeMinuteXP: 2,
}

// RewardTypeXP is the only reward denomination the catalog issues today.
const RewardTypeXP = "XP"

// Reward is the descriptor returned by a successful claim.
type Reward struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// questDefinition binds a quest type to the activity metric it tracks and
// the bounds its daily target is drawn from. Min == Max means a fixed target.
type questDefinition struct {
	Type      models.QuestType
	Metric    models.ActivityKind
	MinTarget int64
	MaxTarget int64
	Step      int64 // targets are rounded to multiples of Step
	RewardXP  int64
}

var questDefinitions = map[models.QuestType]questDefinition{
	models.QuestCompleteLessons: {
		Type:      models.QuestCompleteLessons,
		Metric:    models.ActivityLessonCompleted,
		MinTarget: 3,
		MaxTarget: 3,
		Step:      1,
		RewardXP:  50,
	},
	models.QuestEarnXP: {
		Type:      models.QuestEarnXP,
		Metric:    models.ActivityXPEarned,
		MinTarget: 50,
		MaxTarget: 100,
		Step:      10,
		RewardXP:  30,
	},
	models.QuestPracticeMinutes: {
		Type:      models.QuestPracticeMinutes,
		Metric:    models.ActivityPractice,
		MinTarget: 10,
		MaxTarget: 20,
		Step:      5,
		RewardXP:  40,
	},
}

// TargetFor draws the daily target for a quest type. The draw is a pure
// function of (userID, type, day): the same inputs always yield the same
// target, so regenerating a day's quests can never disagree with the
// stored record.
func TargetFor(t models.QuestType, externalUserID, day string) int64 {
	def := questDefinitions[t]
	if def.MinTarget >= def.MaxTarget {
		return def.MinTarget
	}
	h := fnv.New64a()
	h.Write([]byte(externalUserID))
	h.Write([]byte(string(t)))
	h.Write([]byte(day))
	steps := (def.MaxTarget-def.MinTarget)/def.Step + 1
	return def.MinTarget + int64(h.Sum64()%uint64(steps))*def.Step
}

// RewardFor maps (type, target) to the reward descriptor. Pure; the reward
// is not persisted on the quest row.
func RewardFor(t models.QuestType, target int64) Reward {
	return Reward{Type: RewardTypeXP, Amount: questDefinitions[t].RewardXP}
}

// DescriptionFor renders the human-readable goal line for the dashboard.
// Localization is handled upstream; this is the fallback English copy.
func DescriptionFor(t models.QuestType, target int64) string {
	switch t {
	case models.QuestCompleteLessons:
		return fmt.Sprintf("Complete %d lessons today", target)
	case models.QuestEarnXP:
		return fmt.Sprintf("Earn %d XP today", target)
	case models.QuestPracticeMinutes:
		return fmt.Sprintf("Practice for %d minutes today", target)
	default:
		return fmt.Sprintf("Reach %d today", target)
	}
}

// metricFor returns the activity metric a quest type derives progress from.
func metricFor(t models.QuestType) models.ActivityKind {
	return questDefinitions[t].Metric
}
