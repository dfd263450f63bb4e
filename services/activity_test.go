package services

import (
	"errors"
	"testing"
	"time"

	"lingo-quest-service/models"
)

func TestRecordPractice_RejectsNonPositiveMinutes(t *testing.T) {
	_, activity, _, _ := newTestServices(t)

	for _, minutes := range []int64{0, -3} {
		if _, err := activity.RecordPractice("u1", "hr", minutes); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("minutes=%d: expected ErrInvalidArgument, got %v", minutes, err)
		}
	}
}

func TestRecordLessonCompleted_AppendsLedgerAndCreditsXP(t *testing.T) {
	_, activity, _, clock := newTestServices(t)

	prog, err := activity.RecordLessonCompleted("u1", "hr", 0)
	if err != nil {
		t.Fatalf("RecordLessonCompleted: %v", err)
	}
	if prog.XP != DefaultXPWeights.LessonXP {
		t.Fatalf("expected default lesson XP %d, got %d", DefaultXPWeights.LessonXP, prog.XP)
	}

	day := dayOf(clock.Now())
	lessons, err := activity.CountToday("u1", models.ActivityLessonCompleted, day)
	if err != nil {
		t.Fatalf("CountToday: %v", err)
	}
	if lessons != 1 {
		t.Fatalf("expected 1 lesson today, got %d", lessons)
	}
	xp, err := activity.CountToday("u1", models.ActivityXPEarned, day)
	if err != nil {
		t.Fatalf("CountToday: %v", err)
	}
	if xp != DefaultXPWeights.LessonXP {
		t.Fatalf("expected %d XP in ledger, got %d", DefaultXPWeights.LessonXP, xp)
	}
}

func TestCountToday_SumsOnlyMatchingDayAndKind(t *testing.T) {
	_, activity, _, clock := newTestServices(t)

	if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	if _, err := activity.RecordPractice("u1", "hr", 5); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	firstDay := dayOf(clock.Now())

	clock.Advance(24 * time.Hour)
	if _, err := activity.RecordPractice("u1", "hr", 7); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}

	got, err := activity.CountToday("u1", models.ActivityPractice, firstDay)
	if err != nil {
		t.Fatalf("CountToday: %v", err)
	}
	if got != 15 {
		t.Fatalf("expected 15 minutes on first day, got %d", got)
	}
	got, err = activity.CountToday("u1", models.ActivityPractice, dayOf(clock.Now()))
	if err != nil {
		t.Fatalf("CountToday: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7 minutes on second day, got %d", got)
	}
}

func TestStreak_IncrementsOnConsecutiveDays(t *testing.T) {
	progress, activity, _, clock := newTestServices(t)

	for want := 1; want <= 3; want++ {
		if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
			t.Fatalf("RecordPractice day %d: %v", want, err)
		}
		prog, err := progress.EnsureProgress("u1", "hr")
		if err != nil {
			t.Fatalf("EnsureProgress: %v", err)
		}
		if prog.Streak != want {
			t.Fatalf("expected streak %d, got %d", want, prog.Streak)
		}
		clock.Advance(24 * time.Hour)
	}
}

func TestStreak_SameDayIsNoOp(t *testing.T) {
	progress, activity, _, _ := newTestServices(t)

	if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	if _, err := activity.RecordLessonCompleted("u1", "hr", 0); err != nil {
		t.Fatalf("RecordLessonCompleted: %v", err)
	}

	prog, _ := progress.EnsureProgress("u1", "hr")
	if prog.Streak != 1 {
		t.Fatalf("expected streak 1 after two same-day activities, got %d", prog.Streak)
	}
}

func TestStreak_GapRestartsAtOne(t *testing.T) {
	progress, activity, _, clock := newTestServices(t)

	if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	clock.Advance(24 * time.Hour)
	if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	prog, _ := progress.EnsureProgress("u1", "hr")
	if prog.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", prog.Streak)
	}

	clock.Advance(72 * time.Hour)
	if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	prog, _ = progress.EnsureProgress("u1", "hr")
	if prog.Streak != 1 {
		t.Fatalf("expected streak restart at 1 after gap, got %d", prog.Streak)
	}
}
