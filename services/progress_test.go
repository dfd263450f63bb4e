package services

import (
	"errors"
	"testing"
	"time"

	"lingo-quest-service/models"
)

func TestEnsureProgress_CreatesWithZeroDefaults(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	prog, err := progress.EnsureProgress("u1", "hr")
	if err != nil {
		t.Fatalf("EnsureProgress: %v", err)
	}
	if prog.XP != 0 || prog.Level != "A1" || prog.Streak != 0 {
		t.Fatalf("unexpected defaults: xp=%d level=%s streak=%d", prog.XP, prog.Level, prog.Streak)
	}
	if prog.Language != "hr" {
		t.Fatalf("expected normalized language hr, got %q", prog.Language)
	}
}

func TestEnsureProgress_Idempotent(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	first, err := progress.EnsureProgress("u1", "hr")
	if err != nil {
		t.Fatalf("first EnsureProgress: %v", err)
	}
	second, err := progress.EnsureProgress("u1", "hr")
	if err != nil {
		t.Fatalf("second EnsureProgress: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same record identity, got %s vs %s", first.ID, second.ID)
	}

	var count int64
	progress.DB.Model(&models.UserLanguageProgress{}).
		Where("external_user_id = ?", "u1").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one stored record, got %d", count)
	}
}

func TestEnsureProgress_NormalizesLanguageCase(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	first, err := progress.EnsureProgress("u1", "HR")
	if err != nil {
		t.Fatalf("EnsureProgress: %v", err)
	}
	second, err := progress.EnsureProgress("u1", "hr")
	if err != nil {
		t.Fatalf("EnsureProgress: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("case variants should map to one record, got %s vs %s", first.ID, second.ID)
	}
}

func TestEnsureProgress_RejectsBadInput(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	if _, err := progress.EnsureProgress("", "hr"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty user, got %v", err)
	}
	if _, err := progress.EnsureProgress("u1", "not a language!"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad language, got %v", err)
	}
}

func TestAddExperience_RejectsNegativeAmount(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	if _, err := progress.AddExperience("u1", "hr", -5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	var count int64
	progress.DB.Model(&models.UserLanguageProgress{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed call must not create records, found %d", count)
	}
}

func TestAddExperience_SumsMonotonically(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	amounts := []int64{10, 0, 25, 100, 7}
	var want int64
	var last int64
	for _, a := range amounts {
		prog, err := progress.AddExperience("u1", "hr", a)
		if err != nil {
			t.Fatalf("AddExperience(%d): %v", a, err)
		}
		want += a
		if prog.XP < last {
			t.Fatalf("XP decreased: %d -> %d", last, prog.XP)
		}
		last = prog.XP
	}
	if last != want {
		t.Fatalf("expected total %d, got %d", want, last)
	}
}

func TestAddExperience_LevelsUpAcrossLadder(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	prog, err := progress.AddExperience("u1", "hr", 499)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if prog.Level != "A1" {
		t.Fatalf("expected A1 at 499 XP, got %s", prog.Level)
	}
	if prog.LastLevelUpAt != nil {
		t.Fatalf("no level-up yet, LastLevelUpAt should be nil")
	}

	prog, err = progress.AddExperience("u1", "hr", 1)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if prog.Level != "A2" {
		t.Fatalf("expected A2 at 500 XP, got %s", prog.Level)
	}
	if prog.LastLevelUpAt == nil {
		t.Fatalf("expected LastLevelUpAt to be set on level-up")
	}

	prog, err = progress.AddExperience("u1", "hr", 11500)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if prog.Level != "C2" {
		t.Fatalf("expected C2 at 12000 XP, got %s", prog.Level)
	}
}

func TestAddExperience_IsolatedPerLanguage(t *testing.T) {
	progress, _, _, _ := newTestServices(t)

	if _, err := progress.AddExperience("u1", "hr", 100); err != nil {
		t.Fatalf("AddExperience hr: %v", err)
	}
	sr, err := progress.EnsureProgress("u1", "sr")
	if err != nil {
		t.Fatalf("EnsureProgress sr: %v", err)
	}
	if sr.XP != 0 {
		t.Fatalf("expected sr progress untouched, got %d XP", sr.XP)
	}
}

func TestResetStaleStreaks(t *testing.T) {
	progress, activity, _, clock := newTestServices(t)

	if _, err := activity.RecordPractice("u1", "hr", 10); err != nil {
		t.Fatalf("RecordPractice: %v", err)
	}
	prog, _ := progress.EnsureProgress("u1", "hr")
	if prog.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", prog.Streak)
	}

	// Same day and next day: streak survives the sweep.
	for _, advance := range []time.Duration{0, 24 * time.Hour} {
		clock.Advance(advance)
		if _, err := progress.ResetStaleStreaks(clock.Now()); err != nil {
			t.Fatalf("ResetStaleStreaks: %v", err)
		}
		prog, _ = progress.EnsureProgress("u1", "hr")
		if prog.Streak != 1 {
			t.Fatalf("streak should survive sweep, got %d", prog.Streak)
		}
	}

	// Two more days idle: the sweep zeroes it.
	clock.Advance(48 * time.Hour)
	n, err := progress.ResetStaleStreaks(clock.Now())
	if err != nil {
		t.Fatalf("ResetStaleStreaks: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row reset, got %d", n)
	}
	prog, _ = progress.EnsureProgress("u1", "hr")
	if prog.Streak != 0 {
		t.Fatalf("expected streak reset to 0, got %d", prog.Streak)
	}
}
