// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func (s *ProgressService) StartStreakScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: zero streaks for users with no activity since yesterday
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			n, err := s.ResetStaleStreaks(s.Clock.Now())
			if err != nil {
				log.Printf("[Scheduler] streak reset failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("✅ Reset %d stale streak(s)", n)
			}
		}),
	)
}
