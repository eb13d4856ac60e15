// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSweepScheduler re-evaluates achievements for every user with
// logged events once a day. Evaluation is idempotent, so overlapping
// with the activity-driven worker is harmless.
func (s *AchievementService) StartSweepScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			var userIDs []string
			err := s.DB.Table("events").
				Distinct("user_id").
				Where("deleted_at IS NULL").
				Pluck("user_id", &userIDs).Error
			if err != nil {
				log.Printf("[Sweep] DB error: %v", err)
				return
			}

			for _, userID := range userIDs {
				if _, err := s.Evaluate(userID); err != nil {
					log.Printf("[Sweep] Failed to evaluate achievements for %s: %v", userID, err)
				}
			}
			log.Printf("✅ Achievement sweep done for %d users", len(userIDs))
		}),
	)
}
