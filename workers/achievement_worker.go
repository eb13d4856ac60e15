package workers

import (
	"context"
	"log"
	"time"

	"event-log-system/services"

	"gorm.io/gorm"
)

// AchievementSweeper re-evaluates achievements for users who logged or
// edited events since the previous pass. Evaluation is idempotent, so
// racing with a request-driven evaluation never double-unlocks.
type AchievementSweeper struct {
	DB      *gorm.DB
	Service *services.AchievementService
}

func NewAchievementSweeper(db *gorm.DB, svc *services.AchievementService) *AchievementSweeper {
	return &AchievementSweeper{DB: db, Service: svc}
}

// recentlyActiveUsers returns user ids with event writes since the cutoff.
func (w *AchievementSweeper) recentlyActiveUsers(since time.Time) ([]string, error) {
	var userIDs []string
	err := w.DB.Table("events").
		Distinct("user_id").
		Where("updated_at >= ?", since).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// PollAchievements runs the sweep loop until the context is cancelled.
func PollAchievements(ctx context.Context, sweeper *AchievementSweeper, pollInterval time.Duration) {
	log.Println("Starting achievement polling...")
	lastSweep := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Achievement polling stopped.")
			return
		case <-ticker.C:
			sweepStart := time.Now().UTC()
			userIDs, err := sweeper.recentlyActiveUsers(lastSweep)
			if err != nil {
				log.Printf("[AchievementSweep] DB error: %v", err)
				continue
			}
			for _, userID := range userIDs {
				if _, err := sweeper.Service.Evaluate(userID); err != nil {
					log.Printf("[AchievementSweep] Failed to evaluate %s: %v", userID, err)
				}
			}
			if len(userIDs) > 0 {
				log.Printf("✅ Achievement sweep: %d active users evaluated", len(userIDs))
			}
			lastSweep = sweepStart
		}
	}
}
