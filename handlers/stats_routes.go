// handlers/stats_routes.go
package handlers

import (
	"strconv"
	"sync"

	"event-log-system/middleware"
	"event-log-system/models"
	"event-log-system/services"

	"github.com/gofiber/fiber/v2"
)

// yearParam parses the optional ?year= filter; nil means all time.
func yearParam(c *fiber.Ctx) (*int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return nil, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1800 || year > 3000 {
		return nil, false
	}
	return &year, true
}

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService, achievementService *services.AchievementService, eventService *services.EventService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/stats/leaderboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		year, ok := yearParam(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
		}
		limit, _ := strconv.Atoi(c.Query("limit", "10"))

		entries, err := statsService.GetLeaderboard(
			userID,
			models.SportType(c.Query("sport")),
			c.Query("stat", services.StatAppearances),
			limit,
			year,
		)
		if err != nil {
			// unknown sport/stat/negative limit are caller mistakes
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid leaderboard request",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	securedGroup.Get("/stats/teams", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		year, ok := yearParam(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
		}
		entries, err := statsService.GetTeamStats(userID, year)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute team stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	securedGroup.Get("/stats/venues", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		year, ok := yearParam(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
		}
		entries, err := statsService.GetVenueStats(userID, year)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute venue stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	securedGroup.Get("/stats/artists", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		year, ok := yearParam(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
		}
		entries, err := statsService.GetArtistStats(userID, year)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute artist stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	securedGroup.Get("/stats/overview", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		year, ok := yearParam(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
		}
		overview, err := statsService.GetOverviewStats(userID, year)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute overview",
				"cause": err.Error(),
			})
		}
		return c.JSON(overview)
	})

	// Dashboard fans out the independent reads and joins the results;
	// neither blocks on the other.
	securedGroup.Get("/stats/dashboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		year, ok := yearParam(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
		}

		var (
			wg          sync.WaitGroup
			overview    *services.OverviewStats
			recent      []models.Event
			overviewErr error
			recentErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			overview, overviewErr = statsService.GetOverviewStats(userID, year)
		}()
		go func() {
			defer wg.Done()
			recent, recentErr = eventService.Timeline(userID, 5)
		}()
		wg.Wait()

		if overviewErr != nil || recentErr != nil {
			cause := overviewErr
			if cause == nil {
				cause = recentErr
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build dashboard",
				"cause": cause.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"overview":      overview,
			"recent_events": recent,
		})
	})

	securedGroup.Get("/players/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		profile, err := statsService.GetPlayerProfile(userID, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load player profile",
				"cause": err.Error(),
			})
		}
		if profile == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.JSON(profile)
	})

	securedGroup.Get("/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		progress, err := achievementService.Evaluate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to evaluate achievements",
				"cause": err.Error(),
			})
		}
		return c.JSON(progress)
	})
}
