// handlers/event_routes.go
package handlers

import (
	"errors"
	"strconv"

	"event-log-system/middleware"
	"event-log-system/models"
	"event-log-system/services"
	"event-log-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Post("/events", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var input services.CreateEventInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		event, err := eventService.CreateEvent(userID, input)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to create event",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	securedGroup.Get("/events", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))

		events, total, err := eventService.ListEvents(userID, page, size)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list events",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"events":      events,
			"page":        page,
			"size":        size,
			"total_items": total,
		})
	})

	securedGroup.Get("/events/timeline", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "10"))

		events, err := eventService.Timeline(userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load timeline",
				"cause": err.Error(),
			})
		}
		return c.JSON(events)
	})

	securedGroup.Get("/events/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		event, err := eventService.GetEvent(userID, c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load event",
				"cause": err.Error(),
			})
		}
		return c.JSON(event)
	})

	securedGroup.Put("/events/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var input services.UpdateEventInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		event, err := eventService.UpdateEvent(userID, c.Params("id"), input)
		if err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to update event",
				"cause": err.Error(),
			})
		}
		return c.JSON(event)
	})

	securedGroup.Delete("/events/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := eventService.DeleteEvent(userID, c.Params("id")); err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete event",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	securedGroup.Post("/events/:id/photo", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		eventID := c.Params("id")

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
		}

		var url string
		if utils.R2Enabled() {
			url, err = utils.UploadFileToR2(fileHeader, utils.PhotoObjectKey(eventID, fileHeader.Filename))
		} else {
			dest := utils.GetUploadPath(utils.PhotoObjectKey(eventID, fileHeader.Filename))
			err = utils.SaveFile(fileHeader, dest)
			url = "/" + dest
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store photo",
				"cause": err.Error(),
			})
		}

		if err := eventService.SetPhotoURL(userID, eventID, url); err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to attach photo",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"photo_url": url})
	})

	securedGroup.Get("/search/artists", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		artists, err := eventService.SearchArtists(c.Query("q"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "search failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(artists)
	})

	securedGroup.Get("/search/players", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		players, err := eventService.SearchPlayers(c.Query("q"), models.SportType(c.Query("sport")), limit)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "search failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(players)
	})
}
