// handlers/progress.go
package handlers

import (
	"errors"
	"log"

	"lingo-quest-service/middleware"
	"lingo-quest-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(app *fiber.App, progressService *services.ProgressService, activityService *services.ActivityService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// GET /s/user/progress?language=hr — per-language XP, level, streak.
	// Creates the record on first access.
	secured.Get("/s/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		lang := c.Query("language", "en")

		prog, err := progressService.EnsureProgress(userID, lang)
		if err != nil {
			if errors.Is(err, services.ErrInvalidArgument) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid language code"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"id":                 prog.ID,
			"language":           prog.Language,
			"xp":                 prog.XP,
			"level":              prog.Level,
			"streak":             prog.Streak,
			"last_activity_date": prog.LastActivityDate,
			"last_level_up_at":   prog.LastLevelUpAt,
		})
	})

	// POST /s/user/activity — record a lesson completion or practice session.
	secured.Post("/s/user/activity", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Kind     string `json:"kind" validate:"required,oneof=lesson practice"`
			Language string `json:"language" validate:"required"`
			Minutes  int64  `json:"minutes"`
			XP       int64  `json:"xp"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		var err error
		var prog interface{}
		switch req.Kind {
		case "lesson":
			prog, err = activityService.RecordLessonCompleted(userID, req.Language, req.XP)
		case "practice":
			prog, err = activityService.RecordPractice(userID, req.Language, req.Minutes)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be lesson or practice"})
		}
		if err != nil {
			if errors.Is(err, services.ErrInvalidArgument) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			log.Printf("❌ Failed to record activity for %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record activity"})
		}

		return c.JSON(fiber.Map{"message": "activity recorded", "progress": prog})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID   string `json:"user_id" validate:"required"`
			Language string `json:"language" validate:"required"`
			XP       int64  `json:"xp" validate:"required,min=1"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		prog, err := progressService.AddExperience(req.UserID, req.Language, req.XP)
		if err != nil {
			if errors.Is(err, services.ErrInvalidArgument) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP grant failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message":  "XP granted successfully",
			"user_id":  req.UserID,
			"language": prog.Language,
			"xp":       prog.XP,
			"level":    prog.Level,
		})
	})
}
