// handlers/lessons.go
package handlers

import (
	"errors"
	"log"

	"lingo-quest-service/middleware"
	"lingo-quest-service/models"
	"lingo-quest-service/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLessonRoutes(app *fiber.App, lessonService *services.LessonService, activityService *services.ActivityService) {
	// 🔓 Public routes — no user context, but still require Gateway auth
	app.Get("/lessons", lessonService.GetLessons)
	app.Get("/lessons/:slug", lessonService.GetLessonBySlug)

	// 🔐 Secured routes — require user context
	secured := app.Group("/", middleware.UserContextMiddleware())

	// POST /s/lessons/:slug/complete — records the completion with the
	// lesson's configured XP reward.
	secured.Post("/s/lessons/:slug/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var lesson models.Lesson
		if err := lessonService.DB.
			Where("slug = ? AND status = ?", c.Params("slug"), models.LessonStatusPublished).
			First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lesson not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}

		prog, err := activityService.RecordLessonCompleted(userID, lesson.Language, lesson.XPReward)
		if err != nil {
			log.Printf("❌ Failed to record lesson completion for %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record completion"})
		}

		return c.JSON(fiber.Map{
			"message":  "lesson completed",
			"lesson":   lesson.Slug,
			"progress": prog,
		})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())
	adminGroup.Post("/lessons/generate", lessonService.GenerateLesson)
	adminGroup.Patch("/lessons/:id/status", lessonService.UpdateLessonStatus)
}
