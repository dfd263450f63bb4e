// services/lessons.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"lingo-quest-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type LessonService struct {
	DB  *gorm.DB
	Gen *GenerationClient
}

func NewLessonService(db *gorm.DB, gen *GenerationClient) *LessonService {
	return &LessonService{DB: db, Gen: gen}
}

// --- Admin Handlers ---

// GenerateLesson creates a draft lesson with AI-generated body text (Admin only).
// Audio synthesis happens asynchronously via the audio worker.
func (s *LessonService) GenerateLesson(c *fiber.Ctx) error {
	var req struct {
		Language string `json:"language" validate:"required"`
		Topic    string `json:"topic" validate:"required"`
		XPReward int64  `json:"xp_reward"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Topic) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Topic is required"})
	}
	lang, err := NormalizeLanguage(req.Language)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid language code"})
	}

	prompt := fmt.Sprintf("Write a short %s lesson about %q for a learner.", lang, req.Topic)
	body, err := s.Gen.GenerateText(prompt)
	if err != nil {
		log.Printf("Generation failed for topic %q: %v", req.Topic, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Lesson generation failed"})
	}

	lesson := &models.Lesson{
		ID:          uuid.NewString(),
		Language:    lang,
		Topic:       req.Topic,
		Slug:        s.uniqueSlug(lang, req.Topic),
		Body:        body,
		AudioStatus: models.AudioStatusPending,
		XPReward:    req.XPReward,
		Status:      models.LessonStatusDraft,
	}
	if lesson.XPReward <= 0 {
		lesson.XPReward = DefaultXPWeights.LessonXP
	}

	if err := s.DB.Create(lesson).Error; err != nil {
		log.Printf("DB Error creating lesson: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// uniqueSlug derives a URL slug from (language, topic), suffixing on collision.
func (s *LessonService) uniqueSlug(lang, topic string) string {
	base := slug.Make(lang + "-" + topic)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		s.DB.Model(&models.Lesson{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// UpdateLessonStatus allows admin to change the status (e.g., draft -> published)
func (s *LessonService) UpdateLessonStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson ID"})
	}

	var req struct {
		Status models.LessonStatus `json:"status" validate:"required,oneof=draft published archived"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	switch req.Status {
	case models.LessonStatusDraft, models.LessonStatusPublished, models.LessonStatusArchived:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	var lesson models.Lesson
	if err := s.DB.First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	lesson.Status = req.Status
	if err := s.DB.Save(&lesson).Error; err != nil {
		log.Printf("DB Error updating lesson status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update lesson status"})
	}

	return c.JSON(fiber.Map{"message": "Lesson status updated successfully", "lesson": lesson})
}

// --- Public Handlers ---

// GetLessons lists published lessons, optionally filtered by language
func (s *LessonService) GetLessons(c *fiber.Ctx) error {
	query := s.DB.Where("status = ?", models.LessonStatusPublished)

	if langParam := c.Query("language"); langParam != "" {
		lang, err := NormalizeLanguage(langParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid language code"})
		}
		query = query.Where("language = ?", lang)
	}

	var lessons []models.Lesson
	if err := query.Order("created_at DESC").Find(&lessons).Error; err != nil {
		log.Printf("DB Error fetching lessons: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch lessons"})
	}

	return c.JSON(lessons)
}

// GetLessonBySlug fetches a single published lesson
func (s *LessonService) GetLessonBySlug(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := s.DB.Where("slug = ? AND status = ?", c.Params("slug"), models.LessonStatusPublished).
		First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(lesson)
}
