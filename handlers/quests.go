// handlers/quests.go
package handlers

import (
	"errors"
	"log"

	"lingo-quest-service/middleware"
	"lingo-quest-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestRoutes(app *fiber.App, questService *services.QuestService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// GET /s/user/quests?language=hr — today's quest set, catalog order.
	// A storage failure degrades to an empty list rather than blocking the page.
	secured.Get("/s/user/quests", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		lang := c.Query("language", "en")

		quests, err := questService.GenerateDailyQuests(userID, lang)
		if err != nil {
			if errors.Is(err, services.ErrInvalidArgument) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid language code",
				})
			}
			log.Printf("❌ Failed to generate quests for %s: %v", userID, err)
			return c.JSON([]services.QuestView{})
		}
		return c.JSON(quests)
	})

	// POST /s/user/quests/:id/claim — one-time reward claim.
	// "Already claimed" and "not yet completed" are expected outcomes, not errors.
	secured.Post("/s/user/quests/:id/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		questID := c.Params("id")

		reward, ok, err := questService.ClaimQuestReward(questID, userID)
		if err != nil {
			if errors.Is(err, services.ErrInvalidArgument) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid quest ID",
				})
			}
			log.Printf("❌ Claim failed for quest %s: %v", questID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to claim reward",
			})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "quest not claimable",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"reward":  reward,
		})
	})
}
