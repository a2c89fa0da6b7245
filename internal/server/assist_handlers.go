package server

import (
	"clubhub/internal/middleware"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PolishText handles POST /api/assist/polish. On provider failure the
// member's draft is echoed back untouched so the composer loses nothing.
func (s *Server) PolishText(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Text is required"))
	}

	polished, err := s.assistClient.PolishText(c.Context(), req.Text)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "assist polish failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Text assist is unavailable right now",
			"text":  req.Text,
		})
	}

	return c.JSON(fiber.Map{"text": polished})
}

// GenerateImage handles POST /api/assist/image.
func (s *Server) GenerateImage(c *fiber.Ctx) error {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Prompt == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Prompt is required"))
	}

	image, err := s.assistClient.GenerateImage(c.Context(), req.Prompt)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "assist image failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  "Image assist is unavailable right now",
			"prompt": req.Prompt,
		})
	}

	return c.JSON(fiber.Map{"image": image})
}
