package server

import (
	"clubhub/internal/mapper"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondServiceError translates an AppError into the matching HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		}
	}
	return models.RespondWithError(c, status, err)
}

// currentUserID reads the member id placed in locals by AuthRequired.
func (s *Server) currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// currentUser loads the acting member and maps it to the session user shape
// used for author snapshots.
func (s *Server) currentUser(c *fiber.Ctx) (mapper.User, error) {
	row, err := s.memberRepo.GetByID(c.Context(), s.currentUserID(c))
	if err != nil {
		return mapper.User{}, err
	}
	return mapper.SessionUser(row), nil
}
