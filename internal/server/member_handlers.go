package server

import (
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMembers handles GET /api/users
func (s *Server) GetMembers(c *fiber.Ctx) error {
	members, err := s.memberService.GetMembers(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(members)
}

// UpdateMemberRole handles PUT /api/users/:id/role (admin only)
func (s *Server) UpdateMemberRole(c *fiber.Ctx) error {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	id := c.Params("id")
	if id == s.currentUserID(c) && req.Role != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Admins cannot demote themselves"))
	}

	member, err := s.memberService.UpdateMemberRole(c.Context(), id, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(member)
}

// RemoveMember handles DELETE /api/users/:id (admin only)
func (s *Server) RemoveMember(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == s.currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Admins cannot remove themselves"))
	}

	if err := s.memberService.RemoveMember(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
