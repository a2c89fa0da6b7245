package server

import (
	"clubhub/internal/mapper"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetEvents handles GET /api/events
func (s *Server) GetEvents(c *fiber.Ctx) error {
	events, err := s.eventService.ListEvents(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(events)
}

// CreateEvent handles POST /api/events (admin only)
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req mapper.Event
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.CreateEvent(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PUT /api/events/:id (admin only)
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	var req mapper.Event
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.UpdateEvent(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id (admin only)
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	if err := s.eventService.DeleteEvent(c.Context(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleAttendance handles POST /api/events/:id/attend
func (s *Server) ToggleAttendance(c *fiber.Ctx) error {
	event, err := s.eventService.ToggleAttendance(c.Context(), c.Params("id"), s.currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(event)
}
