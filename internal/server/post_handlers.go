package server

import (
	"clubhub/internal/mapper"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req mapper.Post
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.CreatePost(c.Context(), req, author)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author or an admin may
// delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id := c.Params("id")

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the author or an admin can delete a post"))
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	actor, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.ToggleLike(c.Context(), c.Params("id"), actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
