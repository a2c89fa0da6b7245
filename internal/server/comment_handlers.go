package server

import (
	"clubhub/internal/mapper"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.commentSvc.ListComments(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req mapper.Comment
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.PostID = c.Params("id")

	actor, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	comment, err := s.commentSvc.AddComment(c.Context(), req, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId. The
// comment author, the post author, and admins may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID := c.Params("id")
	commentID := c.Params("commentId")

	comments, err := s.commentSvc.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	var target *mapper.Comment
	for i := range comments {
		if comments[i].ID == commentID {
			target = &comments[i]
			break
		}
	}
	if target == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", commentID))
	}

	actor, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if target.UserID != actor.ID && post.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not allowed to delete this comment"))
	}

	if err := s.commentSvc.DeleteComment(c.Context(), commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
