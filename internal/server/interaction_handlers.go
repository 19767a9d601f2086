package server

import (
	"gather/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleReaction handles POST /api/posts/:id/reactions
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Type models.InteractionType `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, interaction, err := s.interactionService.ToggleReaction(c.UserContext(), currentUserID(c), postID, req.Type)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"result":      result,
		"interaction": interaction,
	})
}

// GetPostCounts handles GET /api/posts/:id/counts
func (s *Server) GetPostCounts(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	counts, err := s.interactionService.Counts(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(counts)
}

// GetPostReactors handles GET /api/posts/:id/reactions
func (s *Server) GetPostReactors(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reaction := models.InteractionType(c.Query("type", string(models.InteractionLike)))
	if !models.ValidReaction(reaction) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Reaction type must be like or dislike"))
	}

	page, limit := parsePagination(c)
	users, pagination, err := s.interactionService.ListReactors(c.UserContext(), postID, reaction, page, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": pagination,
	})
}
