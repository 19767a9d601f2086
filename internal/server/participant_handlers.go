package server

import (
	"gather/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleJoin handles POST /api/posts/:id/join
func (s *Server) ToggleJoin(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	participant, err := s.participationService.ToggleJoin(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(participant)
}

// GetPostParticipants handles GET /api/posts/:id/participants
func (s *Server) GetPostParticipants(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status := models.ParticipantStatus(c.Query("status", string(models.ParticipantPending)))
	if status != models.ParticipantPending && status != models.ParticipantApproved &&
		status != models.ParticipantRejected && status != models.ParticipantCancelled {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid participant status"))
	}

	page, limit := parsePagination(c)
	participants, pagination, err := s.participationService.ListParticipants(c.UserContext(), currentUserID(c), postID, status, page, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"participants": participants,
		"pagination":   pagination,
	})
}

// GetJoinStatus handles GET /api/posts/:id/join-status
func (s *Server) GetJoinStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	status, err := s.participationService.JoinStatus(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// DecideParticipant handles POST /api/participants/:id/decision
func (s *Server) DecideParticipant(c *fiber.Ctx) error {
	participantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Status models.ParticipantStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	participant, err := s.participationService.Decide(c.UserContext(), currentUserID(c), participantID, req.Status)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(participant)
}

// GetJoinedPosts handles GET /api/users/me/joined
func (s *Server) GetJoinedPosts(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	participants, pagination, err := s.participationService.ListJoined(c.UserContext(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"participants": participants,
		"pagination":   pagination,
	})
}
