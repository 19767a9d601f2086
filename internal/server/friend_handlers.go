package server

import (
	"gather/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.GetFriends(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	request, err := s.friendService.SendFriendRequest(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	requests, pagination, err := s.friendService.GetPendingRequests(c.UserContext(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"requests":   requests,
		"pagination": pagination,
	})
}

// GetSentRequests handles GET /api/friends/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	requests, pagination, err := s.friendService.GetSentRequests(c.UserContext(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"requests":   requests,
		"pagination": pagination,
	})
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}
	request, err := s.friendService.AcceptFriendRequest(c.UserContext(), currentUserID(c), requestID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(request)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}
	request, err := s.friendService.RejectFriendRequest(c.UserContext(), currentUserID(c), requestID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(request)
}

// Unfriend handles DELETE /api/friends/:userId
func (s *Server) Unfriend(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.friendService.Unfriend(c.UserContext(), currentUserID(c), targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend removed"})
}
