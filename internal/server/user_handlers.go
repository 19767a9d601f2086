package server

import (
	"gather/internal/geo"
	"gather/internal/models"
	"gather/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyLocation handles PUT /api/users/me/location
func (s *Server) UpdateMyLocation(c *fiber.Ctx) error {
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	point := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if !point.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid coordinates"))
	}

	userID := currentUserID(c)
	if err := s.userRepo.UpdateLocation(c.UserContext(), userID, req.Latitude, req.Longitude); err != nil {
		return models.RespondWithAppError(c, err)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, limit := parsePagination(c)

	posts, pagination, err := s.postService.ListUserPosts(c.UserContext(), viewerID(c), targetID, service.ListOptions{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": pagination,
	})
}
