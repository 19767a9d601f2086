package server

import (
	"gather/internal/models"
	"gather/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content          string                  `json:"content"`
		Privacy          models.PostPrivacy      `json:"privacy"`
		ImageURLs        string                  `json:"image_urls"`
		Latitude         float64                 `json:"latitude"`
		Longitude        float64                 `json:"longitude"`
		SelectedLocation models.SelectedLocation `json:"selected_location"`
		MaxParticipants  *int                    `json:"max_participants"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), service.CreatePostInput{
		Content:          req.Content,
		Privacy:          req.Privacy,
		ImageURLs:        req.ImageURLs,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		SelectedLocation: req.SelectedLocation,
		MaxParticipants:  req.MaxParticipants,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	posts, pagination, err := s.postService.ListPosts(c.UserContext(), viewerID(c), service.ListOptions{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": pagination,
	})
}

// GetActivePosts handles GET /api/posts/active
func (s *Server) GetActivePosts(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	posts, pagination, err := s.postService.ListActivePosts(c.UserContext(), viewerID(c), service.ListOptions{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": pagination,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.postService.GetPost(c.UserContext(), viewerID(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var patch models.PostPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), currentUserID(c), postID, patch)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
