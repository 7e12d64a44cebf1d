package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/linkmini/backend/internal/middleware"
	"github.com/linkmini/backend/internal/models"
	"github.com/linkmini/backend/internal/repositories"
)

// UserHandler handles profile and user-lookup HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/view", h.ViewProfile)
}

// ViewProfile returns the authenticated user's public profile
func (h *UserHandler) ViewProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, user.Public())
}

// SearchUsers searches users by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return c.JSON(http.StatusOK, results)
}
