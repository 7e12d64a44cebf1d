package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkmini/backend/internal/middleware"
	"github.com/linkmini/backend/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{postRepository: postRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.PUT("/like/:id", h.ToggleLike)
}

// ToggleLike flips the viewer's membership in a post's like set and returns
// the resulting set. Read-modify-write against the current document; two
// concurrent toggles by the same user race with last-write-wins.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	liked := false
	likes := make([]uint, 0, len(post.Likes)+1)
	for _, id := range post.Likes {
		if id == user.ID {
			liked = true
			continue
		}
		likes = append(likes, id)
	}
	if !liked {
		likes = append(likes, user.ID)
	}

	if err := h.postRepository.SetLikes(c.Request().Context(), postID, likes); err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	message := "Post liked"
	if liked {
		message = "Post unliked"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"likes":   likes,
	})
}
