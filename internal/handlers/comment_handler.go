package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/linkmini/backend/internal/middleware"
	"github.com/linkmini/backend/internal/models"
	"github.com/linkmini/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comment/:id", h.AddComment)
	g.GET("/comments/:id", h.GetComments)
}

// AddComment appends a comment to a post and returns the full comment
// sequence with author names resolved. Comments are append-only.
func (h *CommentHandler) AddComment(c echo.Context) error {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is required")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is required")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	comment := models.Comment{
		UserID:    user.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := h.postRepository.PushComment(c.Request().Context(), postID, comment); err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	post.Comments = append(post.Comments, comment)
	users, err := resolveUsers(h.userRepository, []models.Post{*post})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Comment added",
		"comments": buildCommentViews(users, post.Comments),
	})
}

// GetComments retrieves a post's comments with author names resolved
func (h *CommentHandler) GetComments(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	users, err := resolveUsers(h.userRepository, []models.Post{*post})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, buildCommentViews(users, post.Comments))
}
