package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/linkmini/backend/internal/middleware"
	"github.com/linkmini/backend/internal/models"
	"github.com/linkmini/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/create", h.CreatePost)
	g.GET("/feed", h.GetFeed)
	g.GET("/loggedUser", h.GetOwnPosts)
	g.GET("/:id", h.GetPost)
	g.PUT("/:id", h.UpdatePost)
	g.DELETE("/:id", h.DeletePost)
}

// CreatePost creates a new post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content is required")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content is required")
	}

	post := &models.Post{
		AuthorID: user.ID,
		Content:  content,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	// Back-reference on the owner's record
	if err := h.userRepository.AppendPostID(user.ID, post.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully",
		"data":    post,
	})
}

// GetFeed retrieves all posts not authored by the viewer, newest first
func (h *PostHandler) GetFeed(c echo.Context) error {
	user := middleware.CurrentUser(c)

	posts, err := h.postRepository.GetFeed(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	views, err := buildPostViews(h.userRepository, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, views)
}

// GetOwnPosts retrieves the viewer's own posts, newest first
func (h *PostHandler) GetOwnPosts(c echo.Context) error {
	user := middleware.CurrentUser(c)

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	views, err := buildPostViews(h.userRepository, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, echo.Map{"data": views})
}

// GetPost retrieves a single post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	views, err := buildPostViews(h.userRepository, []models.Post{*post})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, echo.Map{"data": views[0]})
}

// UpdatePost replaces the content of a post; only the author may do so
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content is required")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content is required")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}

	if err := h.postRepository.UpdateContent(c.Request().Context(), postID, content); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	post.Content = content

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post updated successfully",
		"data":    post,
	})
}

// DeletePost deletes a post; only the author may do so. The post id is also
// removed from the author's owned-post list.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	if err := h.userRepository.RemovePostID(user.ID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}
