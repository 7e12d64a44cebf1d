package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/linkmini/backend/internal/middleware"
	"github.com/linkmini/backend/internal/models"
	"github.com/linkmini/backend/internal/repositories"
	"github.com/linkmini/backend/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

// memoryUserRepo is an in-memory UserRepository for handler tests
type memoryUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[uint]models.User{}}
}

func (r *memoryUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memoryUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) AppendPostID(userID uint, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PostIDs = append(u.PostIDs, postID)
	r.users[userID] = u
	return nil
}

func (r *memoryUserRepo) RemovePostID(userID uint, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	kept := []string{}
	for _, id := range u.PostIDs {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.PostIDs = kept
	r.users[userID] = u
	return nil
}

func (r *memoryUserRepo) SearchUsers(query string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

// memoryPostRepo is an in-memory PostRepository for handler tests
type memoryPostRepo struct {
	mu      sync.Mutex
	nextSeq int
	seq     map[string]int
	posts   map[string]models.Post
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{seq: map[string]int{}, posts: map[string]models.Post{}}
}

func (r *memoryPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.nextSeq++
	r.seq[post.ID.Hex()] = r.nextSeq
	r.posts[post.ID.Hex()] = *post
	return nil
}

func (r *memoryPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return &p, nil
}

func (r *memoryPostRepo) GetFeed(_ context.Context, viewerID uint) ([]models.Post, error) {
	return r.filtered(func(p models.Post) bool { return p.AuthorID != viewerID }), nil
}

func (r *memoryPostRepo) GetPostsByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	return r.filtered(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memoryPostRepo) filtered(keep func(models.Post) bool) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	// Newest first
	sort.Slice(out, func(i, j int) bool {
		return r.seq[out[i].ID.Hex()] > r.seq[out[j].ID.Hex()]
	})
	return out
}

func (r *memoryPostRepo) UpdateContent(_ context.Context, id string, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Content = content
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return nil
}

func (r *memoryPostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryPostRepo) SetLikes(_ context.Context, id string, likes []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Likes = likes
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return nil
}

func (r *memoryPostRepo) PushComment(_ context.Context, id string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Comments = append(p.Comments, comment)
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return nil
}

// newTestServer wires handlers against in-memory repositories, mirroring the
// router's real route layout.
func newTestServer() (*echo.Echo, *memoryUserRepo, *memoryPostRepo) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newMemoryUserRepo()
	posts := newMemoryPostRepo()

	authHandler := NewAuthHandler(users, testJWTSecret, time.Hour)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"))

	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(testJWTSecret, users))

	userHandler := NewUserHandler(users)
	userHandler.RegisterProfileRoutes(api.Group("/profile"))
	api.GET("/user/search", userHandler.SearchUsers)

	postGroup := api.Group("/post")
	NewLikeHandler(posts).RegisterLikeRoutes(postGroup)
	NewCommentHandler(posts, users).RegisterCommentRoutes(postGroup)
	NewPostHandler(posts, users).RegisterPostRoutes(postGroup)

	return e, users, posts
}
