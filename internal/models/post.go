package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB. Likes and comments are embedded
// in the document, so a like-toggle or comment-append touches one document.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"` // Immutable after creation
	Content   string             `json:"content" bson:"content"`
	Likes     []uint             `json:"likes" bson:"likes"` // Each user id appears at most once
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Comment is embedded in a post; append-only from the API's perspective
type Comment struct {
	UserID    uint      `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// PostAuthor is the resolved author shape embedded in post responses
type PostAuthor struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommentView is a comment with its author's name resolved
type CommentView struct {
	User      CommentAuthor `json:"user"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"created_at"`
}

// CommentAuthor is the resolved comment-author shape
type CommentAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PostView is a post with author and comment-author names resolved
type PostView struct {
	ID        string        `json:"id"`
	Author    PostAuthor    `json:"author"`
	Content   string        `json:"content"`
	Likes     []uint        `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
