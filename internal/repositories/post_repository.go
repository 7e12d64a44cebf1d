package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/linkmini/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetFeed(ctx context.Context, viewerID uint) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	UpdateContent(ctx context.Context, id string, content string) error
	DeletePost(ctx context.Context, id string) error
	SetLikes(ctx context.Context, id string, likes []uint) error
	PushComment(ctx context.Context, id string, comment models.Comment) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a stored post
		return primitive.NilObjectID, ErrPostNotFound
	}
	return objID, nil
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetFeed retrieves all posts not authored by the viewer, newest first
func (r *MongoPostRepository) GetFeed(ctx context.Context, viewerID uint) ([]models.Post, error) {
	return r.findSorted(ctx, bson.M{"author_id": bson.M{"$ne": viewerID}})
}

// GetPostsByAuthor retrieves all posts by a given author, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return r.findSorted(ctx, bson.M{"author_id": authorID})
}

func (r *MongoPostRepository) findSorted(ctx context.Context, filter bson.M) ([]models.Post, error) {
	posts := []models.Post{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateContent replaces the content of an existing post
func (r *MongoPostRepository) UpdateContent(ctx context.Context, id string, content string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"content":    content,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// SetLikes replaces the like set of a post. Deliberately a plain $set so a
// toggle is read-modify-write with last-write-wins, matching the original
// single-document consistency model.
func (r *MongoPostRepository) SetLikes(ctx context.Context, id string, likes []uint) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"likes":      likes,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// PushComment appends a comment to a post's embedded comment list
func (r *MongoPostRepository) PushComment(ctx context.Context, id string, comment models.Comment) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
