package handlers

import (
	"github.com/linkmini/backend/internal/models"
	"github.com/linkmini/backend/internal/repositories"
)

// resolveUsers batch-fetches the authors referenced by a set of posts:
// post authors plus every comment author.
func resolveUsers(userRepo repositories.UserRepository, posts []models.Post) (map[uint]models.User, error) {
	seen := map[uint]bool{}
	ids := []uint{}
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, post := range posts {
		add(post.AuthorID)
		for _, comment := range post.Comments {
			add(comment.UserID)
		}
	}

	users, err := userRepo.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func buildCommentViews(users map[uint]models.User, comments []models.Comment) []models.CommentView {
	views := make([]models.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, models.CommentView{
			User: models.CommentAuthor{
				ID:   comment.UserID,
				Name: users[comment.UserID].Name,
			},
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return views
}

func buildPostView(users map[uint]models.User, post models.Post) models.PostView {
	author := users[post.AuthorID]
	likes := post.Likes
	if likes == nil {
		likes = []uint{}
	}
	return models.PostView{
		ID: post.ID.Hex(),
		Author: models.PostAuthor{
			ID:    post.AuthorID,
			Name:  author.Name,
			Email: author.Email,
		},
		Content:   post.Content,
		Likes:     likes,
		Comments:  buildCommentViews(users, post.Comments),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// buildPostViews resolves author names/emails and comment-author names for a
// list of posts, preserving order.
func buildPostViews(userRepo repositories.UserRepository, posts []models.Post) ([]models.PostView, error) {
	users, err := resolveUsers(userRepo, posts)
	if err != nil {
		return nil, err
	}
	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, buildPostView(users, post))
	}
	return views, nil
}
