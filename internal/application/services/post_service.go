package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/imageon/fedipost/internal/core/domain/post"
	"github.com/imageon/fedipost/internal/core/ports"
)

// PostService validates input, assigns ids and timestamps, derives the
// attributedTo URI from the node's base URL, and delegates storage to the
// (usually caching) post repository.
type PostService struct {
	repo    ports.PostRepository
	baseURL string
	logger  *logrus.Logger
}

func NewPostService(repo ports.PostRepository, baseURL string, logger *logrus.Logger) ports.PostService {
	return &PostService{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
	username := strings.TrimSpace(req.Username)
	content := strings.TrimSpace(req.Content)
	if username == "" {
		return nil, post.ErrEmptyUsername
	}
	if content == "" {
		return nil, post.ErrEmptyContent
	}

	p := &post.Post{
		ID:           uuid.New().String(),
		Username:     username,
		Content:      content,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		AttributedTo: fmt.Sprintf("%s/users/%s", s.baseURL, username),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"post_id": p.ID, "username": p.Username}).Info("post created")
	}
	return p, nil
}

func (s *PostService) GetAllPosts(ctx context.Context) ([]*post.Post, error) {
	return s.repo.ListAll(ctx)
}

func (s *PostService) GetPostsByUsername(ctx context.Context, username string) ([]*post.Post, error) {
	return s.repo.ListByUsername(ctx, username)
}

// GetPostByID returns (nil, nil) when no post exists for the id.
func (s *PostService) GetPostByID(ctx context.Context, id string) (*post.Post, error) {
	return s.repo.GetByID(ctx, id)
}
