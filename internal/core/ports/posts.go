package ports

import (
	"context"

	"github.com/imageon/fedipost/internal/core/domain/post"
)

// PostRepository defines the interface for post data operations.
// GetByID returns (nil, nil) when no post exists for the id; absence is not an error.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) error
	GetByID(ctx context.Context, id string) (*post.Post, error)
	ListAll(ctx context.Context) ([]*post.Post, error)
	ListByUsername(ctx context.Context, username string) ([]*post.Post, error)
}

// PostService defines the interface for post business logic.
// List results are ordered newest first by CreatedAt; ordering among posts with
// equal timestamps is unspecified.
type PostService interface {
	CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error)
	GetAllPosts(ctx context.Context) ([]*post.Post, error)
	GetPostsByUsername(ctx context.Context, username string) ([]*post.Post, error)
	GetPostByID(ctx context.Context, id string) (*post.Post, error)
}
