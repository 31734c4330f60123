package mocks

import (
	"context"
	"time"

	"github.com/imageon/fedipost/internal/core/domain/post"
)

// PostRepositoryMock is a lightweight mock for PostRepository
type PostRepositoryMock struct {
	CreateFn         func(ctx context.Context, p *post.Post) error
	GetByIDFn        func(ctx context.Context, id string) (*post.Post, error)
	ListAllFn        func(ctx context.Context) ([]*post.Post, error)
	ListByUsernameFn func(ctx context.Context, username string) ([]*post.Post, error)
}

func (m *PostRepositoryMock) Create(ctx context.Context, p *post.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *PostRepositoryMock) GetByID(ctx context.Context, id string) (*post.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *PostRepositoryMock) ListAll(ctx context.Context) ([]*post.Post, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return []*post.Post{}, nil
}
func (m *PostRepositoryMock) ListByUsername(ctx context.Context, username string) ([]*post.Post, error) {
	if m.ListByUsernameFn != nil {
		return m.ListByUsernameFn(ctx, username)
	}
	return []*post.Post{}, nil
}

// CacheMock is a lightweight mock for Cache
type CacheMock struct {
	GetFn    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn func(ctx context.Context, key string) error
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}
func (m *CacheMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}

// PostServiceMock is a lightweight mock for PostService
type PostServiceMock struct {
	CreatePostFn         func(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error)
	GetAllPostsFn        func(ctx context.Context) ([]*post.Post, error)
	GetPostsByUsernameFn func(ctx context.Context, username string) ([]*post.Post, error)
	GetPostByIDFn        func(ctx context.Context, id string) (*post.Post, error)
}

func (m *PostServiceMock) CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, req)
	}
	return &post.Post{}, nil
}
func (m *PostServiceMock) GetAllPosts(ctx context.Context) ([]*post.Post, error) {
	if m.GetAllPostsFn != nil {
		return m.GetAllPostsFn(ctx)
	}
	return []*post.Post{}, nil
}
func (m *PostServiceMock) GetPostsByUsername(ctx context.Context, username string) ([]*post.Post, error) {
	if m.GetPostsByUsernameFn != nil {
		return m.GetPostsByUsernameFn(ctx, username)
	}
	return []*post.Post{}, nil
}
func (m *PostServiceMock) GetPostByID(ctx context.Context, id string) (*post.Post, error) {
	if m.GetPostByIDFn != nil {
		return m.GetPostByIDFn(ctx, id)
	}
	return nil, nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 1, 1, time.Now(), nil
}
