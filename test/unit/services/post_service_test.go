package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	impl "github.com/imageon/fedipost/internal/application/services"
	"github.com/imageon/fedipost/internal/core/domain/post"
	"github.com/imageon/fedipost/test/mocks"
)

func TestCreatePost_RejectsEmptyUsername(t *testing.T) {
	svc := impl.NewPostService(&mocks.PostRepositoryMock{}, "http://localhost:8080", nil)

	_, err := svc.CreatePost(context.Background(), &post.CreatePostRequest{Username: "   ", Content: "hi"})
	if !errors.Is(err, post.ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
}

func TestCreatePost_RejectsEmptyContent(t *testing.T) {
	created := false
	repo := &mocks.PostRepositoryMock{CreateFn: func(ctx context.Context, p *post.Post) error {
		created = true
		return nil
	}}
	svc := impl.NewPostService(repo, "http://localhost:8080", nil)

	_, err := svc.CreatePost(context.Background(), &post.CreatePostRequest{Username: "alice", Content: " \n\t "})
	if !errors.Is(err, post.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if created {
		t.Fatalf("invalid input must be rejected before any store call")
	}
}

func TestCreatePost_AssignsFieldsAndTrims(t *testing.T) {
	var stored *post.Post
	repo := &mocks.PostRepositoryMock{CreateFn: func(ctx context.Context, p *post.Post) error {
		stored = p
		return nil
	}}
	svc := impl.NewPostService(repo, "http://localhost:8080/", nil)

	got, err := svc.CreatePost(context.Background(), &post.CreatePostRequest{Username: " alice ", Content: "  hello world  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || stored != got {
		t.Fatalf("service must persist the post it returns")
	}
	if got.Username != "alice" || got.Content != "hello world" {
		t.Fatalf("input not trimmed: %+v", got)
	}
	if got.ID == "" {
		t.Fatalf("id not assigned")
	}
	if got.AttributedTo != "http://localhost:8080/users/alice" {
		t.Fatalf("wrong attributedTo: %s", got.AttributedTo)
	}
	if _, err := time.Parse(time.RFC3339, got.CreatedAt); err != nil {
		t.Fatalf("createdAt is not RFC 3339: %q", got.CreatedAt)
	}
	if got.SortKey() != "alice#"+got.CreatedAt {
		t.Fatalf("composite key out of lock-step: %q", got.SortKey())
	}
}

func TestCreatePost_StoreErrorPropagates(t *testing.T) {
	repo := &mocks.PostRepositoryMock{CreateFn: func(ctx context.Context, p *post.Post) error {
		return errors.New("write rejected")
	}}
	svc := impl.NewPostService(repo, "http://localhost:8080", nil)

	if _, err := svc.CreatePost(context.Background(), &post.CreatePostRequest{Username: "alice", Content: "hi"}); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestGetPostsByUsername_UnknownUserIsEmpty(t *testing.T) {
	svc := impl.NewPostService(&mocks.PostRepositoryMock{}, "http://localhost:8080", nil)

	got, err := svc.GetPostsByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestGetPostByID_AbsentIsNil(t *testing.T) {
	svc := impl.NewPostService(&mocks.PostRepositoryMock{}, "http://localhost:8080", nil)

	got, err := svc.GetPostByID(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", got, err)
	}
}
