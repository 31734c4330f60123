package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imageon/fedipost/internal/core/domain/post"
	"github.com/imageon/fedipost/internal/core/ports"
	"github.com/imageon/fedipost/internal/infrastructure/db"
)

// PostRepository implements the durable post store on Postgres.
// Every write carries the username_created_at composite key so the
// secondary index stays in lock-step with username and created_at.
type PostRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(database *db.Database, logger *logrus.Logger) ports.PostRepository {
	return &PostRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a post as a single atomic row write.
func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (id, username, content, created_at, attributed_to, username_created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Username, p.Content, p.CreatedAt, p.AttributedTo, p.SortKey())
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": p.ID, "username": p.Username}).WithError(err).Error("db: failed to create post")
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"post_id": p.ID, "username": p.Username}).Info("db: post created")
	}

	return nil
}

// GetByID retrieves a post by primary key. Returns (nil, nil) when absent.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	query := `
		SELECT id, username, content, created_at, attributed_to
		FROM posts
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"post_id": id}).Debug("db: post not found")
			}
			return nil, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": id}).WithError(err).Error("db: failed to get post by ID")
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return &p, nil
}

// ListAll scans every post. No ordering is imposed here; the caller sorts by
// created_at at read time.
func (r *PostRepository) ListAll(ctx context.Context) ([]*post.Post, error) {
	posts := []*post.Post{}
	query := `
		SELECT id, username, content, created_at, attributed_to
		FROM posts`

	err := r.db.DB.SelectContext(ctx, &posts, query)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list posts")
		}
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// ListByUsername runs the secondary-index range query for one owner.
// An unknown username yields an empty slice, not an error.
func (r *PostRepository) ListByUsername(ctx context.Context, username string) ([]*post.Post, error) {
	posts := []*post.Post{}
	query := `
		SELECT id, username, content, created_at, attributed_to
		FROM posts
		WHERE username = $1
		ORDER BY username_created_at DESC`

	err := r.db.DB.SelectContext(ctx, &posts, query, username)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Error("db: failed to list posts by username")
		}
		return nil, fmt.Errorf("failed to list posts for user %s: %w", username, err)
	}

	return posts, nil
}
