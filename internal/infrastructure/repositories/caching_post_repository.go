package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/imageon/fedipost/internal/core/domain/post"
	"github.com/imageon/fedipost/internal/core/ports"
)

// Cache key namespace: one key for the global aggregate, one per username for
// the per-owner aggregate, one per post id for the point entry.
const allPostsKey = "posts"

func userPostsKey(username string) string { return "user:" + username + ":posts" }
func postKey(id string) string           { return "post:" + id }

// CachingPostRepository decorates a PostRepository with read-through caching
// and invalidate-on-write for the two aggregate views.
//
// The cache is strictly best-effort: a cache failure degrades to a miss on the
// read paths and to a no-op on the write/invalidate paths, and never turns a
// successful durable operation into an error. Only durable-store failures
// propagate to callers.
type CachingPostRepository struct {
	inner   ports.PostRepository
	cache   ports.Cache
	postTTL time.Duration
	listTTL time.Duration
	logger  *logrus.Logger
	sf      singleflight.Group
}

// NewCachingPostRepository wraps inner with the post cache. cache may be nil,
// in which case every operation goes straight to the durable store.
func NewCachingPostRepository(inner ports.PostRepository, cache ports.Cache, postTTL, listTTL time.Duration, logger *logrus.Logger) *CachingPostRepository {
	return &CachingPostRepository{
		inner:   inner,
		cache:   cache,
		postTTL: postTTL,
		listTTL: listTTL,
		logger:  logger,
	}
}

// Create writes through to the durable store, then best-effort populates the
// per-id entry and invalidates the two aggregates that could now be stale
// (global list, owner's list). Other users' entries are never touched.
func (c *CachingPostRepository) Create(ctx context.Context, p *post.Post) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.cacheSet(ctx, postKey(p.ID), p, c.postTTL)
	c.cacheDelete(ctx, allPostsKey)
	c.cacheDelete(ctx, userPostsKey(p.Username))
	return nil
}

// GetByID reads through the per-id cache entry. Absence from the durable store
// is a nil result, never an error, and is not cached.
func (c *CachingPostRepository) GetByID(ctx context.Context, id string) (*post.Post, error) {
	var cached post.Post
	if c.cacheGet(ctx, postKey(id), &cached) {
		return &cached, nil
	}
	p, err := c.inner.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	c.cacheSet(ctx, postKey(id), p, c.postTTL)
	return p, nil
}

// ListAll returns every post, newest first, via the global aggregate entry.
func (c *CachingPostRepository) ListAll(ctx context.Context) ([]*post.Post, error) {
	return c.loadList(ctx, allPostsKey, func() ([]*post.Post, error) {
		return c.inner.ListAll(ctx)
	})
}

// ListByUsername returns one user's posts, newest first, via the per-owner
// aggregate entry.
func (c *CachingPostRepository) ListByUsername(ctx context.Context, username string) ([]*post.Post, error) {
	return c.loadList(ctx, userPostsKey(username), func() ([]*post.Post, error) {
		return c.inner.ListByUsername(ctx, username)
	})
}

// loadList is the shared read-through path for the aggregate views: cache hit
// returns immediately; on miss the durable load is coalesced with singleflight,
// sorted, and cached with the (shorter) list TTL.
func (c *CachingPostRepository) loadList(ctx context.Context, key string, loader func() ([]*post.Post, error)) ([]*post.Post, error) {
	var cached []*post.Post
	if c.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	res, err, _ := c.sf.Do(key, func() (any, error) {
		var again []*post.Post
		if c.cacheGet(ctx, key, &again) {
			return again, nil
		}
		posts, err := loader()
		if err != nil {
			return nil, err
		}
		sortNewestFirst(posts)
		c.cacheSet(ctx, key, posts, c.listTTL)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	posts, ok := res.([]*post.Post)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return posts, nil
}

// sortNewestFirst orders posts by created_at descending. RFC 3339 UTC strings
// compare lexicographically in time order; ordering among posts with equal
// timestamps is unspecified.
func sortNewestFirst(posts []*post.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
}

// cacheGet reads and decodes a cache entry into v. It reports a miss for every
// failure mode, distinguishing an unavailable cache (expected, fall back to
// the store) from a corrupt entry (unexpected, entry is dropped).
func (c *CachingPostRepository) cacheGet(ctx context.Context, key string, v any) bool {
	if c.cache == nil {
		return false
	}
	b, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.warn(err, key, "cache unavailable, falling back to store")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		c.warn(err, key, "corrupt cache entry, dropping it")
		_ = c.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (c *CachingPostRepository) cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.warn(err, key, "failed to encode cache entry")
		return
	}
	if err := c.cache.Set(ctx, key, b, ttl); err != nil {
		c.warn(err, key, "cache unavailable, continuing without cache")
	}
}

func (c *CachingPostRepository) cacheDelete(ctx context.Context, key string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, key); err != nil {
		c.warn(err, key, "cache unavailable, skipping invalidation")
	}
}

func (c *CachingPostRepository) warn(err error, key, msg string) {
	if c.logger != nil {
		c.logger.WithField("cache_key", key).WithError(err).Warn(msg)
	}
}

var _ ports.PostRepository = (*CachingPostRepository)(nil)
