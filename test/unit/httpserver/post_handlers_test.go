package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/imageon/fedipost/internal/core/domain/post"
	fedihttp "github.com/imageon/fedipost/internal/infrastructure/httpserver"
	"github.com/imageon/fedipost/test/mocks"
)

func newTestServer(t *testing.T, deps fedihttp.ServerDeps) *httptest.Server {
	t.Helper()
	cfg := &fedihttp.ServerConfig{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
		BaseURL:      "http://example.test",
	}
	srv := fedihttp.NewServer(cfg, logrus.New(), deps)
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(b))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestCreatePost_Created(t *testing.T) {
	svc := &mocks.PostServiceMock{}
	svc.CreatePostFn = func(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
		return &post.Post{
			ID:           "1",
			Username:     req.Username,
			Content:      req.Content,
			CreatedAt:    "2024-01-01T00:00:00Z",
			AttributedTo: "http://example.test/users/" + req.Username,
		}, nil
	}
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: svc})

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/posts", map[string]string{"username": "alice", "content": "hi"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created post.Post
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "1", created.ID)
	require.Equal(t, "alice", created.Username)
	require.Equal(t, "http://example.test/users/alice", created.AttributedTo)
}

func TestCreatePost_ValidationRejected(t *testing.T) {
	svc := &mocks.PostServiceMock{}
	svc.CreatePostFn = func(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
		return nil, post.ErrEmptyContent
	}
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: svc})

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/posts", map[string]string{"username": "alice", "content": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreatePost_StoreFailureIsServerError(t *testing.T) {
	svc := &mocks.PostServiceMock{}
	svc.CreatePostFn = func(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
		return nil, context.DeadlineExceeded
	}
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: svc})

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/posts", map[string]string{"username": "alice", "content": "hi"})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListPosts_OK(t *testing.T) {
	svc := &mocks.PostServiceMock{}
	svc.GetAllPostsFn = func(ctx context.Context) ([]*post.Post, error) {
		return []*post.Post{
			{ID: "2", Username: "bob", Content: "yo", CreatedAt: "2024-01-02T00:00:00Z"},
			{ID: "1", Username: "alice", Content: "hi", CreatedAt: "2024-01-01T00:00:00Z"},
		}, nil
	}
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: svc})

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []*post.Post
	require.NoError(t, json.Unmarshal(body, &posts))
	require.Len(t, posts, 2)
	require.Equal(t, "2", posts[0].ID)
}

func TestListUserPosts_OK(t *testing.T) {
	svc := &mocks.PostServiceMock{}
	svc.GetPostsByUsernameFn = func(ctx context.Context, username string) ([]*post.Post, error) {
		require.Equal(t, "alice", username)
		return []*post.Post{{ID: "1", Username: "alice", Content: "hi", CreatedAt: "2024-01-01T00:00:00Z"}}, nil
	}
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: svc})

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/users/alice/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []*post.Post
	require.NoError(t, json.Unmarshal(body, &posts))
	require.Len(t, posts, 1)
}

func TestGetPost_NotFound(t *testing.T) {
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: &mocks.PostServiceMock{}})

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/posts/missing", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePost_RateLimited(t *testing.T) {
	limiter := &mocks.RateLimiterServiceMock{}
	limiter.AllowFn = func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		return false, 0, 30, time.Now().Add(time.Minute), nil
	}
	ts := newTestServer(t, fedihttp.ServerDeps{PostService: &mocks.PostServiceMock{}, RateLimiterService: limiter})

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/posts", map[string]string{"username": "alice", "content": "hi"})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "30", resp.Header.Get("X-RateLimit-Limit"))
}
