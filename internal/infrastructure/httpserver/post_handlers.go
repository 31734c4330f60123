package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imageon/fedipost/internal/core/domain/post"
)

// Post handlers
func (s *Server) createPost(c echo.Context) error {
	var req post.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := s.postService.CreatePost(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, post.ErrEmptyUsername) || errors.Is(err, post.ErrEmptyContent) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create post")
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) listPosts(c echo.Context) error {
	posts, err := s.postService.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list posts")
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *Server) listUserPosts(c echo.Context) error {
	username := c.Param("username")
	posts, err := s.postService.GetPostsByUsername(c.Request().Context(), username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list posts")
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c echo.Context) error {
	p, err := s.postService.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get post")
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, p)
}
