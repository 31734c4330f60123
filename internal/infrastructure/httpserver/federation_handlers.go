package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const activityJSONType = "application/activity+json"

// webfinger resolves acct: resources to the local actor URI.
func (s *Server) webfinger(c echo.Context) error {
	resource := c.QueryParam("resource")
	if !strings.HasPrefix(resource, "acct:") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid resource parameter")
	}

	username := strings.SplitN(strings.TrimPrefix(resource, "acct:"), "@", 2)[0]

	return c.JSON(http.StatusOK, map[string]any{
		"subject": resource,
		"links": []map[string]string{
			{
				"rel":  "self",
				"type": activityJSONType,
				"href": fmt.Sprintf("%s/users/%s", s.config.BaseURL, username),
			},
		},
	})
}

func (s *Server) nodeinfoDiscovery(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"links": []map[string]string{
			{
				"rel":  "http://nodeinfo.diaspora.software/ns/schema/2.0",
				"href": s.config.BaseURL + "/nodeinfo/2.0",
			},
		},
	})
}

// nodeinfo reports node metadata. localPosts is counted through the cached
// read path, so serving this document does not hit the store on every request.
func (s *Server) nodeinfo(c echo.Context) error {
	allPosts, err := s.postService.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"version": "2.0",
		"software": map[string]string{
			"name":    "fedipost",
			"version": "1.0.0",
		},
		"protocols": []string{"activitypub"},
		"services": map[string]any{
			"inbound":  []string{},
			"outbound": []string{},
		},
		"usage": map[string]any{
			"users":      map[string]int{"total": 1},
			"localPosts": len(allPosts),
		},
		"openRegistrations": false,
		"metadata": map[string]any{
			"nodeName":        "Fedipost",
			"nodeDescription": "A small federated social-posting node",
		},
	})
}

// actorDocument serves the ActivityPub Person document for a local user.
func (s *Server) actorDocument(c echo.Context) error {
	username := c.Param("username")
	actor := fmt.Sprintf("%s/users/%s", s.config.BaseURL, username)

	doc := map[string]any{
		"@context": []string{
			"https://www.w3.org/ns/activitystreams",
			"https://w3id.org/security/v1",
		},
		"id":                actor,
		"type":              "Person",
		"preferredUsername": username,
		"name":              username,
		"inbox":             actor + "/inbox",
		"outbox":            actor + "/outbox",
		"followers":         actor + "/followers",
		"following":         actor + "/following",
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.Blob(http.StatusOK, activityJSONType, b)
}
