package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	s.echo.GET("/", s.indexPage)

	// Federation discovery documents
	s.echo.GET("/.well-known/webfinger", s.webfinger)
	s.echo.GET("/.well-known/nodeinfo", s.nodeinfoDiscovery)
	s.echo.GET("/nodeinfo/2.0", s.nodeinfo)
	s.echo.GET("/users/:username", s.actorDocument)

	api := s.echo.Group("/api")
	api.POST("/posts", s.createPost, s.middleware.RateLimit.Handler())
	api.GET("/posts", s.listPosts)
	api.GET("/posts/:id", s.getPost)
	api.GET("/users/:username/posts", s.listUserPosts)
}
