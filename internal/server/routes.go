package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.POST("/upload", s.UploadAssets)
	e.GET("/files", s.ListAssets)
	e.DELETE("/files/:id", s.DeleteAsset)

	e.GET("/health", s.healthHandler)

	// Any unrouted path announces the public base URL.
	e.RouteNotFound("/*", s.ServerInfoHandler)

	return e
}
