package server

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// ServerInfoHandler answers any unrouted path with the public base
// URL of the service.
func (s *Server) ServerInfoHandler(ctx echo.Context) error {
	return ctx.String(200, fmt.Sprintf("Server running on - %s", s.baseURL))
}

func (s *Server) healthHandler(ctx echo.Context) error {
	return ctx.JSON(200, s.server.Health())
}
