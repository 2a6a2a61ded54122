package server

import (
	"context"
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// コマンド投入の最小間隔（キュー側のlimiter相当）
const commandInterval = time.Second

type Server struct {
	echo *echo.Echo
	addr string
}

func New(cfg config.Config, messageH *handler.MessageHandler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	messageH.RegisterRoutes(e,
		appmw.AuthJWT(cfg.JWTSecret),
		appmw.RateLimit(commandInterval),
	)

	return &Server{echo: e, addr: ":" + cfg.Port}
}

func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
