package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/items-api/internal/config"
	"github.com/shinyyama/items-api/internal/handler"
	"github.com/shinyyama/items-api/internal/repository"
	"github.com/shinyyama/items-api/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.JSONSerializer = handler.JSONSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(corsConfig(cfg.CORSAllowOrigins)))

	itemRepo := repository.NewItemRepository(db)
	itemSvc := service.NewItemService(itemRepo)
	itemHandler := handler.NewItemHandler(itemSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    cfg.GitSHA,
			"build_time": cfg.BuildTime,
		})
	})

	itemHandler.Register(e.Group("/items"))

	return &Server{e: e}
}

// corsConfig allows the configured origins, or any localhost origin when none
// are configured.
func corsConfig(origins []string) middleware.CORSConfig {
	cfg := middleware.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
		return cfg
	}
	cfg.AllowOriginFunc = func(origin string) (bool, error) {
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		host := strings.ToLower(u.Hostname())
		return host == "localhost" || host == "127.0.0.1", nil
	}
	return cfg
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}
