// Package webserver owns the Echo instance: middleware, serialization
// and lifecycle. Handler packages register their routes on groups
// obtained from the server; there is no package-global route registry.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/config"
)

const apiVersion = "1.0.0"

type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
}

func New(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Web.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(requestLogger())

	ws := &WebServer{cfg: cfg, root: e}
	ws.registerRootRoutes()
	return ws
}

// Echo exposes the underlying instance for tests.
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Group creates a route group for a handler package to register on.
func (ws *WebServer) Group(prefix string, m ...echo.MiddlewareFunc) *echo.Group {
	return ws.root.Group(prefix, m...)
}

func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.cfg.Web.Host, ws.cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return ws.root.Start(addr)
}

func (ws *WebServer) Shutdown(ctx context.Context) error {
	return ws.root.Shutdown(ctx)
}

func (ws *WebServer) registerRootRoutes() {
	ws.root.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Kalai Medical Center API",
			"status":  "active",
			"version": apiVersion,
		})
	})
	ws.root.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "healthy"})
	})
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
