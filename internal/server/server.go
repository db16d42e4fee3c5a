package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"live-market/config"
	"live-market/internal/handler"
	"live-market/internal/middleware"
	"live-market/internal/services"
	"live-market/internal/transport/httpdto"
	"live-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Chat    *handler.ChatHandler
	Stream  *handler.StreamHandler
	Product *handler.ProductHandler
	User    *handler.UserHandler
	Upload  *handler.UploadHandler
}

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handler.RegisterFieldNames()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(middleware.Recovery(l))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, health HealthFunc) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("route not found", httpdto.CodeNotFound))
	})
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httpdto.NewErrorResponse("method not allowed", httpdto.CodeMethodNotAllowed))
	})

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": "healthy"})
	})

	required := middleware.AuthRequired(authService)
	optional := middleware.AuthOptional(authService)

	chat := s.engine.Group("/chat", required)
	{
		chat.POST("", handlers.Chat.FindOrCreate)
		chat.GET("", handlers.Chat.List)
		chat.DELETE("", handlers.Chat.Delete)
		chat.GET("/:id/messages", handlers.Chat.Messages)
		chat.POST("/:id/messages", handlers.Chat.Send)
	}

	products := s.engine.Group("/products")
	{
		products.GET("", optional, handlers.Product.List)
		products.POST("", required, handlers.Product.Create)
		products.POST("/:id/fav", required, handlers.Product.ToggleFavorite)
	}
	s.engine.GET("/profile/loved", required, handlers.Product.Loved)

	streams := s.engine.Group("/streams")
	{
		streams.GET("", handlers.Stream.List)
		streams.POST("", required, handlers.Stream.Create)
		streams.GET("/:id", handlers.Stream.Get)
		streams.POST("/:id/messages", required, handlers.Stream.AppendMessage)
	}

	users := s.engine.Group("/users")
	{
		users.POST("", handlers.User.Register)
		users.POST("/login", handlers.User.Login)
		users.POST("/logout", required, handlers.User.Logout)
		users.GET("/me", required, handlers.User.Me)
	}

	s.engine.POST("/uploads/images", required, handlers.Upload.PresignImage)
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}
	return nil
}
