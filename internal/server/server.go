package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/hotelops-dashboard/internal/config"
	"github.com/gravadigital/hotelops-dashboard/internal/handlers"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
	"github.com/gravadigital/hotelops-dashboard/internal/middleware/events"
	"github.com/gravadigital/hotelops-dashboard/internal/middleware/session"
	sessions "github.com/gravadigital/hotelops-dashboard/internal/session"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
	"github.com/gravadigital/hotelops-dashboard/internal/web"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	sessions   *sessions.Manager
	previews   storage.PreviewStore
}

// New creates a new server instance
func New(cfg *config.Config, manager *sessions.Manager, previews storage.PreviewStore) *Server {
	return &Server{
		config:   cfg,
		sessions: manager,
		previews: previews,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		// El write timeout cubre el OCR más la recarga de huéspedes
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.config.Backend.RequestTimeout*2 + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port, "backend", s.config.Backend.BaseURL)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Router configures the HTTP router with middleware and routes
func (s *Server) Router() (*gin.Engine, error) {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if s.config.Server.GinMode != "" {
		gin.SetMode(s.config.Server.GinMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = s.config.Upload.MaxFileSize

	router.Use(events.CreateEvent())
	router.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "HotelOps dashboard is running",
			"status":  "healthy",
		})
	})

	dashboardHandler := handlers.NewDashboardHandler(s.previews, s.config.Upload.MaxFileSize)
	s.setupRoutes(router, dashboardHandler)

	return router, nil
}

// setupRoutes configures the dashboard and its JSON state endpoint
func (s *Server) setupRoutes(router *gin.Engine, dashboardHandler *handlers.DashboardHandler) {
	secure := s.config.IsProduction()
	startSession := session.Start(s.sessions, secure)
	formSession := session.Require(s.sessions, secure, session.RedirectHome)
	resourceSession := session.Require(s.sessions, secure, session.NotFound)

	// Only the dashboard page starts sessions
	router.GET("/", startSession, dashboardHandler.Show)

	forms := router.Group("/", formSession)
	{
		forms.POST("/scan", dashboardHandler.Scan)
		forms.POST("/guest", dashboardHandler.SaveGuest)
		forms.POST("/notify", dashboardHandler.Notify)
		forms.POST("/toast/dismiss", dashboardHandler.DismissToast)
		forms.GET("/guests/refresh", dashboardHandler.RefreshGuests)
	}

	router.GET("/preview/:id", resourceSession, dashboardHandler.Preview)

	corsConfig := cors.DefaultConfig()
	origins := config.SplitList(s.config.CORS.AllowOrigins)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = config.SplitList(s.config.CORS.AllowMethods)
	corsConfig.AllowHeaders = config.SplitList(s.config.CORS.AllowHeaders)

	api := router.Group("/api", cors.New(corsConfig), resourceSession)
	{
		api.GET("/state", dashboardHandler.State)
	}
}
