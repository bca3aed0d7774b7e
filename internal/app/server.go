// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/config"
	"ktm_rentals_backend/internal/filestorage"
	"ktm_rentals_backend/internal/firebase"
	"ktm_rentals_backend/internal/jobs"
	"ktm_rentals_backend/internal/middleware"
	platformElasticsearch "ktm_rentals_backend/internal/platform/elasticsearch"
	"ktm_rentals_backend/internal/room"
	"ktm_rentals_backend/internal/shared"
	"ktm_rentals_backend/internal/submission"
	"ktm_rentals_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	userHandler       *user.Handler
	submissionHandler *submission.Handler
	roomHandler       *room.Handler
	uploadHandler     *filestorage.Handler

	// Jobs
	loginPurgeJob *jobs.LoginPurgeJob

	// Middleware instances
	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc

	// Exported for the sync subcommand in main.
	ESClient  *platformElasticsearch.ESClientWrapper
	AppLogger *zap.Logger
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	submissionHandler *submission.Handler,
	roomHandler *room.Handler,
	uploadHandler *filestorage.Handler,
	loginPurgeJob *jobs.LoginPurgeJob,
	db *gorm.DB,
	esClient *platformElasticsearch.ESClientWrapper,
	firebaseService *firebase.FirebaseService,
	userService shared.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Metrics())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, userService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "KTM Rentals API is healthy!"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stored images are served from the same process in the default setup.
	router.Static("/uploads/files", cfg.ImageStoragePath)

	v1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(v1, authMW)
	uploadHandler.RegisterRoutes(v1, authMW)
	submissionHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	roomHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:        httpServer,
		router:            router,
		cfg:               cfg,
		logger:            logger,
		userHandler:       userHandler,
		submissionHandler: submissionHandler,
		roomHandler:       roomHandler,
		uploadHandler:     uploadHandler,
		loginPurgeJob:     loginPurgeJob,
		authMW:            authMW,
		adminRoleMW:       adminRoleMW,
		ESClient:          esClient,
		AppLogger:         logger,
	}, nil
}

func (s *Server) Start() error {
	if s.loginPurgeJob != nil {
		if err := s.loginPurgeJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start login purge job", zap.Error(err))
		}
	} else {
		s.logger.Info("Login purge job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.loginPurgeJob != nil {
		s.loginPurgeJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
