package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SHOMANS/tourer-backend/internal/auth"
	"github.com/SHOMANS/tourer-backend/internal/cache"
	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/handlers"
	"github.com/SHOMANS/tourer-backend/internal/messaging"
	"github.com/SHOMANS/tourer-backend/internal/middleware"
	"github.com/SHOMANS/tourer-backend/internal/repository"
	"github.com/SHOMANS/tourer-backend/internal/search"
	"github.com/SHOMANS/tourer-backend/internal/service"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	db     *database.DB
	cache  *cache.Client
	nats   *messaging.NATSClient
}

// NewServer wires the full application: database, optional cache, search
// index and event bus, then the service and handler layers. Redis,
// Elasticsearch and NATS are optional; the server runs without them.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var cacheClient *cache.Client
	if cfg.Cache.Addr != "" {
		cacheClient, err = cache.NewClient(cfg.Cache)
		if err != nil {
			slog.Warn("Redis unavailable, caching disabled", "error", err)
			cacheClient = nil
		} else {
			slog.Info("Connected to Redis", "addr", cfg.Cache.Addr)
		}
	}

	var searcher service.Searcher
	if cfg.Elasticsearch.Enabled() {
		esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, search index disabled", "error", err)
		} else {
			searcher = esClient
		}
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		slog.Warn("NATS unavailable, event publishing disabled", "error", err)
		natsClient = nil
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	repos := repository.NewRepositories(db)

	var publisher service.Publisher
	if natsClient != nil {
		publisher = natsClient
	}

	services := service.NewServices(service.Dependencies{
		Repos:     repos,
		Tokens:    tokens,
		Cache:     cacheClient,
		Searcher:  searcher,
		Publisher: publisher,
		Config:    cfg,
	})

	h := handlers.New(services, cfg.Upload)

	server := &Server{
		config: cfg,
		db:     db,
		cache:  cacheClient,
		nats:   natsClient,
	}
	server.router = server.buildRouter(h, tokens)

	return server, nil
}

func (s *Server) buildRouter(h *handlers.Handlers, tokens *auth.TokenManager) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())

	router.GET("/health", s.healthCheck)
	router.GET("/metrics", middleware.MetricsHandler())
	router.Static(s.config.Upload.PublicPath, s.config.Upload.Dir)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/me", middleware.RequireAuth(tokens), h.Profile)
	}

	packages := api.Group("/packages")
	{
		packages.GET("", h.ListPackages)
		packages.GET("/popular", h.ListPopularPackages)
		packages.GET("/categories", h.ListCategories)
		packages.GET("/slug/:slug", h.GetPackageBySlug)
		packages.GET("/:id", h.GetPackage)
		packages.GET("/:id/reviews", h.ListPackageReviews)
		packages.POST("/:id/reviews", middleware.RequireAuth(tokens), h.CreateReview)

		packages.POST("", middleware.RequireAdmin(tokens), h.CreatePackage)
		packages.PATCH("/:id", middleware.RequireAdmin(tokens), h.UpdatePackage)
		packages.DELETE("/:id", middleware.RequireAdmin(tokens), h.DeletePackage)
	}

	bookings := api.Group("/bookings", middleware.RequireAuth(tokens))
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/my-bookings", h.MyBookings)
		bookings.GET("/stats", middleware.RequireAdmin(tokens), h.BookingStats)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/confirm", middleware.RequireAdmin(tokens), h.ConfirmBooking)
		bookings.POST("/:id/complete", middleware.RequireAdmin(tokens), h.CompleteBooking)
		bookings.PATCH("/:id/payment", middleware.RequireAdmin(tokens), h.UpdatePaymentStatus)
		bookings.DELETE("/:id", h.DeleteBooking)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", middleware.RequireAdmin(tokens), h.ListAllReviews)
		reviews.DELETE("/:id", middleware.RequireAuth(tokens), h.DeleteReview)
		reviews.POST("/:id/approve", middleware.RequireAdmin(tokens), h.ApproveReview)
	}

	carousel := api.Group("/carousel")
	{
		carousel.GET("", h.ListCarousel)
		carousel.GET("/admin", middleware.RequireAdmin(tokens), h.ListAllCarousel)
		carousel.POST("", middleware.RequireAdmin(tokens), h.CreateCarouselItem)
		carousel.PATCH("/:id", middleware.RequireAdmin(tokens), h.UpdateCarouselItem)
		carousel.DELETE("/:id", middleware.RequireAdmin(tokens), h.DeleteCarouselItem)
	}

	upload := api.Group("/upload")
	{
		upload.POST("/image", middleware.RequireAdmin(tokens), h.UploadImage)
		upload.POST("/images", middleware.RequireAdmin(tokens), h.UploadImages)
		upload.POST("/review-images", middleware.RequireAuth(tokens), h.UploadReviewImages)
	}

	admin := api.Group("/admin", middleware.RequireAdmin(tokens))
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/users", h.ListUsers)
	}

	return router
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Router exposes the gin engine for the http server and tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Cleanup closes every backing connection
func (s *Server) Cleanup() {
	if err := s.nats.Close(); err != nil {
		slog.Error("Failed to close NATS connection", "error", err)
	}
	if err := s.cache.Close(); err != nil {
		slog.Error("Failed to close Redis connection", "error", err)
	}
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}
