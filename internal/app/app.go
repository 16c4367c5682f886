package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/therealrustam/yamdb-final/internal/access"
	apiHTTP "github.com/therealrustam/yamdb-final/internal/controller/http"
	"github.com/therealrustam/yamdb-final/internal/repo/persistent"
	"github.com/therealrustam/yamdb-final/internal/usecase"
	"github.com/therealrustam/yamdb-final/pkg/config"
	"github.com/therealrustam/yamdb-final/pkg/database"
	"github.com/therealrustam/yamdb-final/pkg/logger"
	"github.com/therealrustam/yamdb-final/pkg/mailer"
	"github.com/therealrustam/yamdb-final/pkg/middleware"
	"github.com/therealrustam/yamdb-final/pkg/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/therealrustam/yamdb-final/docs" // Swagger docs
)

type App struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *gorm.DB
	tokens     *token.Service
	mailClient *mailer.Client
	httpServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	mailClient, err := mailer.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create mail client: %v", err)
		return nil, err
	}

	return &App{
		cfg:        cfg,
		log:        log,
		db:         db,
		tokens:     token.NewService(cfg.JWTSecret),
		mailClient: mailClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	categoryRepo := persistent.NewCategoryRepository(a.db)
	genreRepo := persistent.NewGenreRepository(a.db)
	titleRepo := persistent.NewTitleRepository(a.db)
	reviewRepo := persistent.NewReviewRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.tokens, a.mailClient, a.log)
	userUseCase := usecase.NewUserUseCase(userRepo, a.log)
	catalogUseCase := usecase.NewCatalogUseCase(categoryRepo, genreRepo, titleRepo, a.log)
	reviewUseCase := usecase.NewReviewUseCase(titleRepo, reviewRepo, commentRepo, a.log)

	// Initialize HTTP handlers
	authHandler := apiHTTP.NewAuthHandler(authUseCase)
	userHandler := apiHTTP.NewUserHandler(userUseCase)
	catalogHandler := apiHTTP.NewCatalogHandler(catalogUseCase)
	reviewHandler := apiHTTP.NewReviewHandler(reviewUseCase)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(a.tokens, userRepo))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/token", authHandler.Token)
			auth.POST("/token/refresh", authHandler.Refresh)
		}

		users := api.Group("/users")
		{
			users.GET("/me", userHandler.Me)
			users.PATCH("/me", userHandler.PatchMe)

			admin := users.Group("", apiHTTP.Authorize(access.AdminOnly))
			{
				admin.GET("", userHandler.List)
				admin.POST("", userHandler.Create)
				admin.GET("/:username", userHandler.Get)
				admin.PATCH("/:username", userHandler.Patch)
				admin.DELETE("/:username", userHandler.Delete)
			}
		}

		catalogPolicy := apiHTTP.Authorize(access.AdminOrReadOnly)

		categories := api.Group("/categories", catalogPolicy)
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.DELETE("/:slug", catalogHandler.DeleteCategory)
		}

		genres := api.Group("/genres", catalogPolicy)
		{
			genres.GET("", catalogHandler.ListGenres)
			genres.POST("", catalogHandler.CreateGenre)
			genres.DELETE("/:slug", catalogHandler.DeleteGenre)
		}

		titles := api.Group("/titles")
		{
			titles.GET("", catalogPolicy, catalogHandler.ListTitles)
			titles.POST("", catalogPolicy, catalogHandler.CreateTitle)
			titles.GET("/:title_id", catalogPolicy, catalogHandler.GetTitle)
			titles.PATCH("/:title_id", catalogPolicy, catalogHandler.PatchTitle)
			titles.DELETE("/:title_id", catalogPolicy, catalogHandler.DeleteTitle)

			reviews := titles.Group("/:title_id/reviews",
				apiHTTP.Authorize(access.AuthenticatedOrReadOnly))
			{
				reviews.GET("", reviewHandler.ListReviews)
				reviews.POST("", reviewHandler.CreateReview)
				reviews.GET("/:review_id", reviewHandler.GetReview)
				reviews.PATCH("/:review_id", reviewHandler.PatchReview)
				reviews.DELETE("/:review_id", reviewHandler.DeleteReview)

				comments := reviews.Group("/:review_id/comments")
				{
					comments.GET("", reviewHandler.ListComments)
					comments.POST("", reviewHandler.CreateComment)
					comments.GET("/:comment_id", reviewHandler.GetComment)
					comments.PATCH("/:comment_id", reviewHandler.PatchComment)
					comments.DELETE("/:comment_id", reviewHandler.DeleteComment)
				}
			}
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Shutdown server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
