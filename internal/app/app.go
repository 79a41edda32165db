package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authHTTP "vidstream/internal/controller/http"
	"vidstream/internal/repo/persistent"
	"vidstream/internal/usecase"
	"vidstream/pkg/cache"
	"vidstream/pkg/config"
	"vidstream/pkg/database"
	"vidstream/pkg/logger"
	"vidstream/pkg/middleware"
	"vidstream/pkg/queue"
	"vidstream/pkg/storage"
	"vidstream/pkg/token"

	_ "vidstream/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg          *config.Config
	log          *logger.Logger
	db           *gorm.DB
	redisClient  *redis.Client
	mediaStore   *storage.Client
	queueClient  *queue.Client
	tokenService *token.Service
	httpServer   *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis, rate limiting disabled: %v", err)
		redisClient = nil
	}

	mediaStore, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create media store client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ, continuing without events: %v", err)
		queueClient = nil
	}

	tokenService := token.NewService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
	)

	return &App{
		cfg:          cfg,
		log:          log,
		db:           db,
		redisClient:  redisClient,
		mediaStore:   mediaStore,
		queueClient:  queueClient,
		tokenService: tokenService,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	channelRepo := persistent.NewChannelRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)

	// A nil *queue.Client must stay a nil interface
	var publisher usecase.SubscriptionPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	// Use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.tokenService, a.mediaStore, a.log)
	channelUseCase := usecase.NewChannelUseCase(channelRepo, userRepo, publisher, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, channelRepo, a.log)

	// HTTP handlers
	session := authHTTP.NewSessionWriter(a.cfg, a.tokenService)
	authHandler := authHTTP.NewAuthHandler(authUseCase, session)
	channelHandler := authHTTP.NewChannelHandler(channelUseCase)
	commentHandler := authHTTP.NewCommentHandler(commentUseCase)

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{a.cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		if a.redisClient != nil {
			users.POST("/register", middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute), authHandler.Register)
			users.POST("/login", middleware.RateLimitMiddleware(a.redisClient, 20, time.Minute), authHandler.Login)
		} else {
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
		}
		users.POST("/refresh-token", authHandler.RefreshToken)

		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(a.tokenService))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/current-user", authHandler.CurrentUser)
			protected.PATCH("/change-password", authHandler.ChangePassword)
			protected.PATCH("/update-account", authHandler.UpdateAccount)
			protected.PATCH("/avatar", authHandler.UpdateAvatar)
			protected.PATCH("/cover-image", authHandler.UpdateCoverImage)
			protected.GET("/channel/:username", channelHandler.GetChannelProfile)
			protected.POST("/channel/:username/subscribe", channelHandler.Subscribe)
			protected.DELETE("/channel/:username/subscribe", channelHandler.Unsubscribe)
			protected.GET("/history", channelHandler.GetWatchHistory)
			protected.POST("/history/:videoId", channelHandler.AddToWatchHistory)
		}
	}

	videos := api.Group("/videos")
	{
		videos.GET("/:videoId/comments", commentHandler.ListComments)
		videos.POST("/:videoId/comments", middleware.AuthMiddleware(a.tokenService), commentHandler.AddComment)
	}
	api.DELETE("/comments/:id", middleware.AuthMiddleware(a.tokenService), commentHandler.DeleteComment)

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("vidstream starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down vidstream...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("vidstream exited")
	return nil
}
