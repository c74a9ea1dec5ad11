package main

import (
	"log"
	"os"
	"strings"

	"alumnihub/internal/bootstrap"
	"alumnihub/internal/config"
	"alumnihub/internal/handler"
	"alumnihub/internal/middleware"
	"alumnihub/internal/repository"
	"alumnihub/internal/service"
	"alumnihub/pkg/database"
	"alumnihub/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedAdminUser(db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoData(db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient == nil {
		log.Println("REDIS_URL not set, realtime notifications and rate limiting disabled")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Println("MEILISEARCH_HOST not set, member search disabled")
	}

	var imageStorage storage.ImageStorage
	if os.Getenv("CLOUDINARY_URL") != "" || os.Getenv("CLOUDINARY_CLOUD_NAME") != "" {
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, photo uploads disabled")
	}

	userRepo := repository.NewUserRepository(db)
	batchRepo := repository.NewBatchGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	searchService := service.NewMemberSearchService(meiliClient)
	notificationService := service.NewNotificationService(notificationRepo, redisClient)

	authService := service.NewAuthService(userRepo, batchRepo, cfg.JWTSecret, cfg.JWTTTLMinutes)
	adminService := service.NewAdminService(userRepo, batchRepo, postRepo, searchService)
	postService := service.NewPostService(postRepo, commentRepo, userRepo, notificationService, redisClient, cfg.RateLimitPost)
	likeService := service.NewLikeService(likeRepo, postRepo, notificationService)
	connectionService := service.NewConnectionService(connectionRepo, userRepo, notificationService)
	messageService := service.NewMessageService(messageRepo, userRepo)
	profileService := service.NewProfileService(userRepo, imageStorage, searchService)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	postHandler := handler.NewPostHandler(postService, likeService)
	connectionHandler := handler.NewConnectionHandler(connectionService)
	notificationHandler := handler.NewNotificationHandler(notificationService, redisClient)
	messageHandler := handler.NewMessageHandler(messageService)
	profileHandler := handler.NewProfileHandler(profileService)
	searchHandler := handler.NewSearchHandler(searchService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api.Use(authMiddleware.RequireAuth())
	{
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.GET("/stats", adminHandler.Stats)
		}

		approved := api.Group("")
		approved.Use(authMiddleware.RequireApproved())
		{
			approved.POST("/posts", postHandler.CreatePost)
			approved.GET("/posts", postHandler.GetFeed)
			approved.POST("/posts/:id/like", postHandler.ToggleLike)
			approved.POST("/posts/:id/comment", postHandler.AddComment)
			approved.DELETE("/posts/:id", postHandler.DeletePost)

			approved.POST("/connections", connectionHandler.SendRequest)
			approved.PUT("/connections", connectionHandler.ActOnRequest)
			approved.DELETE("/connections", connectionHandler.RemoveConnection)
			approved.GET("/connections/:userId", connectionHandler.StatusWith)

			approved.GET("/notifications", notificationHandler.GetNotifications)
			approved.PUT("/notifications", notificationHandler.MarkAllAsRead)
			approved.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			approved.GET("/notifications/ws", notificationHandler.HandleWebSocket)

			approved.GET("/messages", messageHandler.Conversations)
			approved.GET("/messages/:userId", messageHandler.History)
			approved.POST("/messages/:userId", messageHandler.Send)

			approved.GET("/users/:id", profileHandler.PublicProfile)
			approved.GET("/search/members", searchHandler.Members)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", profileHandler.Me)
			profile.PUT("", profileHandler.Update)
			profile.POST("/photo", profileHandler.UploadPhoto)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
