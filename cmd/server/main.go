package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube/internal/api"
	"vidtube/internal/config"
	"vidtube/internal/logger"
	"vidtube/internal/repository/mongo"
	"vidtube/internal/service"
	"vidtube/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	log, err := logger.New(cfg.Log.Debug)
	if err != nil {
		panic("could not initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("starting vidtube server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
			log.Error("failed to ensure user indexes", zap.Error(err))
		}
		if err := mongo.EnsureVideoIndexes(ctx, appDB.Collection("videos")); err != nil {
			log.Error("failed to ensure video indexes", zap.Error(err))
		}
		if err := mongo.EnsureLikeIndexes(ctx, appDB.Collection("likes")); err != nil {
			log.Error("failed to ensure like indexes", zap.Error(err))
		}
		if err := mongo.EnsureSubscriptionIndexes(ctx, appDB.Collection("subscriptions")); err != nil {
			log.Error("failed to ensure subscription indexes", zap.Error(err))
		}
		if err := mongo.EnsurePlaylistIndexes(ctx, appDB.Collection("playlists")); err != nil {
			log.Error("failed to ensure playlist indexes", zap.Error(err))
		}
		if err := mongo.EnsureTweetIndexes(ctx, appDB.Collection("tweets")); err != nil {
			log.Error("failed to ensure tweet indexes", zap.Error(err))
		}
		if err := mongo.EnsureCommentIndexes(ctx, appDB.Collection("comments")); err != nil {
			log.Error("failed to ensure comment indexes", zap.Error(err))
		}
		log.Info("index creation completed")
	}()

	// --- Initialize Storage ---
	mediaStorage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Initialize Redis (optional) ---
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting runs fail-open", zap.Error(err))
		}
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	likeRepo := mongo.NewMongoLikeRepository(appDB)
	subscriptionRepo := mongo.NewMongoSubscriptionRepository(appDB)
	playlistRepo := mongo.NewMongoPlaylistRepository(appDB)
	tweetRepo := mongo.NewMongoTweetRepository(appDB)
	commentRepo := mongo.NewMongoCommentRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	catalogService := service.NewCatalogService(videoRepo, userRepo, likeRepo, mediaStorage, log)
	engagementService := service.NewEngagementService(likeRepo, subscriptionRepo, videoRepo, commentRepo, tweetRepo, userRepo, log)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo, log)
	socialService := service.NewSocialService(tweetRepo, commentRepo, videoRepo, userRepo, log)
	dashboardService := service.NewDashboardService(videoRepo, likeRepo, subscriptionRepo, userRepo, log)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	api.SetupRoutes(router, api.RouteDeps{
		AuthService:       authService,
		CatalogService:    catalogService,
		EngagementService: engagementService,
		PlaylistService:   playlistService,
		SocialService:     socialService,
		DashboardService:  dashboardService,
		Media:             mediaStorage,
		Redis:             redisClient,
		RateLimit:         int64(cfg.Redis.RequestLimit),
		RateWindow:        cfg.Redis.RequestWindow,
		Log:               log,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
