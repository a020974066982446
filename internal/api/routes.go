package api

import (
	"net/http"
	"time"

	"vidtube/internal/service"
	"vidtube/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RouteDeps carries everything the HTTP surface needs. Redis may be nil, in
// which case rate limiting is disabled.
type RouteDeps struct {
	AuthService       service.AuthService
	CatalogService    service.CatalogService
	EngagementService service.EngagementService
	PlaylistService   service.PlaylistService
	SocialService     service.SocialService
	DashboardService  service.DashboardService
	Media             storage.MediaStorage
	Redis             *redis.Client
	RateLimit         int64
	RateWindow        time.Duration
	Log               *zap.Logger
}

func SetupRoutes(router *gin.Engine, deps RouteDeps) {
	userHandler := NewUserHandler(deps.AuthService, deps.EngagementService, deps.CatalogService)
	videoHandler := NewVideoHandler(deps.CatalogService, deps.Media)
	likeHandler := NewLikeHandler(deps.EngagementService)
	subscriptionHandler := NewSubscriptionHandler(deps.EngagementService)
	playlistHandler := NewPlaylistHandler(deps.PlaylistService)
	tweetHandler := NewTweetHandler(deps.SocialService)
	commentHandler := NewCommentHandler(deps.SocialService)
	dashboardHandler := NewDashboardHandler(deps.DashboardService)

	jwtSecret := deps.AuthService.JWTSecret()
	authRequired := AuthMiddleware(jwtSecret)
	authOptional := OptionalAuthMiddleware(jwtSecret)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(RateLimitMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Log))

	apiV1.GET("/healthcheck", func(c *gin.Context) {
		respond(c, http.StatusOK, gin.H{"status": "ok"}, "service is healthy")
	})

	users := apiV1.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/refresh-token", userHandler.Refresh)
		users.POST("/logout", authRequired, userHandler.Logout)
		users.GET("/me", authRequired, userHandler.CurrentUser)
		users.GET("/c/:username", authOptional, userHandler.ChannelProfile)
		users.GET("/history", authRequired, userHandler.WatchHistory)
	}

	videos := apiV1.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.POST("", authRequired, videoHandler.Publish)
		videos.POST("/uploads", authRequired, videoHandler.Uploads)
		videos.GET("/:videoId", authOptional, videoHandler.Get)
		videos.PATCH("/:videoId", authRequired, videoHandler.Update)
		videos.DELETE("/:videoId", authRequired, videoHandler.Delete)
		videos.POST("/toggle/publish/:videoId", authRequired, videoHandler.TogglePublish)
	}

	likes := apiV1.Group("/likes")
	likes.Use(authRequired)
	{
		likes.POST("/toggle/v/:videoId", likeHandler.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", likeHandler.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", likeHandler.ToggleTweetLike)
		likes.GET("/videos", likeHandler.LikedVideos)
	}

	subscriptions := apiV1.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", authRequired, subscriptionHandler.Toggle)
		subscriptions.GET("/c/:channelId", subscriptionHandler.Subscribers)
		subscriptions.GET("/u/:subscriberId", subscriptionHandler.SubscribedChannels)
	}

	playlists := apiV1.Group("/playlist")
	{
		playlists.POST("", authRequired, playlistHandler.Create)
		playlists.GET("/user/:userId", playlistHandler.ListByUser)
		playlists.GET("/:playlistId", playlistHandler.Get)
		playlists.PATCH("/:playlistId", authRequired, playlistHandler.Update)
		playlists.DELETE("/:playlistId", authRequired, playlistHandler.Delete)
		playlists.PATCH("/add/:videoId/:playlistId", authRequired, playlistHandler.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", authRequired, playlistHandler.RemoveVideo)
	}

	tweets := apiV1.Group("/tweets")
	{
		tweets.POST("", authRequired, tweetHandler.Create)
		tweets.GET("/user/:userId", tweetHandler.ListByUser)
		tweets.PATCH("/:tweetId", authRequired, tweetHandler.Update)
		tweets.DELETE("/:tweetId", authRequired, tweetHandler.Delete)
	}

	comments := apiV1.Group("/comments")
	{
		comments.POST("/:videoId", authRequired, commentHandler.Create)
		comments.GET("/:videoId", commentHandler.ListByVideo)
		comments.PATCH("/c/:commentId", authRequired, commentHandler.Update)
		comments.DELETE("/c/:commentId", authRequired, commentHandler.Delete)
	}

	dashboard := apiV1.Group("/dashboard")
	dashboard.Use(authRequired)
	{
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/videos", dashboardHandler.Videos)
	}
}
