package routes

import (
	"MindWellGo/config"
	"MindWellGo/controllers"
	"MindWellGo/middleware"
	"MindWellGo/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"
)

// RegisterRoutes wires controllers to their routes. model and redisClient may
// be nil: recommendations then always use the rule-based fallback and
// progress responses are not cached.
func RegisterRoutes(r *gin.Engine, conf config.Config, db *gorm.DB, model llms.Model, redisClient *redis.Client) {
	recommendationService := services.NewRecommendationService(model,
		services.WithTemperature(conf.LLMTemperature),
		services.WithMaxTokens(conf.LLMMaxTokens),
	)
	progressCache := services.NewProgressCache(redisClient, conf.ProgressCacheTTL())
	mentalHealthController := controllers.NewMentalHealthController(
		services.NewRecordStore(db),
		recommendationService,
		progressCache,
	)

	api := r.Group("/api/v1")
	if conf.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware([]byte(conf.JWTSecret)))
	}
	{
		api.POST("/mentalhealth/data", mentalHealthController.SubmitData)
		api.GET("/mentalhealth/progress", mentalHealthController.GetProgress)
	}

	// development only, anyone can mint a token for any user
	if conf.EnableTestToken && !conf.IsProduction() && conf.JWTSecret != "" {
		authController := controllers.NewAuthController([]byte(conf.JWTSecret))
		r.POST("/api/v1/auth/test-token", authController.CreateTestToken)
	}

	internal := r.Group("/")
	internal.Use(middleware.InternalAuthMiddleware(conf.InternalAuthToken))
	{
		internal.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
