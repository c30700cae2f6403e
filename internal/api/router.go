package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crowdmap/crowd-heatmap/internal/handler"
	"github.com/crowdmap/crowd-heatmap/internal/middleware"
	"github.com/crowdmap/crowd-heatmap/internal/service"
)

// Services bundles what the router exposes over HTTP
type Services struct {
	Business  *service.BusinessService
	Intensity *service.IntensityService
	Places    *service.PlaceService
	Chat      *service.ChatService
}

// SetupRouter builds the gin engine. A nil limiter disables rate limiting.
func SetupRouter(svc Services, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Crowd heatmap API is running",
		})
	})

	businessHandler := handler.NewBusinessHandler(svc.Business)
	intensityHandler := handler.NewIntensityHandler(svc.Intensity)
	placeHandler := handler.NewPlaceHandler(svc.Places)
	chatHandler := handler.NewChatHandler(svc.Chat)

	r.GET("/ws/chat", chatHandler.ServeWebSocket)

	v1 := r.Group("/api/v1")
	if limiter != nil {
		v1.Use(middleware.RateLimit(limiter))
	}
	{
		v1.POST("/businesses", businessHandler.Submit)
		v1.POST("/intensity/analyze", intensityHandler.Analyze)
		v1.POST("/locations/search", placeHandler.Search)
		v1.POST("/places/popular", placeHandler.Popular)
		v1.POST("/chat", chatHandler.Reply)

		admin := v1.Group("/admin/businesses")
		{
			admin.GET("", businessHandler.List)
			admin.GET("/summary", businessHandler.Summary)
			admin.GET("/:id", businessHandler.Get)
			admin.DELETE("/:id", businessHandler.Delete)
		}
	}

	return r
}
