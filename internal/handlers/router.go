package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mehulj/noteshare/internal/auth"
	"github.com/mehulj/noteshare/internal/middleware"
	"github.com/mehulj/noteshare/internal/service"
)

// NewRouter assembles the gin engine: middleware stack, public auth
// routes, token-protected note and search routes, health and metrics.
func NewRouter(authSvc *service.AuthService, noteSvc *service.NoteService, jwtManager *auth.JWTManager, rateLimitRPM int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "noteshare"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimitRPM))

	ah := NewAuthHandler(authSvc)
	api.POST("/auth/signup", ah.Signup)
	api.POST("/auth/login", ah.Login)

	nh := NewNotesHandler(noteSvc)
	secured := api.Group("")
	secured.Use(middleware.RequireAuth(jwtManager))
	{
		secured.GET("/notes", nh.List)
		secured.POST("/notes", nh.Create)
		secured.GET("/notes/:id", nh.Get)
		secured.PUT("/notes/:id", nh.Update)
		secured.DELETE("/notes/:id", nh.Delete)
		secured.POST("/notes/:id/share", nh.Share)

		secured.GET("/search", nh.Search)
	}

	return router
}
