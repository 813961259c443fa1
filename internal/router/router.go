package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/internal/api"
	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	waterHandler *api.WaterHandler,
	generateHandler *api.GenerateHandler,
	authService service.IAuthService,
	profileService service.IProfileService,
	log zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Outside the guard: API routes, the auth callback, the favicon.
	authHandler.RegisterRoutes(router)
	profileHandler.RegisterRoutes(router)
	waterHandler.RegisterRoutes(router)
	generateHandler.RegisterRoutes(router)
	router.GET("/favicon.ico", func(c *gin.Context) { c.Status(204) })

	// Every page navigation goes through the guard.
	guard := middleware.RouteGuard(authService, profileService)
	api.RegisterPages(router, guard)

	return router
}
