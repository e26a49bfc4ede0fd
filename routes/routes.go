package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"reservas-backend/config"
	"reservas-backend/controllers"
	"reservas-backend/middleware"
)

// SetupRouter wires controllers, CORS and the middleware stack.
func SetupRouter(
	cfg *config.ServerConfig,
	ac *controllers.AvailabilityController,
	rc *controllers.ReservationController,
	hc *controllers.RoomController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := cfg.CORSOrigins
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := middleware.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	{
		habitaciones := api.Group("/habitaciones")
		{
			habitaciones.GET("", caching, hc.GetRooms)
			habitaciones.GET("/con-reservas", hc.GetRoomsWithReservations)
			habitaciones.POST("", hc.CreateRoom)
			habitaciones.POST("/disponibles", ac.SearchAvailable)

			habitaciones.GET("/:id/disponibilidad", caching, ac.GetCalendar)
			habitaciones.PUT("/:id", hc.UpdateRoom)
			habitaciones.PATCH("/:id/estado", hc.UpdateRoomEstado)
			habitaciones.PATCH("/:id/checkin", hc.CheckInRoom)
			habitaciones.PATCH("/:id/checkout", hc.CheckOutRoom)
			habitaciones.DELETE("/:id", hc.DeleteRoom)
		}

		reservas := api.Group("/reservas")
		{
			reservas.POST("/crear", rc.CreateReservation)
			reservas.GET("/habitacion/:id", rc.GetReservationsByRoom)

			reservas.GET("/:id", rc.GetReservation)
			reservas.PATCH("/:id/cancelar", rc.CancelReservation)
			reservas.PATCH("/:id/cancelar-admin", rc.CancelReservationAdmin)
		}
	}

	return r
}
