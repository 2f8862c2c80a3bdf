package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stayhub-backend/controllers"
	"stayhub-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the route tree.
func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	uc *controllers.UserController,
	adc *controllers.AdminController,
	auc *controllers.AuthController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
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

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", auc.Register)
			auth.POST("/login", auc.Login)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)

			// must come before /:id
			rooms.GET("/categories", rc.GetRoomCategories)

			rooms.GET("/:id", rc.GetRoom)

			adminRooms := rooms.Group("", middleware.Auth(jwtSecret), middleware.RequireAdmin())
			{
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PUT("/:id", rc.UpdateRoom)
				adminRooms.DELETE("/:id", rc.DeleteRoom)
				adminRooms.POST("/:id/image", rc.UploadRoomImage)
				adminRooms.POST("/:id/images", rc.UploadRoomImages)
			}
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("/availability", bc.CheckAvailability)

			// guest bookings are allowed, so auth is optional here
			bookings.POST("", middleware.OptionalAuth(jwtSecret), bc.CreateBooking)

			authed := bookings.Group("", middleware.Auth(jwtSecret))
			{
				authed.GET("/me", bc.GetMyBookings)
				authed.GET("/me/stats", bc.GetMyStats)
				authed.GET("/:id", bc.GetBooking)
				authed.PUT("/:id", bc.UpdateBooking)
				authed.POST("/:id/cancel", bc.CancelBooking)
			}
		}

		users := api.Group("/users", middleware.Auth(jwtSecret))
		{
			users.GET("/me", uc.GetProfile)
			users.PUT("/me", uc.UpdateProfile)
			users.POST("/me/password", uc.ChangePassword)
		}

		admin := api.Group("/admin", middleware.Auth(jwtSecret), middleware.RequireAdmin())
		{
			admin.GET("/bookings", adc.ListBookings)
			admin.PATCH("/bookings/:id/status", adc.SetBookingStatus)
			admin.GET("/users", adc.ListUsers)
			admin.GET("/users/:id", adc.GetUser)
			admin.PUT("/users/:id", adc.UpdateUser)
			admin.DELETE("/users/:id", adc.DeleteUser)
		}
	}

	return r
}
