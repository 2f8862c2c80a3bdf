package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayhub-backend/config"
	"stayhub-backend/controllers"
	"stayhub-backend/logger"
	"stayhub-backend/routes"
	"stayhub-backend/services"
	"stayhub-backend/utils"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if envErr != nil {
		logger.Get().Info().Msg(".env not found, continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Get().Fatal().Msg("JWT_SECRET environment variable is not set")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.Get().Fatal().Err(err).Msg("database connect failed")
	}
	db := config.DB

	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)
	userService := services.NewUserService(db)
	imageService := services.NewImageService()

	roomController := controllers.NewRoomController(roomService, imageService)
	bookingController := controllers.NewBookingController(bookingService)
	userController := controllers.NewUserController(userService, imageService)
	adminController := controllers.NewAdminController(bookingService, userService)
	authController := controllers.NewAuthController(userService, jwtSecret)

	router := routes.SetupRouter(
		roomController,
		bookingController,
		userController,
		adminController,
		authController,
		jwtSecret,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Get().Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Get().Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Get().Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Get().Info().Msg("server stopped")
}
