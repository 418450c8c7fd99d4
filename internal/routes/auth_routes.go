package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/middleware"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	karyawanRepo := repository.NewKaryawanRepository(db)
	hdl := handler.NewAuthHandler(karyawanRepo)

	api := app.Group("/api/auth")

	api.Post("/login", hdl.Login)
	api.Get("/profile", middleware.Auth, hdl.GetProfile)
	api.Put("/profile", middleware.Auth, hdl.UpdateProfile)
	api.Put("/password", middleware.Auth, hdl.ChangePassword)
}
