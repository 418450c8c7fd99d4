package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/middleware"
	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMesinRoutes(app *fiber.App, db *gorm.DB) {
	mesinRepo := repository.NewMesinRepository(db)
	kehadiranRepo := repository.NewKehadiranRepository(db)
	hdl := handler.NewMesinHandler(mesinRepo, kehadiranRepo)

	// Manajemen mesin khusus admin
	api := app.Group("/api/mesin", middleware.Auth, middleware.Role(model.RoleAdmin))

	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
	api.Get("/:id/log", hdl.GetLog)
	api.Post("/sweep-offline", hdl.SweepOffline)
}
