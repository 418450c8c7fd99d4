package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/middleware"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotifikasiRoutes(app *fiber.App, db *gorm.DB) {
	notifikasiRepo := repository.NewNotifikasiRepository(db)
	hdl := handler.NewNotifikasiHandler(notifikasiRepo)

	api := app.Group("/api/notifikasi", middleware.Auth)

	api.Get("/", hdl.GetAll)
	api.Get("/belum-dibaca", hdl.CountBelumDibaca)
	api.Put("/baca-semua", hdl.TandaiSemuaDibaca)
	api.Put("/:id/baca", hdl.TandaiDibaca)
}
