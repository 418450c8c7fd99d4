package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/middleware"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSeragamRoutes(app *fiber.App, db *gorm.DB, notifier *service.Notifier) {
	seragamRepo := repository.NewSeragamRepository(db)
	karyawanRepo := repository.NewKaryawanRepository(db)
	hdl := handler.NewSeragamHandler(seragamRepo, karyawanRepo, notifier)

	api := app.Group("/api/seragam", middleware.Auth)

	api.Post("/", hdl.Ajukan)
	api.Get("/riwayat", hdl.GetRiwayat)
	api.Get("/bawahan", hdl.GetPengajuanBawahan)
	api.Put("/:id/approval", hdl.Approval)
}
