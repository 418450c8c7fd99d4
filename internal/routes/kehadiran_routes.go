package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/middleware"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupKehadiranRoutes(app *fiber.App, db *gorm.DB, notifier *service.Notifier) {
	kehadiranRepo := repository.NewKehadiranRepository(db)
	karyawanRepo := repository.NewKaryawanRepository(db)
	hdl := handler.NewKehadiranHandler(kehadiranRepo, karyawanRepo, notifier)

	// Grouping route khusus kehadiran
	api := app.Group("/api/kehadiran", middleware.Auth)

	api.Get("/status", hdl.GetStatusHariIni)
	api.Post("/manual", hdl.EntriManual)
	api.Get("/riwayat", hdl.GetRiwayat)
	api.Get("/rekap", hdl.GetRekap)
}
