package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/service"
	"absenku-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupADMSRoutes(app *fiber.App, db *gorm.DB, notifier *service.Notifier, fotoStore *storage.PhotoStore) {
	mesinRepo := repository.NewMesinRepository(db)
	karyawanRepo := repository.NewKaryawanRepository(db)
	kehadiranRepo := repository.NewKehadiranRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	provisioner := service.NewProvisioner(karyawanRepo, roleRepo)

	hdl := handler.NewADMSHandler(mesinRepo, karyawanRepo, kehadiranRepo, provisioner, notifier, fotoStore)

	// TANPA middleware.Auth: firmware mesin tidak bisa kirim token.
	// Identitas diambil dari SN di query string.
	iclock := app.Group("/iclock")
	iclock.Options("/cdata", hdl.Preflight)
	iclock.Get("/cdata", hdl.Handshake)
	iclock.Post("/cdata", hdl.Push)
	iclock.Get("/getrequest", hdl.Handshake) // Polling perintah, dijawab sama dengan heartbeat
}
