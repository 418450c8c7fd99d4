package routes

import (
	"absenku-backend/internal/handler"
	"absenku-backend/internal/middleware"
	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrganisasiRoutes(app *fiber.App, db *gorm.DB) {
	organisasiRepo := repository.NewOrganisasiRepository(db)
	karyawanRepo := repository.NewKaryawanRepository(db)
	hdl := handler.NewOrganisasiHandler(organisasiRepo, karyawanRepo)

	api := app.Group("/api/organisasi", middleware.Auth, middleware.Role(model.RoleAdmin))

	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
}
