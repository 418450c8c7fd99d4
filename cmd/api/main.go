package main

import (
	"fmt"

	"absenku-backend/config"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/routes"
	"absenku-backend/internal/service"
	"absenku-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Mencoba load .env...")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	fmt.Println("2. Mencoba koneksi ke Database...")
	config.ConnectDB()
	fmt.Println("3. Database berhasil terhubung! Menyiapkan routes...")

	app := fiber.New()

	// Middleware Global
	app.Use(cors.New())    // Agar API bisa diakses dari domain/port lain
	app.Use(logger.New())  // Agar log request muncul di terminal (Debugging)
	app.Use(recover.New()) // Panic tidak boleh tembus ke mesin absensi, harus tetap dijawab

	// Serve Static Files (foto karyawan bisa dibuka via http://host:3000/uploads/...)
	app.Static("/uploads", "./uploads")

	// Worker notifikasi background, dipakai bersama oleh ingestion & seragam
	notifier := service.NewNotifier(repository.NewNotifikasiRepository(config.DB))
	defer notifier.Tutup()

	fotoStore := storage.NewPhotoStore("./uploads/foto_karyawan", config.PublicBaseURL())

	routes.SetupADMSRoutes(app, config.DB, notifier, fotoStore)
	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupKehadiranRoutes(app, config.DB, notifier)
	routes.SetupMesinRoutes(app, config.DB)
	routes.SetupNotifikasiRoutes(app, config.DB)
	routes.SetupSeragamRoutes(app, config.DB, notifier)
	routes.SetupOrganisasiRoutes(app, config.DB)

	port := config.GetEnv("PORT", "3000")
	fmt.Println("4. Server siap! Menunggu request di port :" + port)
	app.Listen(":" + port)
}
