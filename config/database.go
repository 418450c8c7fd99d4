package config

import (
	"fmt"

	"absenku-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASS", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "absenku_db"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Gagal koneksi ke database!")
	}

	fmt.Println("Koneksi Database Berhasil!")

	// Auto Migration: Membuat tabel otomatis berdasarkan struct di folder model
	Migrate(db)

	DB = db
}

// Migrate dipisah agar bisa dipanggil juga dari test (pakai sqlite in-memory).
func Migrate(db *gorm.DB) {
	db.AutoMigrate(&model.Role{})
	db.AutoMigrate(&model.Organisasi{})
	db.AutoMigrate(&model.Karyawan{})
	db.AutoMigrate(&model.Mesin{})
	db.AutoMigrate(&model.Kehadiran{})
	db.AutoMigrate(&model.Notifikasi{})
	db.AutoMigrate(&model.PermintaanSeragam{})
}
