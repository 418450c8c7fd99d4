package handler

import (
	"time"

	"absenku-backend/config"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	repo repository.KaryawanRepository
}

func NewAuthHandler(repo repository.KaryawanRepository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type LoginRequest struct {
	NIP      string `json:"nip"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	// 1. Cari karyawan by NIP
	karyawan, err := h.repo.FindByNIP(req.NIP)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "NIP atau Password salah"})
	}

	if !karyawan.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akun dinonaktifkan. Hubungi admin."})
	}

	// 2. Cek Password
	if err := bcrypt.CompareHashAndPassword([]byte(karyawan.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "NIP atau Password salah"})
	}

	// 3. Generate Token JWT
	claims := jwt.MapClaims{
		"user_id": karyawan.ID,
		"nip":     karyawan.NIP,
		"role":    karyawan.Role.NamaRole,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	if karyawan.OrganisasiID != nil {
		claims["organisasi_id"] = *karyawan.OrganisasiID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(config.JWTSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	organisasi := ""
	if karyawan.Organisasi != nil {
		organisasi = karyawan.Organisasi.NamaOrganisasi
	}

	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"token":   tokenString,
		"data": fiber.Map{
			"nip":        karyawan.NIP,
			"nama":       karyawan.Nama,
			"role":       karyawan.Role.NamaRole,
			"jabatan":    karyawan.Jabatan,
			"organisasi": organisasi,
		},
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	karyawan, err := h.repo.FindByID(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil profil",
		"data":    karyawan,
	})
}

type UpdateProfileRequest struct {
	Email string `json:"email"`
	NoHP  string `json:"no_hp"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	karyawan, err := h.repo.FindByID(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	// Update field yang diizinkan
	if req.Email != "" {
		karyawan.Email = req.Email
	}
	if req.NoHP != "" {
		karyawan.NoHP = req.NoHP
	}

	if err := h.repo.Update(karyawan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update profil"})
	}

	return c.JSON(fiber.Map{
		"message": "Profil berhasil diperbarui",
		"data":    karyawan,
	})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	karyawan, err := h.repo.FindByID(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	// Cek Password Lama
	if err := bcrypt.CompareHashAndPassword([]byte(karyawan.Password), []byte(req.OldPassword)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password lama salah"})
	}

	// Hash Password Baru
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengenkripsi password"})
	}

	karyawan.Password = string(hashedPassword)
	if err := h.repo.Update(karyawan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update password"})
	}

	return c.JSON(fiber.Map{"message": "Password berhasil diubah"})
}
