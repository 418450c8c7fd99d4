package handler

import (
	"strconv"

	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type NotifikasiHandler struct {
	repo repository.NotifikasiRepository
}

func NewNotifikasiHandler(repo repository.NotifikasiRepository) *NotifikasiHandler {
	return &NotifikasiHandler{repo: repo}
}

func (h *NotifikasiHandler) GetAll(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	list, err := h.repo.GetByKaryawan(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil notifikasi"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil notifikasi",
		"data":    list,
	})
}

func (h *NotifikasiHandler) CountBelumDibaca(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	count, err := h.repo.CountBelumDibaca(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung notifikasi"})
	}

	return c.JSON(fiber.Map{
		"message":      "Berhasil",
		"belum_dibaca": count,
	})
}

func (h *NotifikasiHandler) TandaiDibaca(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	if err := h.repo.TandaiDibaca(uint(id), karyawanID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menandai notifikasi"})
	}

	return c.JSON(fiber.Map{"message": "Notifikasi ditandai dibaca"})
}

func (h *NotifikasiHandler) TandaiSemuaDibaca(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	if err := h.repo.TandaiSemuaDibaca(karyawanID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menandai notifikasi"})
	}

	return c.JSON(fiber.Map{"message": "Semua notifikasi ditandai dibaca"})
}
