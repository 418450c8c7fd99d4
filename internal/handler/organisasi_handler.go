package handler

import (
	"strconv"

	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type OrganisasiHandler struct {
	repo         repository.OrganisasiRepository
	karyawanRepo repository.KaryawanRepository
}

func NewOrganisasiHandler(repo repository.OrganisasiRepository, karyawanRepo repository.KaryawanRepository) *OrganisasiHandler {
	return &OrganisasiHandler{repo: repo, karyawanRepo: karyawanRepo}
}

type OrganisasiRequest struct {
	NamaOrganisasi string `json:"nama_organisasi"`
}

func (h *OrganisasiHandler) Create(c *fiber.Ctx) error {
	var req OrganisasiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.NamaOrganisasi == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nama organisasi wajib diisi"})
	}

	organisasi := model.Organisasi{NamaOrganisasi: req.NamaOrganisasi}
	if err := h.repo.Create(&organisasi); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat organisasi"})
	}

	return c.JSON(fiber.Map{
		"message": "Organisasi berhasil dibuat",
		"data":    organisasi,
	})
}

func (h *OrganisasiHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data organisasi"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar organisasi",
		"data":    list,
	})
}

// GetDetail mengembalikan organisasi beserta daftar mesin dan karyawannya,
// dipakai layar admin untuk audit "siapa absen lewat mesin mana".
func (h *OrganisasiHandler) GetDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	organisasi, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organisasi tidak ditemukan"})
	}

	karyawan, err := h.karyawanRepo.GetByOrganisasi(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data karyawan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil detail organisasi",
		"data": fiber.Map{
			"organisasi": organisasi,
			"karyawan":   karyawan,
		},
	})
}
