package handler

import (
	"strconv"
	"time"

	"absenku-backend/config"
	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type MesinHandler struct {
	repo          repository.MesinRepository
	kehadiranRepo repository.KehadiranRepository
}

func NewMesinHandler(repo repository.MesinRepository, kehadiranRepo repository.KehadiranRepository) *MesinHandler {
	return &MesinHandler{repo: repo, kehadiranRepo: kehadiranRepo}
}

type MesinRequest struct {
	SN           string `json:"sn"`
	Nama         string `json:"nama"`
	Lokasi       string `json:"lokasi"`
	OrganisasiID *uint  `json:"organisasi_id"`
}

func (h *MesinHandler) Create(c *fiber.Ctx) error {
	var req MesinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.SN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "SN wajib diisi"})
	}

	mesin := model.Mesin{
		SN:           req.SN,
		Nama:         req.Nama,
		Lokasi:       req.Lokasi,
		OrganisasiID: req.OrganisasiID,
		Status:       model.MesinOffline,
	}

	if err := h.repo.Create(&mesin); err != nil {
		// Kemungkinan SN sudah terdaftar (unique)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "SN sudah terdaftar"})
	}

	return c.JSON(fiber.Map{
		"message": "Mesin berhasil didaftarkan",
		"data":    mesin,
	})
}

func (h *MesinHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data mesin"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar mesin",
		"data":    list,
	})
}

func (h *MesinHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	mesin, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mesin tidak ditemukan"})
	}

	var req MesinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	// SN tidak boleh diganti lewat update: identitas mesin melekat ke hardware
	if req.Nama != "" {
		mesin.Nama = req.Nama
	}
	mesin.Lokasi = req.Lokasi
	if req.OrganisasiID != nil {
		mesin.OrganisasiID = req.OrganisasiID
	}

	if err := h.repo.Update(mesin); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update mesin"})
	}

	return c.JSON(fiber.Map{
		"message": "Mesin berhasil diperbarui",
		"data":    mesin,
	})
}

func (h *MesinHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus mesin"})
	}

	return c.JSON(fiber.Map{"message": "Mesin berhasil dihapus"})
}

// GetLog: log kehadiran terakhir yang masuk lewat satu mesin (untuk debugging
// mesin yang "hilang": bandingkan dengan terakhir_online).
func (h *MesinHandler) GetLog(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	list, err := h.kehadiranRepo.GetByMesin(uint(id), 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil log mesin"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil log mesin",
		"data":    list,
	})
}

// SweepOffline menandai OFFLINE semua mesin yang sudah lama tidak handshake.
// Dipanggil manual oleh admin atau oleh cron eksternal.
func (h *MesinHandler) SweepOffline(c *fiber.Ctx) error {
	menit := config.GetEnvAsInt("MESIN_OFFLINE_MENIT", 10)
	batas := time.Now().Add(-time.Duration(menit) * time.Minute)

	jumlah, err := h.repo.TandaiOffline(batas)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menandai mesin offline"})
	}

	return c.JSON(fiber.Map{
		"message":        "Sweep selesai",
		"jumlah_offline": jumlah,
	})
}
