package handler

import (
	"fmt"
	"strings"
	"time"

	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type KehadiranHandler struct {
	repo         repository.KehadiranRepository
	karyawanRepo repository.KaryawanRepository
	notifier     *service.Notifier
}

func NewKehadiranHandler(repo repository.KehadiranRepository, karyawanRepo repository.KaryawanRepository, notifier *service.Notifier) *KehadiranHandler {
	return &KehadiranHandler{repo: repo, karyawanRepo: karyawanRepo, notifier: notifier}
}

func (h *KehadiranHandler) GetStatusHariIni(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))
	today := time.Now().Format("2006-01-02")

	events, err := h.repo.GetHariIni(karyawanID, today)
	if err != nil || len(events) == 0 {
		return c.JSON(fiber.Map{
			"message": "Belum ada data kehadiran hari ini",
			"status":  "BELUM_ABSEN",
			"data":    nil,
		})
	}

	// Status hari ini = tipe event terakhir (MASUK berarti masih di kantor)
	terakhir := events[len(events)-1]
	return c.JSON(fiber.Map{
		"message": "Data kehadiran ditemukan",
		"status":  terakhir.Tipe,
		"data":    events,
	})
}

type EntriManualRequest struct {
	Tipe       string `json:"tipe"` // MASUK / PULANG
	Keterangan string `json:"keterangan"`
}

// EntriManual: jalur absen cadangan kalau mesin mati / karyawan dinas luar.
// Wajib pakai keterangan, dan sumbernya ditandai MANUAL supaya kelihatan di audit.
func (h *KehadiranHandler) EntriManual(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	var req EntriManualRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.Tipe != model.TipeMasuk && req.Tipe != model.TipePulang {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tipe harus MASUK atau PULANG"})
	}
	if strings.TrimSpace(req.Keterangan) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Keterangan wajib diisi untuk absen manual"})
	}

	karyawan, err := h.karyawanRepo.FindByID(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	now := time.Now()
	event := &model.Kehadiran{
		KaryawanID: karyawanID,
		Tipe:       req.Tipe,
		Waktu:      now.Format("2006-01-02 15:04:05"),
		Lokasi:     "Manual",
		Sumber:     model.SumberManual,
		Keterangan: req.Keterangan,
	}

	if err := h.repo.Create(event); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan absensi"})
	}

	// Atasan diberi tahu karena entri manual perlu pengawasan
	if karyawan.AtasanID != nil {
		emailAtasan := ""
		if karyawan.Atasan != nil {
			emailAtasan = karyawan.Atasan.Email
		}
		h.notifier.Kirim(*karyawan.AtasanID, model.NotifBawahan,
			fmt.Sprintf("%s absen %s MANUAL (%s)", karyawan.Nama, strings.ToLower(req.Tipe), req.Keterangan),
			emailAtasan)
	}

	return c.JSON(fiber.Map{
		"message": "Absen manual tercatat",
		"data":    event,
	})
}

func (h *KehadiranHandler) GetRiwayat(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))
	bulan := c.Query("bulan")
	tahun := c.Query("tahun")

	var history []model.Kehadiran
	var err error

	if bulan != "" && tahun != "" {
		history, err = h.repo.GetByBulan(karyawanID, bulan, tahun)
	} else {
		history, err = h.repo.GetRiwayat(karyawanID)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data riwayat"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil riwayat",
		"data":    history,
	})
}

func (h *KehadiranHandler) GetRekap(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))
	bulan := c.Query("bulan") // Format: "01", "02", ...
	tahun := c.Query("tahun") // Format: "2026"

	if bulan == "" || tahun == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter bulan dan tahun wajib diisi"})
	}

	data, err := h.repo.GetByBulan(karyawanID, bulan, tahun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data rekap"})
	}

	// Hitung Statistik
	masuk := 0
	pulang := 0
	manual := 0
	hariUnik := map[string]bool{}

	for _, k := range data {
		if k.Tipe == model.TipeMasuk {
			masuk++
		}
		if k.Tipe == model.TipePulang {
			pulang++
		}
		if k.Sumber == model.SumberManual {
			manual++
		}
		if len(k.Waktu) >= 10 {
			hariUnik[k.Waktu[:10]] = true
		}
	}

	return c.JSON(fiber.Map{
		"message": "Rekap berhasil",
		"data": fiber.Map{
			"masuk":      masuk,
			"pulang":     pulang,
			"manual":     manual,
			"hari_hadir": len(hariUnik),
			"detail":     data,
		},
	})
}
