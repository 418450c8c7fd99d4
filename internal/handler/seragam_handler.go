package handler

import (
	"fmt"
	"strconv"

	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SeragamHandler struct {
	repo         repository.SeragamRepository
	karyawanRepo repository.KaryawanRepository
	notifier     *service.Notifier
}

func NewSeragamHandler(repo repository.SeragamRepository, karyawanRepo repository.KaryawanRepository, notifier *service.Notifier) *SeragamHandler {
	return &SeragamHandler{repo: repo, karyawanRepo: karyawanRepo, notifier: notifier}
}

type PengajuanSeragamRequest struct {
	Jenis  string `json:"jenis"`
	Ukuran string `json:"ukuran"`
	Jumlah int    `json:"jumlah"`
	Alasan string `json:"alasan"`
}

func (h *SeragamHandler) Ajukan(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	var req PengajuanSeragamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.Jenis == "" || req.Ukuran == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Jenis dan ukuran wajib diisi"})
	}
	if req.Jumlah <= 0 {
		req.Jumlah = 1
	}

	// Ambil data karyawan untuk mendapatkan NIP atasan
	karyawan, err := h.karyawanRepo.FindByID(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}
	nipAtasan := ""
	if karyawan.Atasan != nil {
		nipAtasan = karyawan.Atasan.NIP
	}

	permintaan := model.PermintaanSeragam{
		KaryawanID: karyawanID,
		NIPAtasan:  nipAtasan,
		Jenis:      req.Jenis,
		Ukuran:     req.Ukuran,
		Jumlah:     req.Jumlah,
		Alasan:     req.Alasan,
		Status:     "MENUNGGU",
	}

	if err := h.repo.Create(&permintaan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengajukan permintaan seragam"})
	}

	// Kabari atasan ada pengajuan baru
	if karyawan.AtasanID != nil {
		emailAtasan := ""
		if karyawan.Atasan != nil {
			emailAtasan = karyawan.Atasan.Email
		}
		h.notifier.Kirim(*karyawan.AtasanID, model.NotifSeragam,
			fmt.Sprintf("%s mengajukan seragam %s ukuran %s (x%d)", karyawan.Nama, req.Jenis, req.Ukuran, req.Jumlah),
			emailAtasan)
	}

	return c.JSON(fiber.Map{
		"message": "Pengajuan seragam berhasil dikirim",
		"data":    permintaan,
	})
}

func (h *SeragamHandler) GetRiwayat(c *fiber.Ctx) error {
	karyawanID := uint(c.Locals("user_id").(float64))

	list, err := h.repo.GetByKaryawanID(karyawanID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil riwayat permintaan seragam",
		"data":    list,
	})
}

func (h *SeragamHandler) GetPengajuanBawahan(c *fiber.Ctx) error {
	// ID user yang login (sebagai Atasan)
	atasanID := uint(c.Locals("user_id").(float64))

	list, err := h.repo.GetByAtasanID(atasanID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pengajuan bawahan"})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil daftar pengajuan bawahan",
		"data":    list,
	})
}

type ApprovalSeragamRequest struct {
	Status  string `json:"status"` // "DISETUJUI" atau "DITOLAK"
	Catatan string `json:"catatan"`
}

func (h *SeragamHandler) Approval(c *fiber.Ctx) error {
	atasanID := uint(c.Locals("user_id").(float64))

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	var req ApprovalSeragamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	if req.Status != "DISETUJUI" && req.Status != "DITOLAK" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status harus DISETUJUI atau DITOLAK"})
	}

	permintaan, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Permintaan tidak ditemukan"})
	}

	// Hanya atasan langsung pemohon yang boleh approve
	if permintaan.Karyawan.AtasanID == nil || *permintaan.Karyawan.AtasanID != atasanID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Anda bukan atasan pemohon"})
	}

	if permintaan.Status != "MENUNGGU" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Permintaan sudah diproses"})
	}

	permintaan.Status = req.Status
	permintaan.Catatan = req.Catatan
	if err := h.repo.Update(permintaan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan approval"})
	}

	// Kabari pemohon hasilnya
	h.notifier.Kirim(permintaan.KaryawanID, model.NotifApproval,
		fmt.Sprintf("Permintaan seragam %s kamu %s", permintaan.Jenis, req.Status),
		permintaan.Karyawan.Email)

	return c.JSON(fiber.Map{
		"message": "Approval tersimpan",
		"data":    permintaan,
	})
}
