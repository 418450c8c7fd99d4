package handler

import (
	"fmt"
	"strings"
	"time"

	"absenku-backend/internal/logger"
	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/service"
	"absenku-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// ADMSHandler menerima push protocol dari mesin absensi eSSL (ADMS/iclock).
//
// Kontrak protokolnya: selama SN ada, request data SELALU dijawab "OK" /
// "OK: <n>" plain text, apapun yang terjadi di dalam. Firmware mesin memakai
// teks balasan itu untuk memajukan pointer log internalnya; balasan selain itu
// bikin mesin mengirim ulang batch yang sama terus-menerus. Kegagalan di jalur
// ini cuma kelihatan lewat log server.
type ADMSHandler struct {
	mesinRepo     repository.MesinRepository
	karyawanRepo  repository.KaryawanRepository
	kehadiranRepo repository.KehadiranRepository
	provisioner   *service.Provisioner
	notifier      *service.Notifier
	fotoStore     *storage.PhotoStore
}

func NewADMSHandler(
	mesinRepo repository.MesinRepository,
	karyawanRepo repository.KaryawanRepository,
	kehadiranRepo repository.KehadiranRepository,
	provisioner *service.Provisioner,
	notifier *service.Notifier,
	fotoStore *storage.PhotoStore,
) *ADMSHandler {
	return &ADMSHandler{
		mesinRepo:     mesinRepo,
		karyawanRepo:  karyawanRepo,
		kehadiranRepo: kehadiranRepo,
		provisioner:   provisioner,
		notifier:      notifier,
		fotoStore:     fotoStore,
	}
}

// Serial number bisa datang sebagai "SN" atau "sn" tergantung versi firmware.
func ambilSN(c *fiber.Ctx) string {
	if sn := c.Query("SN"); sn != "" {
		return sn
	}
	return c.Query("sn")
}

// Preflight menjawab OPTIONS tanpa efek samping.
func (h *ADMSHandler) Preflight(c *fiber.Ctx) error {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "*")
	// SendStatus mengisi body dengan status text, di sini body harus kosong
	return c.Status(fiber.StatusOK).SendString("")
}

// Handshake menangani GET: heartbeat mesin (dengan SN) atau health check manual.
func (h *ADMSHandler) Handshake(c *fiber.Ctx) error {
	sn := ambilSN(c)
	if sn == "" {
		return c.SendString("AbsenKu ADMS siap")
	}

	mesin, err := h.mesinRepo.FindBySN(sn)
	if err != nil {
		// Tetap balas OK: mesin yang belum didaftarkan admin jangan
		// dibikin retry tanpa henti
		logger.Log.Warn().Str("sn", sn).Msg("handshake dari mesin yang belum terdaftar")
		return c.SendString("OK")
	}

	if err := h.mesinRepo.TouchOnline(mesin.ID, time.Now()); err != nil {
		logger.Log.Warn().Err(err).Str("sn", sn).Msg("gagal update liveness mesin")
	}

	// Balasan harus persis dua karakter "OK", plain text. Firmware tidak
	// bisa parse JSON.
	return c.SendString("OK")
}

// Push mendispatch POST data berdasarkan query param "table".
func (h *ADMSHandler) Push(c *fiber.Ctx) error {
	sn := ambilSN(c)
	if sn == "" {
		// Satu-satunya kegagalan keras di jalur ini: push data tanpa identitas
		return c.Status(fiber.StatusBadRequest).SendString("SN wajib diisi")
	}

	table := c.Query("table")

	mesin, err := h.mesinRepo.FindBySN(sn)
	if err != nil {
		logger.Log.Warn().Str("sn", sn).Str("table", table).
			Msg("push data dari mesin yang belum terdaftar, diabaikan")
		return c.SendString("OK")
	}

	var hasil error
	switch table {
	case "ATTLOG":
		hasil = h.prosesAttlog(c, mesin)
	case "USER":
		hasil = h.prosesUserSync(c, mesin)
	case "USERPIC":
		hasil = h.prosesFoto(c, mesin)
	default:
		// Tipe push yang belum dikenal tetap di-ack, jangan gagalkan
		// retry loop mesin (forward compatibility)
		logger.Log.Info().Str("sn", sn).Str("table", table).Msg("tipe push tidak dikenal, di-ack saja")
		hasil = c.SendString("OK")
	}

	// Liveness disegarkan sekali per request, berapapun jumlah barisnya
	if err := h.mesinRepo.TouchOnline(mesin.ID, time.Now()); err != nil {
		logger.Log.Warn().Err(err).Str("sn", sn).Msg("gagal update liveness mesin")
	}

	return hasil
}

// prosesAttlog memproses batch event absen, satu baris satu event.
// Format baris: PIN \t "2006-01-02 15:04:05" \t statusCode \t ...
func (h *ADMSHandler) prosesAttlog(c *fiber.Ctx, mesin *model.Mesin) error {
	lokasi := mesin.LokasiEfektif()
	sukses := 0

	// Baris diproses berurutan sesuai payload. Masuk lalu pulang untuk
	// karyawan yang sama dalam satu batch harus tersimpan dalam urutan itu,
	// query "event terakhir" bergantung padanya.
	for _, baris := range strings.Split(string(c.Body()), "\n") {
		baris = strings.TrimRight(baris, "\r")
		if strings.TrimSpace(baris) == "" {
			continue
		}

		kolom := strings.Split(baris, "\t")
		if len(kolom) < 2 {
			logger.Log.Warn().Str("sn", mesin.SN).Str("baris", baris).
				Msg("baris ATTLOG tidak lengkap, dilewati")
			continue
		}

		pin := strings.TrimSpace(kolom[0])
		waktu := strings.TrimSpace(kolom[1])
		status := ""
		if len(kolom) >= 3 {
			status = strings.TrimSpace(kolom[2])
		}

		// Konvensi tetap keluarga firmware ini: "1" = masuk, selain itu
		// (termasuk kosong) = pulang. Jangan coba dideteksi dinamis.
		tipe := model.TipePulang
		if status == "1" {
			tipe = model.TipeMasuk
		}

		karyawan, err := h.karyawanRepo.FindByPIN(pin)
		if err != nil {
			// PIN yang tak dikenal tidak pernah menghasilkan event
			logger.Log.Warn().Str("sn", mesin.SN).Str("pin", pin).
				Msg("PIN tidak terdaftar, event dibuang")
			continue
		}

		mesinID := mesin.ID
		event := &model.Kehadiran{
			KaryawanID: karyawan.ID,
			MesinID:    &mesinID,
			Tipe:       tipe,
			Waktu:      waktu, // Jam lokal mesin, disimpan apa adanya
			Lokasi:     lokasi,
			Sumber:     model.SumberMesin,
		}
		if err := h.kehadiranRepo.Create(event); err != nil {
			logger.Log.Error().Err(err).Str("sn", mesin.SN).Str("pin", pin).
				Msg("gagal simpan event kehadiran")
			continue
		}
		sukses++

		// Notifikasi best-effort, di-antre SETELAH insert barisnya sukses
		h.notifier.Kirim(karyawan.ID, model.NotifAbsensi,
			fmt.Sprintf("Absen %s tercatat %s di %s", strings.ToLower(tipe), waktu, lokasi),
			karyawan.Email)
		if karyawan.AtasanID != nil {
			emailAtasan := ""
			if karyawan.Atasan != nil {
				emailAtasan = karyawan.Atasan.Email
			}
			h.notifier.Kirim(*karyawan.AtasanID, model.NotifBawahan,
				fmt.Sprintf("%s absen %s pada %s di %s", karyawan.Nama, strings.ToLower(tipe), waktu, lokasi),
				emailAtasan)
		}
	}

	// Count cuma menghitung baris yang benar-benar jadi event tersimpan
	return c.SendString(fmt.Sprintf("OK: %d", sukses))
}

// prosesUserSync meng-auto-enroll PIN yang belum punya akun.
// Format baris: PIN \t namaTampilan. PIN yang sudah ada tidak disentuh.
func (h *ADMSHandler) prosesUserSync(c *fiber.Ctx, mesin *model.Mesin) error {
	lokasi := mesin.LokasiEfektif()
	dibuat := 0

	for _, baris := range strings.Split(string(c.Body()), "\n") {
		baris = strings.TrimRight(baris, "\r")
		if strings.TrimSpace(baris) == "" {
			continue
		}

		kolom := strings.Split(baris, "\t")
		pin := strings.TrimSpace(kolom[0])
		if pin == "" {
			continue
		}
		nama := ""
		if len(kolom) >= 2 {
			nama = strings.TrimSpace(kolom[1])
		}

		_, baru, err := h.provisioner.EnsureKaryawan(pin, nama, mesin.OrganisasiID, lokasi)
		if err != nil {
			logger.Log.Error().Err(err).Str("sn", mesin.SN).Str("pin", pin).
				Msg("gagal auto-enroll karyawan dari mesin")
			continue
		}
		if baru {
			dibuat++
			logger.Log.Info().Str("sn", mesin.SN).Str("pin", pin).Str("nama", nama).
				Msg("karyawan baru dari sync roster mesin")
		}
	}

	return c.SendString(fmt.Sprintf("OK: %d", dibuat))
}

// prosesFoto menyimpan foto enrollment. Target karyawan dari query param PIN,
// body request adalah bytes gambar mentah. Selalu dijawab OK.
func (h *ADMSHandler) prosesFoto(c *fiber.Ctx, mesin *model.Mesin) error {
	pin := c.Query("PIN")
	if pin == "" {
		pin = c.Query("pin")
	}
	if pin == "" {
		logger.Log.Warn().Str("sn", mesin.SN).Msg("push USERPIC tanpa PIN, diabaikan")
		return c.SendString("OK")
	}

	karyawan, err := h.karyawanRepo.FindByPIN(pin)
	if err != nil {
		logger.Log.Warn().Str("sn", mesin.SN).Str("pin", pin).
			Msg("push USERPIC untuk PIN yang tidak terdaftar, diabaikan")
		return c.SendString("OK")
	}

	url, err := h.fotoStore.SimpanFotoKaryawan(karyawan.ID, c.Body())
	if err != nil {
		logger.Log.Error().Err(err).Str("pin", pin).Msg("gagal simpan foto karyawan")
		return c.SendString("OK")
	}

	karyawan.Foto = url
	if err := h.karyawanRepo.Update(karyawan); err != nil {
		logger.Log.Error().Err(err).Str("pin", pin).Msg("gagal update referensi foto karyawan")
	}

	return c.SendString("OK")
}
