package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"absenku-backend/config"
	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"
	"absenku-backend/internal/routes"
	"absenku-backend/internal/service"
	"absenku-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv menyiapkan app fiber + sqlite in-memory dengan data dasar:
// satu organisasi, satu mesin "ABC123" di "Gudang Utara", atasan Siti (PIN 900)
// dan bawahannya Budi (PIN 123).
type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	notifier *service.Notifier
	fotoDir  string
	mesin    model.Mesin
	atasan   model.Karyawan
	budi     model.Karyawan
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gagal buka sqlite in-memory: %v", err)
	}
	config.Migrate(db)

	org := model.Organisasi{NamaOrganisasi: "PT Sumber Rejeki"}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("seed organisasi: %v", err)
	}

	roleKaryawan := model.Role{NamaRole: model.RoleKaryawan}
	roleAdmin := model.Role{NamaRole: model.RoleAdmin}
	db.Create(&roleKaryawan)
	db.Create(&roleAdmin)

	mesin := model.Mesin{SN: "ABC123", Nama: "Fingerprint Gudang", Lokasi: "Gudang Utara", OrganisasiID: &org.ID}
	if err := db.Create(&mesin).Error; err != nil {
		t.Fatalf("seed mesin: %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)

	atasan := model.Karyawan{
		Nama: "Siti Manajer", NIP: "900100", PIN: "900",
		Password: string(hash), Email: "siti@contoh.co.id",
		RoleID: roleAdmin.ID, OrganisasiID: &org.ID, IsActive: true,
	}
	if err := db.Create(&atasan).Error; err != nil {
		t.Fatalf("seed atasan: %v", err)
	}

	budi := model.Karyawan{
		Nama: "Budi Santoso", NIP: "123100", PIN: "123",
		Password: string(hash), Email: "budi@contoh.co.id",
		RoleID: roleKaryawan.ID, OrganisasiID: &org.ID,
		AtasanID: &atasan.ID, IsActive: true,
	}
	if err := db.Create(&budi).Error; err != nil {
		t.Fatalf("seed karyawan: %v", err)
	}

	notifier := service.NewNotifier(repository.NewNotifikasiRepository(db))
	fotoDir := t.TempDir()
	fotoStore := storage.NewPhotoStore(fotoDir, "http://localhost:3000")

	app := fiber.New()
	routes.SetupADMSRoutes(app, db, notifier, fotoStore)
	routes.SetupAuthRoutes(app, db)
	routes.SetupKehadiranRoutes(app, db, notifier)
	routes.SetupNotifikasiRoutes(app, db)
	routes.SetupSeragamRoutes(app, db, notifier)

	return &testEnv{app: app, db: db, notifier: notifier, fotoDir: fotoDir, mesin: mesin, atasan: atasan, budi: budi}
}

func (e *testEnv) kirim(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s gagal: %v", method, url, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(raw)
}

func (e *testEnv) semuaKehadiran(t *testing.T) []model.Kehadiran {
	t.Helper()
	var list []model.Kehadiran
	if err := e.db.Order("id asc").Find(&list).Error; err != nil {
		t.Fatalf("baca kehadiran: %v", err)
	}
	return list
}

func TestHandshakeMesinTerdaftar(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	resp, body := env.kirim(t, "GET", "/iclock/cdata?SN=ABC123", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	// Wajib persis "OK" plain text, bukan JSON
	if body != "OK" {
		t.Fatalf("body = %q, mau %q", body, "OK")
	}

	var mesin model.Mesin
	env.db.First(&mesin, env.mesin.ID)
	if mesin.Status != model.MesinOnline {
		t.Errorf("status mesin = %q, mau ONLINE", mesin.Status)
	}
	if mesin.TerakhirOnline == nil {
		t.Error("TerakhirOnline masih nil setelah handshake")
	}
}

func TestHandshakeSNCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// Param "sn" huruf kecil + SN huruf kecil tetap ketemu
	_, body := env.kirim(t, "GET", "/iclock/cdata?sn=abc123", "")
	if body != "OK" {
		t.Fatalf("body = %q, mau %q", body, "OK")
	}

	var mesin model.Mesin
	env.db.First(&mesin, env.mesin.ID)
	if mesin.Status != model.MesinOnline {
		t.Errorf("lookup SN case-insensitive gagal, status = %q", mesin.Status)
	}
}

func TestHandshakeMesinTidakTerdaftar(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// Mesin yang belum didaftarkan tetap dijawab OK, bukan error
	resp, body := env.kirim(t, "GET", "/iclock/cdata?SN=TIDAKADA", "")
	if resp.StatusCode != 200 || body != "OK" {
		t.Fatalf("status=%d body=%q, mau 200 %q", resp.StatusCode, body, "OK")
	}
}

func TestHealthCheckTanpaSN(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	resp, body := env.kirim(t, "GET", "/iclock/cdata", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	if body == "OK" || body == "" {
		t.Fatalf("health check harus string liveness, dapat %q", body)
	}
}

func TestPreflight(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	resp, body := env.kirim(t, "OPTIONS", "/iclock/cdata", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("header CORS tidak diset")
	}
	if body != "" {
		t.Errorf("preflight harus body kosong, dapat %q", body)
	}
}

func TestPushTanpaSN(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	resp, _ := env.kirim(t, "POST", "/iclock/cdata?table=ATTLOG", "123\t2024-01-10 09:00:00\t1")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("push tanpa SN harus 400, dapat %d", resp.StatusCode)
	}
	if len(env.semuaKehadiran(t)) != 0 {
		t.Error("tidak boleh ada event tersimpan")
	}
}

func TestPushTableTidakDikenal(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// Forward compatibility: tabel asing tetap di-ack
	resp, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=OPERLOG", "isi bebas")
	if resp.StatusCode != 200 || body != "OK" {
		t.Fatalf("status=%d body=%q, mau 200 %q", resp.StatusCode, body, "OK")
	}
}

func TestAttlogBatchCampuran(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// PIN 123 dikenal, 124 tidak: cuma satu event, count cuma hitung yang tersimpan
	payload := "123\t2024-01-10 09:00:00\t1\n124\t2024-01-10 09:05:00\t0"
	resp, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	if body != "OK: 1" {
		t.Fatalf("body = %q, mau %q", body, "OK: 1")
	}

	events := env.semuaKehadiran(t)
	if len(events) != 1 {
		t.Fatalf("jumlah event = %d, mau 1", len(events))
	}
	ev := events[0]
	if ev.KaryawanID != env.budi.ID {
		t.Errorf("karyawan_id = %d, mau %d", ev.KaryawanID, env.budi.ID)
	}
	if ev.Tipe != model.TipeMasuk {
		t.Errorf("tipe = %q, mau MASUK", ev.Tipe)
	}
	if ev.Waktu != "2024-01-10 09:00:00" {
		t.Errorf("waktu = %q, harus persis string dari mesin", ev.Waktu)
	}
	if ev.Lokasi != "Gudang Utara" {
		t.Errorf("lokasi = %q, mau label lokasi mesin", ev.Lokasi)
	}
	if ev.MesinID == nil || *ev.MesinID != env.mesin.ID {
		t.Error("referensi mesin tidak tersimpan")
	}
	if ev.Sumber != model.SumberMesin {
		t.Errorf("sumber = %q, mau MESIN", ev.Sumber)
	}
}

func TestAttlogMappingStatus(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// "1" = MASUK; "0", kolom status hilang, atau nilai aneh = PULANG
	payload := "123\t2024-01-10 08:00:00\t1\n" +
		"123\t2024-01-10 12:00:00\t0\n" +
		"123\t2024-01-10 15:00:00\n" +
		"123\t2024-01-10 17:00:00\t15"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)
	if body != "OK: 4" {
		t.Fatalf("body = %q, mau %q", body, "OK: 4")
	}

	events := env.semuaKehadiran(t)
	mau := []string{model.TipeMasuk, model.TipePulang, model.TipePulang, model.TipePulang}
	if len(events) != len(mau) {
		t.Fatalf("jumlah event = %d, mau %d", len(events), len(mau))
	}
	for i, ev := range events {
		if ev.Tipe != mau[i] {
			t.Errorf("event %d: tipe = %q, mau %q", i, ev.Tipe, mau[i])
		}
	}
}

func TestAttlogUrutanBatchDipertahankan(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	payload := "123\t2024-01-10 09:00:00\t1\n123\t2024-01-10 17:00:00\t0"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)
	if body != "OK: 2" {
		t.Fatalf("body = %q, mau %q", body, "OK: 2")
	}

	// Event terakhir setelah batch = PULANG (urutan payload dipertahankan)
	terakhir, err := repository.NewKehadiranRepository(env.db).GetTerakhir(env.budi.ID)
	if err != nil {
		t.Fatalf("GetTerakhir: %v", err)
	}
	if terakhir.Tipe != model.TipePulang {
		t.Errorf("event terakhir = %q, mau PULANG", terakhir.Tipe)
	}
}

func TestAttlogBarisRusakDilewati(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// Baris kosong dan baris < 2 kolom dilewati tanpa menggagalkan sisanya
	payload := "cuma-satu-kolom\n\n   \n123\t2024-01-10 09:00:00\t1\r\n"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)
	if body != "OK: 1" {
		t.Fatalf("body = %q, mau %q", body, "OK: 1")
	}
	if len(env.semuaKehadiran(t)) != 1 {
		t.Error("harusnya cuma 1 event tersimpan")
	}
}

func TestAttlogPINTidakDikenalBerulang(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// PIN asing tidak pernah menghasilkan event, berapa kalipun muncul
	payload := "999\t2024-01-10 09:00:00\t1\n999\t2024-01-10 09:00:05\t1\n999\t2024-01-10 09:00:10\t1"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)
	if body != "OK: 0" {
		t.Fatalf("body = %q, mau %q", body, "OK: 0")
	}
	if len(env.semuaKehadiran(t)) != 0 {
		t.Error("PIN tidak dikenal tidak boleh menghasilkan event")
	}
}

func TestAttlogMesinTidakTerdaftar(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// Mesin asing: di-ack OK biar tidak retry selamanya, tapi tidak diproses
	resp, body := env.kirim(t, "POST", "/iclock/cdata?SN=TIDAKADA&table=ATTLOG", "123\t2024-01-10 09:00:00\t1")
	if resp.StatusCode != 200 || body != "OK" {
		t.Fatalf("status=%d body=%q, mau 200 %q", resp.StatusCode, body, "OK")
	}
	if len(env.semuaKehadiran(t)) != 0 {
		t.Error("push dari mesin asing tidak boleh menghasilkan event")
	}
}

func TestAttlogLivenessDiupdate(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	payload := "123\t2024-01-10 09:00:00\t1"
	env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)

	var mesin model.Mesin
	env.db.First(&mesin, env.mesin.ID)
	if mesin.Status != model.MesinOnline || mesin.TerakhirOnline == nil {
		t.Error("push data harus menyegarkan liveness mesin")
	}
}

func TestAttlogNotifikasiKaryawanDanAtasan(t *testing.T) {
	env := setupTestEnv(t)

	payload := "123\t2024-01-10 09:00:00\t1"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=ATTLOG", payload)
	if body != "OK: 1" {
		t.Fatalf("body = %q, mau %q", body, "OK: 1")
	}

	// Tutup antrian supaya semua notifikasi pasti sudah tersimpan
	env.notifier.Tutup()

	var notifBudi, notifAtasan []model.Notifikasi
	env.db.Where("karyawan_id = ?", env.budi.ID).Find(&notifBudi)
	env.db.Where("karyawan_id = ?", env.atasan.ID).Find(&notifAtasan)

	if len(notifBudi) != 1 || notifBudi[0].Tipe != model.NotifAbsensi {
		t.Errorf("notifikasi karyawan = %+v, mau 1 tipe ABSENSI", notifBudi)
	}
	if len(notifAtasan) != 1 || notifAtasan[0].Tipe != model.NotifBawahan {
		t.Errorf("notifikasi atasan = %+v, mau 1 tipe ABSENSI_BAWAHAN", notifAtasan)
	}
}

func TestUserSyncBuatYangBelumAda(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	// 300 & 301 baru, 123 sudah ada (tidak boleh diubah)
	payload := "300\tJoko Widodo\n301\tSri Lestari\n123\tNama Pengganti"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=USER", payload)
	if body != "OK: 2" {
		t.Fatalf("body = %q, mau %q", body, "OK: 2")
	}

	var joko model.Karyawan
	if err := env.db.Where("pin = ?", "300").First(&joko).Error; err != nil {
		t.Fatalf("karyawan PIN 300 tidak dibuat: %v", err)
	}
	if joko.Nama != "Joko Widodo" {
		t.Errorf("nama = %q", joko.Nama)
	}
	// NIP deterministik dari label lokasi mesin + PIN
	if joko.NIP != "gudangutara.300" {
		t.Errorf("nip = %q, mau gudangutara.300", joko.NIP)
	}
	if joko.OrganisasiID == nil || *joko.OrganisasiID != *env.mesin.OrganisasiID {
		t.Error("organisasi tidak diambil dari mesin")
	}

	var role model.Role
	env.db.First(&role, joko.RoleID)
	if role.NamaRole != model.RoleKaryawan {
		t.Errorf("role = %q, mau KARYAWAN", role.NamaRole)
	}

	// Karyawan lama tidak disentuh
	var budi model.Karyawan
	env.db.First(&budi, env.budi.ID)
	if budi.Nama != "Budi Santoso" {
		t.Errorf("sync USER mengubah karyawan lama: nama = %q", budi.Nama)
	}
}

func TestUserSyncIdempoten(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	payload := "300\tJoko Widodo"
	_, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=USER", payload)
	if body != "OK: 1" {
		t.Fatalf("push pertama: body = %q, mau %q", body, "OK: 1")
	}

	// Mesin sering mengirim ulang roster yang sama (at-least-once)
	_, body = env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=USER", payload)
	if body != "OK: 0" {
		t.Fatalf("push kedua: body = %q, mau %q", body, "OK: 0")
	}

	var jumlah int64
	env.db.Model(&model.Karyawan{}).Where("pin = ?", "300").Count(&jumlah)
	if jumlah != 1 {
		t.Errorf("jumlah akun PIN 300 = %d, mau 1", jumlah)
	}
}

func TestUserPicSimpanFoto(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	resp, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=USERPIC&PIN=123", "bytes-gambar-mentah")
	if resp.StatusCode != 200 || body != "OK" {
		t.Fatalf("status=%d body=%q, mau 200 %q", resp.StatusCode, body, "OK")
	}

	var budi model.Karyawan
	env.db.First(&budi, env.budi.ID)
	if !strings.Contains(budi.Foto, "karyawan_") || !strings.HasPrefix(budi.Foto, "http://localhost:3000/uploads/") {
		t.Errorf("foto = %q, mau URL publik deterministik", budi.Foto)
	}

	// File fisiknya beneran ketulis
	isi, err := os.ReadFile(filepath.Join(env.fotoDir, filepath.Base(budi.Foto)))
	if err != nil {
		t.Fatalf("file foto tidak ada: %v", err)
	}
	if string(isi) != "bytes-gambar-mentah" {
		t.Error("isi file foto tidak sama dengan body request")
	}
}

func TestUserPicPINTidakDikenalTetapOK(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	resp, body := env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=USERPIC&PIN=777", "bytes")
	if resp.StatusCode != 200 || body != "OK" {
		t.Fatalf("status=%d body=%q, mau 200 %q", resp.StatusCode, body, "OK")
	}

	// Tanpa PIN juga tetap OK
	resp, body = env.kirim(t, "POST", "/iclock/cdata?SN=ABC123&table=USERPIC", "bytes")
	if resp.StatusCode != 200 || body != "OK" {
		t.Fatalf("tanpa PIN: status=%d body=%q, mau 200 %q", resp.StatusCode, body, "OK")
	}
}
