package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"absenku-backend/internal/model"
)

func (e *testEnv) login(t *testing.T, nip string) string {
	t.Helper()
	_, body := e.kirimJSON(t, "POST", "/api/auth/login", `{"nip":"`+nip+`","password":"rahasia123"}`, "")

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil || out.Token == "" {
		t.Fatalf("login %s gagal: %s", nip, body)
	}
	return out.Token
}

func (e *testEnv) kirimJSON(t *testing.T, method, url, body, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s gagal: %v", method, url, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp.StatusCode, string(raw)
}

func TestLoginDanProfil(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	token := env.login(t, env.budi.NIP)

	status, body := env.kirimJSON(t, "GET", "/api/auth/profile", "", token)
	if status != 200 {
		t.Fatalf("profile status = %d: %s", status, body)
	}
	if !strings.Contains(body, "Budi Santoso") {
		t.Errorf("profil tidak berisi nama: %s", body)
	}

	// Tanpa token harus ditolak
	status, _ = env.kirimJSON(t, "GET", "/api/auth/profile", "", "")
	if status != 401 {
		t.Errorf("tanpa token: status = %d, mau 401", status)
	}
}

func TestLoginPasswordSalah(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	status, _ := env.kirimJSON(t, "POST", "/api/auth/login", `{"nip":"123100","password":"salah"}`, "")
	if status != 401 {
		t.Fatalf("status = %d, mau 401", status)
	}
}

func TestEntriManualButuhKeterangan(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	token := env.login(t, env.budi.NIP)

	status, _ := env.kirimJSON(t, "POST", "/api/kehadiran/manual", `{"tipe":"MASUK"}`, token)
	if status != 400 {
		t.Fatalf("manual tanpa keterangan: status = %d, mau 400", status)
	}
}

func TestEntriManualTercatatDanAtasanDikabari(t *testing.T) {
	env := setupTestEnv(t)

	token := env.login(t, env.budi.NIP)

	status, _ := env.kirimJSON(t, "POST", "/api/kehadiran/manual",
		`{"tipe":"MASUK","keterangan":"Mesin lobby mati"}`, token)
	if status != 200 {
		t.Fatalf("status = %d, mau 200", status)
	}

	events := env.semuaKehadiran(t)
	if len(events) != 1 || events[0].Sumber != model.SumberManual {
		t.Fatalf("event manual tidak tersimpan dengan benar: %+v", events)
	}

	env.notifier.Tutup()
	var notif []model.Notifikasi
	env.db.Where("karyawan_id = ?", env.atasan.ID).Find(&notif)
	if len(notif) != 1 {
		t.Errorf("atasan harus dapat 1 notifikasi, dapat %d", len(notif))
	}
}

func TestSeragamAlurApproval(t *testing.T) {
	env := setupTestEnv(t)
	defer env.notifier.Tutup()

	tokenBudi := env.login(t, env.budi.NIP)
	tokenAtasan := env.login(t, env.atasan.NIP)

	// 1. Budi mengajukan
	status, _ := env.kirimJSON(t, "POST", "/api/seragam/",
		`{"jenis":"Kemeja","ukuran":"L","jumlah":2,"alasan":"Seragam lama robek"}`, tokenBudi)
	if status != 200 {
		t.Fatalf("ajukan: status = %d", status)
	}

	// 2. Muncul di daftar bawahan si atasan
	status, body := env.kirimJSON(t, "GET", "/api/seragam/bawahan", "", tokenAtasan)
	if status != 200 || !strings.Contains(body, "Kemeja") {
		t.Fatalf("daftar bawahan: status=%d body=%s", status, body)
	}

	var permintaan model.PermintaanSeragam
	if err := env.db.First(&permintaan).Error; err != nil {
		t.Fatalf("permintaan tidak tersimpan: %v", err)
	}

	// 3. Bukan atasan -> ditolak
	status, _ = env.kirimJSON(t, "PUT", "/api/seragam/1/approval", `{"status":"DISETUJUI"}`, tokenBudi)
	if status != 403 {
		t.Errorf("approval oleh bukan atasan: status = %d, mau 403", status)
	}

	// 4. Atasan menyetujui
	status, _ = env.kirimJSON(t, "PUT", "/api/seragam/1/approval",
		`{"status":"DISETUJUI","catatan":"Ambil di gudang"}`, tokenAtasan)
	if status != 200 {
		t.Fatalf("approval: status = %d", status)
	}

	env.db.First(&permintaan)
	if permintaan.Status != "DISETUJUI" {
		t.Errorf("status = %q, mau DISETUJUI", permintaan.Status)
	}

	// 5. Sudah diproses, tidak bisa diproses ulang
	status, _ = env.kirimJSON(t, "PUT", "/api/seragam/1/approval", `{"status":"DITOLAK"}`, tokenAtasan)
	if status != 400 {
		t.Errorf("approval ulang: status = %d, mau 400", status)
	}
}
