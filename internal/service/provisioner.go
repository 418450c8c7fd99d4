package service

import (
	"fmt"
	"strings"

	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Provisioner membuat akun karyawan dari data roster yang dikirim mesin absensi.
// Operasinya idempoten: push USER yang sama dikirim ulang oleh mesin tidak
// boleh menghasilkan akun ganda.
type Provisioner struct {
	karyawanRepo repository.KaryawanRepository
	roleRepo     repository.RoleRepository
}

func NewProvisioner(karyawanRepo repository.KaryawanRepository, roleRepo repository.RoleRepository) *Provisioner {
	return &Provisioner{karyawanRepo: karyawanRepo, roleRepo: roleRepo}
}

// EnsureKaryawan: cari karyawan by PIN, buat baru kalau belum ada.
// Return (karyawan, true) kalau baru dibuat, (karyawan, false) kalau sudah ada.
// Karyawan yang sudah ada TIDAK di-update sama sekali (nama/role dibiarkan).
func (p *Provisioner) EnsureKaryawan(pin string, nama string, orgID *uint, lokasiLabel string) (*model.Karyawan, bool, error) {
	if existing, err := p.karyawanRepo.FindByPIN(pin); err == nil {
		return existing, false, nil
	}

	role, err := p.roleRepo.FindByNama(model.RoleKaryawan)
	if err != nil {
		return nil, false, fmt.Errorf("role default %s belum di-seed: %w", model.RoleKaryawan, err)
	}

	if nama == "" {
		nama = "Karyawan " + pin
	}

	// Password random sekali pakai. Karyawan hasil auto-enrollment harus
	// di-reset passwordnya oleh admin sebelum bisa login.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	baru := &model.Karyawan{
		NIP:          BuatNIP(lokasiLabel, pin),
		Nama:         nama,
		PIN:          pin,
		Password:     string(hash),
		RoleID:       role.ID,
		OrganisasiID: orgID,
		IsActive:     true,
	}

	if err := p.karyawanRepo.Create(baru); err != nil {
		// Kemungkinan kalah race dengan push lain yang membawa PIN sama
		// (unique constraint). Cek ulang sebelum menyerah.
		if existing, err2 := p.karyawanRepo.FindByPIN(pin); err2 == nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	return baru, true, nil
}

// BuatNIP menurunkan login deterministik dari label lokasi + PIN mesin,
// misal "gudang utara" + "105" -> "gudangutara.105". Deterministik itu penting:
// sync ulang menghasilkan NIP yang sama dan mentok di unique constraint,
// bukan bikin akun kedua.
func BuatNIP(lokasiLabel string, pin string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(lokasiLabel) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "mesin"
	}
	return prefix + "." + pin
}
