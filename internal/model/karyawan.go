package model

import "gorm.io/gorm"

type Karyawan struct {
	gorm.Model
	AtasanID     *uint  `json:"atasan_id"` // Self-reference ke atasan langsung
	OrganisasiID *uint  `json:"organisasi_id"`
	RoleID       uint   `json:"role_id"`
	Nama         string `json:"nama"`
	NIP          string `json:"nip" gorm:"column:nip;unique;not null"`
	Password     string `json:"-"`
	// PIN biometrik yang terdaftar di mesin absensi (bukan ID internal).
	// Jadi kunci join antara log mesin dan akun karyawan, wajib unik.
	PIN      string `json:"pin" gorm:"column:pin;unique"`
	Email    string `json:"email"`
	NoHP     string `json:"no_hp"`
	Foto     string `json:"foto"`
	Jabatan  string `json:"jabatan"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Relasi
	Atasan     *Karyawan   `json:"atasan" gorm:"foreignKey:AtasanID"`
	Bawahan    []Karyawan  `json:"bawahan" gorm:"foreignKey:AtasanID"`
	Kehadiran  []Kehadiran `json:"kehadiran"`
	Role       Role        `gorm:"foreignKey:RoleID"`
	Organisasi *Organisasi `gorm:"foreignKey:OrganisasiID"`
}
