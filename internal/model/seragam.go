package model

import "gorm.io/gorm"

type PermintaanSeragam struct {
	gorm.Model
	KaryawanID uint   `json:"karyawan_id"`
	NIPAtasan  string `json:"nip_atasan"`
	Jenis      string `json:"jenis"` // Kemeja, Celana, Rompi, dll
	Ukuran     string `json:"ukuran"`
	Jumlah     int    `json:"jumlah" gorm:"default:1"`
	Alasan     string `json:"alasan"`
	Status     string `json:"status" gorm:"default:MENUNGGU"` // MENUNGGU / DISETUJUI / DITOLAK
	Catatan    string `json:"catatan"`                        // Catatan approval dari atasan

	// Relasi untuk Preload data pemohon
	Karyawan Karyawan `gorm:"foreignKey:KaryawanID" json:"karyawan"`
}
