package model

import "gorm.io/gorm"

const (
	TipeMasuk  = "MASUK"
	TipePulang = "PULANG"

	SumberMesin  = "MESIN"
	SumberManual = "MANUAL"
)

// Kehadiran adalah satu event absen (masuk ATAU pulang), append-only.
// Record tidak pernah di-update/delete oleh jalur ingestion.
type Kehadiran struct {
	gorm.Model
	KaryawanID uint   `json:"karyawan_id"`
	MesinID    *uint  `json:"mesin_id"` // Null untuk entri manual
	Tipe       string `json:"tipe"`     // MASUK / PULANG

	// Timestamp mentah dari mesin (jam lokal device, tanpa koreksi timezone).
	// Format "2006-01-02 15:04:05" tapi disimpan apa adanya.
	Waktu      string `json:"waktu"`
	Lokasi     string `json:"lokasi"`
	Sumber     string `json:"sumber"` // MESIN / MANUAL
	Keterangan string `json:"keterangan"`

	Karyawan Karyawan `gorm:"foreignKey:KaryawanID" json:"karyawan"`
}
