package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	MesinOnline  = "ONLINE"
	MesinOffline = "OFFLINE"
)

// Mesin = mesin absensi biometrik (fingerprint/face) yang push data via ADMS.
type Mesin struct {
	gorm.Model
	SN             string     `json:"sn" gorm:"unique;not null"` // Serial number mesin, dicocokkan case-insensitive
	Nama           string     `json:"nama"`
	Lokasi         string     `json:"lokasi"` // Label lokasi manual, boleh kosong
	OrganisasiID   *uint      `json:"organisasi_id"`
	TerakhirOnline *time.Time `json:"terakhir_online"`
	Status         string     `json:"status" gorm:"default:OFFLINE"`

	Organisasi *Organisasi `gorm:"foreignKey:OrganisasiID" json:"organisasi"`
}

// LokasiEfektif: label lokasi manual > nama organisasi > default.
func (m *Mesin) LokasiEfektif() string {
	if m.Lokasi != "" {
		return m.Lokasi
	}
	if m.Organisasi != nil && m.Organisasi.NamaOrganisasi != "" {
		return m.Organisasi.NamaOrganisasi
	}
	return "Kantor"
}
