package model

import "gorm.io/gorm"

const (
	NotifAbsensi  = "ABSENSI"
	NotifBawahan  = "ABSENSI_BAWAHAN"
	NotifSeragam  = "SERAGAM"
	NotifApproval = "APPROVAL"
)

type Notifikasi struct {
	gorm.Model
	KaryawanID uint   `json:"karyawan_id"` // Penerima
	Tipe       string `json:"tipe"`
	Pesan      string `json:"pesan"`
	Dibaca     bool   `json:"dibaca" gorm:"default:false"`
}
