package model

import "gorm.io/gorm"

const (
	RoleAdmin    = "ADMIN"
	RoleKaryawan = "KARYAWAN" // Default untuk hasil auto-enrollment dari mesin
)

type Role struct {
	gorm.Model
	NamaRole string     `json:"nama_role" gorm:"unique;not null"`
	Karyawan []Karyawan `json:"karyawan"`
}
