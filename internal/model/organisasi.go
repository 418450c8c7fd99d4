package model

import "gorm.io/gorm"

type Organisasi struct {
	gorm.Model
	NamaOrganisasi string     `json:"nama_organisasi" gorm:"not null"`
	Karyawan       []Karyawan `json:"karyawan"`
	Mesin          []Mesin    `json:"mesin"`
}
