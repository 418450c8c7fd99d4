package repository

import (
	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type SeragamRepository interface {
	Create(permintaan *model.PermintaanSeragam) error
	Update(permintaan *model.PermintaanSeragam) error
	FindByID(id uint) (*model.PermintaanSeragam, error)
	GetByKaryawanID(karyawanID uint) ([]model.PermintaanSeragam, error)
	GetByAtasanID(atasanID uint) ([]model.PermintaanSeragam, error)
}

type seragamRepository struct {
	db *gorm.DB
}

func NewSeragamRepository(db *gorm.DB) SeragamRepository {
	return &seragamRepository{db}
}

func (r *seragamRepository) Create(permintaan *model.PermintaanSeragam) error {
	return r.db.Create(permintaan).Error
}

func (r *seragamRepository) Update(permintaan *model.PermintaanSeragam) error {
	return r.db.Save(permintaan).Error
}

func (r *seragamRepository) FindByID(id uint) (*model.PermintaanSeragam, error) {
	var permintaan model.PermintaanSeragam
	err := r.db.Preload("Karyawan").First(&permintaan, id).Error
	if err != nil {
		return nil, err
	}
	return &permintaan, nil
}

func (r *seragamRepository) GetByKaryawanID(karyawanID uint) ([]model.PermintaanSeragam, error) {
	var list []model.PermintaanSeragam
	err := r.db.Where("karyawan_id = ?", karyawanID).Order("id desc").Find(&list).Error
	return list, err
}

func (r *seragamRepository) GetByAtasanID(atasanID uint) ([]model.PermintaanSeragam, error) {
	// Join ke tabel karyawan: ambil semua permintaan milik bawahan langsung
	var list []model.PermintaanSeragam
	err := r.db.Preload("Karyawan").
		Joins("JOIN karyawans ON karyawans.id = permintaan_seragams.karyawan_id").
		Where("karyawans.atasan_id = ?", atasanID).
		Order("permintaan_seragams.id desc").
		Find(&list).Error
	return list, err
}
