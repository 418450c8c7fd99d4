package repository

import (
	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type NotifikasiRepository interface {
	Create(notifikasi *model.Notifikasi) error
	GetByKaryawan(karyawanID uint) ([]model.Notifikasi, error)
	CountBelumDibaca(karyawanID uint) (int64, error)
	TandaiDibaca(id uint, karyawanID uint) error
	TandaiSemuaDibaca(karyawanID uint) error
}

type notifikasiRepository struct {
	db *gorm.DB
}

func NewNotifikasiRepository(db *gorm.DB) NotifikasiRepository {
	return &notifikasiRepository{db}
}

func (r *notifikasiRepository) Create(notifikasi *model.Notifikasi) error {
	return r.db.Create(notifikasi).Error
}

func (r *notifikasiRepository) GetByKaryawan(karyawanID uint) ([]model.Notifikasi, error) {
	var list []model.Notifikasi
	err := r.db.Where("karyawan_id = ?", karyawanID).Order("id desc").Limit(50).Find(&list).Error
	return list, err
}

func (r *notifikasiRepository) CountBelumDibaca(karyawanID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notifikasi{}).
		Where("karyawan_id = ? AND dibaca = ?", karyawanID, false).Count(&count).Error
	return count, err
}

func (r *notifikasiRepository) TandaiDibaca(id uint, karyawanID uint) error {
	// Filter karyawan_id agar user tidak bisa menandai notifikasi orang lain
	return r.db.Model(&model.Notifikasi{}).
		Where("id = ? AND karyawan_id = ?", id, karyawanID).
		Update("dibaca", true).Error
}

func (r *notifikasiRepository) TandaiSemuaDibaca(karyawanID uint) error {
	return r.db.Model(&model.Notifikasi{}).
		Where("karyawan_id = ? AND dibaca = ?", karyawanID, false).
		Update("dibaca", true).Error
}
