package repository

import (
	"time"

	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type MesinRepository interface {
	Create(mesin *model.Mesin) error
	Update(mesin *model.Mesin) error
	Delete(id uint) error
	FindByID(id uint) (*model.Mesin, error)
	FindBySN(sn string) (*model.Mesin, error)
	GetAll() ([]model.Mesin, error)
	TouchOnline(id uint, waktu time.Time) error
	TandaiOffline(sebelum time.Time) (int64, error)
}

type mesinRepository struct {
	db *gorm.DB
}

func NewMesinRepository(db *gorm.DB) MesinRepository {
	return &mesinRepository{db}
}

func (r *mesinRepository) Create(mesin *model.Mesin) error {
	return r.db.Create(mesin).Error
}

func (r *mesinRepository) Update(mesin *model.Mesin) error {
	return r.db.Save(mesin).Error
}

func (r *mesinRepository) Delete(id uint) error {
	return r.db.Delete(&model.Mesin{}, id).Error
}

func (r *mesinRepository) FindByID(id uint) (*model.Mesin, error) {
	var mesin model.Mesin
	err := r.db.Preload("Organisasi").First(&mesin, id).Error
	if err != nil {
		return nil, err
	}
	return &mesin, nil
}

func (r *mesinRepository) FindBySN(sn string) (*model.Mesin, error) {
	// SN dicocokkan case-insensitive: firmware kadang kirim huruf kecil,
	// admin biasanya input huruf besar
	var mesin model.Mesin
	err := r.db.Preload("Organisasi").Where("LOWER(sn) = LOWER(?)", sn).First(&mesin).Error
	if err != nil {
		return nil, err
	}
	return &mesin, nil
}

func (r *mesinRepository) GetAll() ([]model.Mesin, error) {
	var list []model.Mesin
	err := r.db.Preload("Organisasi").Order("nama asc").Find(&list).Error
	return list, err
}

func (r *mesinRepository) TouchOnline(id uint, waktu time.Time) error {
	return r.db.Model(&model.Mesin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"terakhir_online": waktu,
		"status":          model.MesinOnline,
	}).Error
}

// Tandai OFFLINE semua mesin yang terakhir online sebelum batas waktu.
func (r *mesinRepository) TandaiOffline(sebelum time.Time) (int64, error) {
	res := r.db.Model(&model.Mesin{}).
		Where("status = ? AND (terakhir_online IS NULL OR terakhir_online < ?)", model.MesinOnline, sebelum).
		Update("status", model.MesinOffline)
	return res.RowsAffected, res.Error
}
