package repository

import (
	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type KaryawanRepository interface {
	Create(karyawan *model.Karyawan) error
	Update(karyawan *model.Karyawan) error
	FindByID(id uint) (*model.Karyawan, error)
	FindByNIP(nip string) (*model.Karyawan, error)
	FindByPIN(pin string) (*model.Karyawan, error)
	GetAll() ([]model.Karyawan, error)
	GetByOrganisasi(orgID uint) ([]model.Karyawan, error)
}

type karyawanRepository struct {
	db *gorm.DB
}

func NewKaryawanRepository(db *gorm.DB) KaryawanRepository {
	return &karyawanRepository{db}
}

func (r *karyawanRepository) Create(karyawan *model.Karyawan) error {
	return r.db.Create(karyawan).Error
}

func (r *karyawanRepository) Update(karyawan *model.Karyawan) error {
	return r.db.Save(karyawan).Error
}

func (r *karyawanRepository) FindByID(id uint) (*model.Karyawan, error) {
	var karyawan model.Karyawan
	err := r.db.Preload("Role").Preload("Organisasi").Preload("Atasan").First(&karyawan, id).Error
	if err != nil {
		return nil, err
	}
	return &karyawan, nil
}

func (r *karyawanRepository) FindByNIP(nip string) (*model.Karyawan, error) {
	var karyawan model.Karyawan
	err := r.db.Preload("Role").Preload("Organisasi").Preload("Atasan").
		Where("nip = ?", nip).First(&karyawan).Error
	if err != nil {
		return nil, err
	}
	return &karyawan, nil
}

func (r *karyawanRepository) FindByPIN(pin string) (*model.Karyawan, error) {
	// Join key antara log mesin dan akun internal: exact match, bukan LIKE
	var karyawan model.Karyawan
	err := r.db.Preload("Atasan").Where("pin = ?", pin).First(&karyawan).Error
	if err != nil {
		return nil, err
	}
	return &karyawan, nil
}

func (r *karyawanRepository) GetAll() ([]model.Karyawan, error) {
	var list []model.Karyawan
	err := r.db.Preload("Role").Preload("Organisasi").Order("nama asc").Find(&list).Error
	return list, err
}

func (r *karyawanRepository) GetByOrganisasi(orgID uint) ([]model.Karyawan, error) {
	var list []model.Karyawan
	err := r.db.Where("organisasi_id = ?", orgID).Order("nama asc").Find(&list).Error
	return list, err
}
