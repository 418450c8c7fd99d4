package repository

import (
	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type OrganisasiRepository interface {
	Create(organisasi *model.Organisasi) error
	GetByID(id uint) (*model.Organisasi, error)
	GetAll() ([]model.Organisasi, error)
}

type organisasiRepository struct {
	db *gorm.DB
}

func NewOrganisasiRepository(db *gorm.DB) OrganisasiRepository {
	return &organisasiRepository{db}
}

func (r *organisasiRepository) Create(organisasi *model.Organisasi) error {
	return r.db.Create(organisasi).Error
}

func (r *organisasiRepository) GetByID(id uint) (*model.Organisasi, error) {
	var organisasi model.Organisasi
	err := r.db.Preload("Mesin").First(&organisasi, id).Error
	if err != nil {
		return nil, err
	}
	return &organisasi, nil
}

func (r *organisasiRepository) GetAll() ([]model.Organisasi, error) {
	var list []model.Organisasi
	err := r.db.Order("nama_organisasi asc").Find(&list).Error
	return list, err
}
