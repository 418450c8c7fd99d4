package repository

import (
	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(role *model.Role) error
	FindByNama(nama string) (*model.Role, error)
	GetAll() ([]model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db}
}

func (r *roleRepository) Create(role *model.Role) error {
	return r.db.Create(role).Error
}

func (r *roleRepository) FindByNama(nama string) (*model.Role, error) {
	var role model.Role
	err := r.db.Where("nama_role = ?", nama).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) GetAll() ([]model.Role, error) {
	var list []model.Role
	err := r.db.Find(&list).Error
	return list, err
}
