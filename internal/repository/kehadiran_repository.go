package repository

import (
	"absenku-backend/internal/model"

	"gorm.io/gorm"
)

type KehadiranRepository interface {
	Create(kehadiran *model.Kehadiran) error
	GetTerakhir(karyawanID uint) (*model.Kehadiran, error)
	GetHariIni(karyawanID uint, tanggal string) ([]model.Kehadiran, error)
	GetRiwayat(karyawanID uint) ([]model.Kehadiran, error)
	GetByBulan(karyawanID uint, bulan string, tahun string) ([]model.Kehadiran, error)
	GetByMesin(mesinID uint, limit int) ([]model.Kehadiran, error)
}

type kehadiranRepository struct {
	db *gorm.DB
}

func NewKehadiranRepository(db *gorm.DB) KehadiranRepository {
	return &kehadiranRepository{db}
}

func (r *kehadiranRepository) Create(kehadiran *model.Kehadiran) error {
	return r.db.Create(kehadiran).Error
}

func (r *kehadiranRepository) GetTerakhir(karyawanID uint) (*model.Kehadiran, error) {
	// Event terakhir = id terbesar. Urutan insert dalam satu batch ADMS
	// dipertahankan karena ingestion memproses baris secara sekuensial.
	var kehadiran model.Kehadiran
	err := r.db.Where("karyawan_id = ?", karyawanID).Order("id desc").First(&kehadiran).Error
	if err != nil {
		return nil, err
	}
	return &kehadiran, nil
}

func (r *kehadiranRepository) GetHariIni(karyawanID uint, tanggal string) ([]model.Kehadiran, error) {
	// Kolom waktu berformat "2006-01-02 15:04:05", jadi cukup prefix match
	var list []model.Kehadiran
	err := r.db.Where("karyawan_id = ? AND waktu LIKE ?", karyawanID, tanggal+"%").
		Order("id asc").Find(&list).Error
	return list, err
}

func (r *kehadiranRepository) GetRiwayat(karyawanID uint) ([]model.Kehadiran, error) {
	var list []model.Kehadiran
	err := r.db.Where("karyawan_id = ?", karyawanID).Order("id desc").Limit(100).Find(&list).Error
	return list, err
}

func (r *kehadiranRepository) GetByBulan(karyawanID uint, bulan string, tahun string) ([]model.Kehadiran, error) {
	var list []model.Kehadiran
	err := r.db.Where("karyawan_id = ? AND waktu LIKE ?", karyawanID, tahun+"-"+bulan+"%").
		Order("id asc").Find(&list).Error
	return list, err
}

func (r *kehadiranRepository) GetByMesin(mesinID uint, limit int) ([]model.Kehadiran, error) {
	var list []model.Kehadiran
	err := r.db.Preload("Karyawan").Where("mesin_id = ?", mesinID).
		Order("id desc").Limit(limit).Find(&list).Error
	return list, err
}
