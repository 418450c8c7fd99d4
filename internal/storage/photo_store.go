package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// PhotoStore menyimpan foto enrollment karyawan di disk lokal di bawah
// ./uploads (di-serve statis oleh fiber) dan mengembalikan URL publiknya.
type PhotoStore struct {
	dir     string
	baseURL string
}

func NewPhotoStore(dir string, baseURL string) *PhotoStore {
	return &PhotoStore{dir: dir, baseURL: baseURL}
}

// SimpanFotoKaryawan menulis bytes mentah dari mesin ke key deterministik
// per karyawan. Push ulang foto yang sama menimpa file lama, bukan menumpuk.
func (s *PhotoStore) SimpanFotoKaryawan(karyawanID uint, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("karyawan_%d.jpg", karyawanID)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/foto_karyawan/%s", s.baseURL, filename), nil
}
