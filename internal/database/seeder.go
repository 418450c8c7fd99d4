package database

import (
	"log"

	"absenku-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. Seed Organisasi
	org := model.Organisasi{NamaOrganisasi: "PT Maju Bersama"}
	db.FirstOrCreate(&org, model.Organisasi{NamaOrganisasi: org.NamaOrganisasi})

	// 2. Seed Roles. KARYAWAN wajib ada: dipakai auto-enrollment dari mesin.
	roles := []model.Role{
		{NamaRole: model.RoleAdmin},
		{NamaRole: model.RoleKaryawan},
	}
	for _, r := range roles {
		db.FirstOrCreate(&r, model.Role{NamaRole: r.NamaRole})
	}

	// 3. Seed Akun Admin Pertama
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)

	var adminRole model.Role
	db.Where("nama_role = ?", model.RoleAdmin).First(&adminRole)

	admin := model.Karyawan{
		Nama:         "Administrator Utama",
		NIP:          "admin",
		PIN:          "1",
		Password:     string(hashedPassword),
		Jabatan:      "HR Manager",
		RoleID:       adminRole.ID,
		OrganisasiID: &org.ID,
		IsActive:     true,
	}

	result := db.FirstOrCreate(&admin, model.Karyawan{NIP: admin.NIP})
	if result.Error == nil {
		// Paksa update password agar selalu sinkron dengan "admin123" meskipun user sudah ada
		db.Model(&admin).Update("password", string(hashedPassword))
		log.Println("Seeding Admin berhasil!")
	}

	// 4. Seed Karyawan contoh (bawahan admin), PIN-nya terdaftar di mesin
	var karyawanRole model.Role
	db.Where("nama_role = ?", model.RoleKaryawan).First(&karyawanRole)

	budi := model.Karyawan{
		Nama:         "Budi Santoso",
		NIP:          "198701012010011001",
		PIN:          "101",
		Password:     string(hashedPassword),
		Jabatan:      "Staf Lapangan",
		RoleID:       karyawanRole.ID,
		OrganisasiID: &org.ID,
		AtasanID:     &admin.ID, // PENTING: link ke admin sebagai atasan
		IsActive:     true,
	}
	db.FirstOrCreate(&budi, model.Karyawan{NIP: budi.NIP})

	// 5. Seed Mesin contoh. SN disimpan uppercase, lookup tetap case-insensitive.
	mesin := model.Mesin{
		SN:           "OC7162968050",
		Nama:         "Fingerprint Lobby",
		Lokasi:       "Kantor Pusat",
		OrganisasiID: &org.ID,
		Status:       model.MesinOffline,
	}
	db.FirstOrCreate(&mesin, model.Mesin{SN: mesin.SN})
}
