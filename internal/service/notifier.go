package service

import (
	"absenku-backend/config"
	"absenku-backend/internal/logger"
	"absenku-backend/internal/model"
	"absenku-backend/internal/repository"

	"gopkg.in/gomail.v2"
)

type notifJob struct {
	notif model.Notifikasi
	email string // Opsional: kalau diisi dan SMTP dikonfigurasi, kirim tembusan email
}

// Notifier memproses notifikasi di background lewat antrian buffered.
// Kontrak: Kirim() tidak pernah block dan tidak pernah return error,
// kegagalan notifikasi tidak boleh menggagalkan ingestion absensi.
type Notifier struct {
	repo   repository.NotifikasiRepository
	dialer *gomail.Dialer
	from   string
	ch     chan notifJob
	done   chan struct{}
}

func NewNotifier(repo repository.NotifikasiRepository) *Notifier {
	n := &Notifier{
		repo: repo,
		ch:   make(chan notifJob, 256),
		done: make(chan struct{}),
	}

	// SMTP opsional: aktif hanya kalau SMTP_HOST diisi
	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		n.dialer = gomail.NewDialer(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASS", ""),
		)
		n.from = config.GetEnv("SMTP_FROM", "noreply@absenku.local")
	}

	go n.loop()
	return n
}

// Kirim antre satu notifikasi, fire-and-forget. Kalau antrian penuh
// notifikasinya dibuang (dan dicatat di log), bukan nge-block request.
func (n *Notifier) Kirim(karyawanID uint, tipe string, pesan string, email string) {
	job := notifJob{
		notif: model.Notifikasi{KaryawanID: karyawanID, Tipe: tipe, Pesan: pesan},
		email: email,
	}
	select {
	case n.ch <- job:
	default:
		logger.Log.Warn().Uint("karyawan_id", karyawanID).Msg("antrian notifikasi penuh, pesan dibuang")
	}
}

// Tutup menutup antrian dan menunggu worker selesai. Dipakai saat shutdown
// dan oleh test yang perlu memastikan semua notifikasi sudah tersimpan.
func (n *Notifier) Tutup() {
	close(n.ch)
	<-n.done
}

func (n *Notifier) loop() {
	defer close(n.done)
	for job := range n.ch {
		if err := n.repo.Create(&job.notif); err != nil {
			logger.Log.Warn().Err(err).Uint("karyawan_id", job.notif.KaryawanID).
				Msg("gagal simpan notifikasi")
			continue
		}
		n.kirimEmail(job)
	}
}

func (n *Notifier) kirimEmail(job notifJob) {
	if n.dialer == nil || job.email == "" {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", job.email)
	m.SetHeader("Subject", "[AbsenKu] "+job.notif.Tipe)
	m.SetBody("text/plain", job.notif.Pesan)
	if err := n.dialer.DialAndSend(m); err != nil {
		// Email cuma tembusan, gagal kirim tidak masalah
		logger.Log.Warn().Err(err).Str("to", job.email).Msg("gagal kirim email notifikasi")
	}
}
