package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "estudify_backend/internals/features/users/auth/repository"
)

// RunBlacklistCleanup menghapus token blacklist yang exp-nya sudah lewat.
func RunBlacklistCleanup(db *gorm.DB, now time.Time) int64 {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
	n, err := authRepo.CleanupExpiredBlacklist(db, now)
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	} else {
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return n
}

// StartBlacklistCleanupScheduler menjadwalkan cleanup pakai ekspresi cron (5 field).
// Caller wajib Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	if _, err := c.AddFunc(spec, func() {
		RunBlacklistCleanup(db, time.Now())
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] scheduler token_blacklist aktif (%s)", spec)
	return c, nil
}
