package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"bimbelku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menghapus token blacklist yang sudah
// lewat masa berlakunya, tiap 24 jam.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token_blacklists...")

			res := db.
				Where("expires_at < ?", time.Now().UTC()).
				Delete(&model.TokenBlacklistModel{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d token kadaluarsa dihapus", res.RowsAffected)
			} else {
				log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
