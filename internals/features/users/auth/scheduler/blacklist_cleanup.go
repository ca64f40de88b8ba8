package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "studentrecords_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler removes expired blacklist entries once an
// hour so the table only holds tokens that could still be replayed.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			res := db.Where("expires_at < ?", time.Now()).
				Delete(&authModel.TokenBlacklistModel{})
			if res.Error != nil {
				log.Printf("[ERROR] blacklist cleanup failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("[INFO] blacklist cleanup removed %d expired tokens", res.RowsAffected)
			}
		}
	}()
}
