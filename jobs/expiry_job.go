package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Yash790975/vidhyakendra-backend-sub000/database"
	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
)

// ExpireSubscriptions deactivates subscriptions past their end date and
// flips the owning institute to expired, unless an admin already moved it to
// a terminal status.
func ExpireSubscriptions() {
	log.Println("Running job: ExpireSubscriptions...")

	now := time.Now()
	var overdue []models.Subscription
	err := database.DB.
		Where("is_active = ? AND end_date < ?", true, now).
		Find(&overdue).Error
	if err != nil {
		log.Printf("Error checking for overdue subscriptions: %v", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	expired := 0
	for _, sub := range overdue {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Subscription{}).Where("id = ?", sub.ID).Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(&models.Institute{}).
				Where("id = ? AND status IN ?", sub.InstituteID, []string{models.InstituteStatusActive, models.InstituteStatusTrial}).
				Update("status", models.InstituteStatusExpired).Error
		})
		if err != nil {
			log.Printf("🔥 Failed to expire subscription %s: %v", sub.ID, err)
			continue
		}
		expired++
	}

	log.Printf("✅ Expired %d overdue subscription(s).", expired)
}
