package jobs

import (
	"context"
	"log"
	"time"

	"pms-backend/models"
	"pms-backend/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitCronJobs schedules the nightly audit. It runs at 02:00 server time
// against the previous business date, for every property.
func InitCronJobs(c *cron.Cron, db *gorm.DB, reports *services.ReportService) error {
	_, err := c.AddFunc("0 2 * * *", func() {
		runNightAudits(db, reports)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized")
	return nil
}

func runNightAudits(db *gorm.DB, reports *services.ReportService) {
	businessDate := time.Now().UTC().AddDate(0, 0, -1)

	var properties []models.Property
	if err := db.Find(&properties).Error; err != nil {
		log.Printf("night audit: failed to list properties: %v", err)
		return
	}

	for _, prop := range properties {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if _, err := reports.RunNightAudit(ctx, prop.ID, businessDate); err != nil {
			log.Printf("night audit failed for property %d: %v", prop.ID, err)
		} else {
			log.Printf("night audit completed for property %d (%s)", prop.ID, businessDate.Format("2006-01-02"))
		}
		cancel()
	}
}
