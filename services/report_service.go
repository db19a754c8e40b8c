// services/report_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"pms-backend/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const reportCacheTTL = 24 * time.Hour

// ReportService builds the night-audit rollup for one property and business
// date. The latest report is cached in Redis when a client is configured.
type ReportService struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewReportService(db *gorm.DB, rdb *redis.Client) *ReportService {
	return &ReportService{DB: db, RDB: rdb}
}

func dayBounds(businessDate time.Time) (time.Time, time.Time) {
	start := time.Date(businessDate.Year(), businessDate.Month(), businessDate.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// RunNightAudit aggregates the day's non-voided charges and payments,
// snapshots room occupancy, marks overdue confirmed arrivals as no_show and
// persists the report. Re-running for the same date replaces the prior row.
func (s *ReportService) RunNightAudit(ctx context.Context, propertyID uint, businessDate time.Time) (*models.NightAuditReport, error) {
	var prop models.Property
	if err := s.DB.First(&prop, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	start, end := dayBounds(businessDate)

	// confirmed arrivals whose date has passed become no_show
	res := s.DB.Model(&models.Reservation{}).
		Where("property_id = ? AND status = ? AND check_in_date < ?",
			propertyID, models.ReservationStatusConfirmed, start).
		Update("status", models.ReservationStatusNoShow)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark no-shows: %w", res.Error)
	}
	noShows := int(res.RowsAffected)

	charges := decimal.Zero
	var items []models.FolioItem
	err := s.DB.
		Joins("JOIN folios ON folios.id = folio_items.folio_id").
		Where("folios.property_id = ?", propertyID).
		Where("folio_items.voided = ?", false).
		Where("folio_items.created_at >= ? AND folio_items.created_at < ?", start, end).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load day's charges: %w", err)
	}
	for _, it := range items {
		charges = charges.Add(it.TotalPrice).Add(it.TaxAmount)
	}

	payments := decimal.Zero
	byMethod := map[string]decimal.Decimal{}
	var pays []models.Payment
	err = s.DB.
		Joins("JOIN folios ON folios.id = payments.folio_id").
		Where("folios.property_id = ?", propertyID).
		Where("payments.voided = ?", false).
		Where("payments.created_at >= ? AND payments.created_at < ?", start, end).
		Find(&pays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load day's payments: %w", err)
	}
	for _, p := range pays {
		payments = payments.Add(p.Amount)
		byMethod[p.Method] = byMethod[p.Method].Add(p.Amount)
	}

	openBalance := decimal.Zero
	var openFolios []models.Folio
	if err := s.DB.Where("property_id = ? AND status = ?", propertyID, models.FolioStatusOpen).Find(&openFolios).Error; err != nil {
		return nil, fmt.Errorf("failed to load open folios: %w", err)
	}
	for _, f := range openFolios {
		openBalance = openBalance.Add(f.Balance)
	}

	countRooms := func(status string) (int, error) {
		var n int64
		err := s.DB.Model(&models.Room{}).
			Where("property_id = ? AND status = ?", propertyID, status).
			Count(&n).Error
		return int(n), err
	}
	occupied, err := countRooms(models.RoomStatusOccupied)
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	vacant, err := countRooms(models.RoomStatusVacant)
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	dirty, err := countRooms(models.RoomStatusDirty)
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	var arrivals, departures int64
	if err := s.DB.Model(&models.Reservation{}).
		Where("property_id = ? AND checked_in_at >= ? AND checked_in_at < ?", propertyID, start, end).
		Count(&arrivals).Error; err != nil {
		return nil, fmt.Errorf("failed to count arrivals: %w", err)
	}
	if err := s.DB.Model(&models.Reservation{}).
		Where("property_id = ? AND checked_out_at >= ? AND checked_out_at < ?", propertyID, start, end).
		Count(&departures).Error; err != nil {
		return nil, fmt.Errorf("failed to count departures: %w", err)
	}

	methodJSON, _ := json.Marshal(byMethod)

	report := models.NightAuditReport{
		PropertyID:       propertyID,
		BusinessDate:     start,
		ChargesPosted:    charges,
		PaymentsReceived: payments,
		OpenBalance:      openBalance,
		PaymentsByMethod: datatypes.JSON(methodJSON),
		RoomsOccupied:    occupied,
		RoomsVacant:      vacant,
		RoomsDirty:       dirty,
		Arrivals:         int(arrivals),
		Departures:       int(departures),
		NoShows:          noShows,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ? AND business_date = ?", propertyID, start).
			Delete(&models.NightAuditReport{}).Error; err != nil {
			return fmt.Errorf("failed to replace prior report: %w", err)
		}
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to persist report: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cacheLatest(ctx, &report)
	return &report, nil
}

func reportCacheKey(propertyID uint) string {
	return fmt.Sprintf("night_audit:latest:%d", propertyID)
}

// cacheLatest is best-effort: a cache failure never fails the audit.
func (s *ReportService) cacheLatest(ctx context.Context, report *models.NightAuditReport) {
	if s.RDB == nil {
		return
	}
	b, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.RDB.Set(ctx, reportCacheKey(report.PropertyID), b, reportCacheTTL).Err(); err != nil {
		log.Printf("warning: failed to cache night audit report: %v", err)
	}
}

// LatestReport returns the most recent report, served from Redis when
// available.
func (s *ReportService) LatestReport(ctx context.Context, propertyID uint) (*models.NightAuditReport, error) {
	if s.RDB != nil {
		if val, err := s.RDB.Get(ctx, reportCacheKey(propertyID)).Result(); err == nil {
			var cached models.NightAuditReport
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	var report models.NightAuditReport
	err := s.DB.Where("property_id = ?", propertyID).
		Order("business_date DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest report: %w", err)
	}
	return &report, nil
}
