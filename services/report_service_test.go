package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pms-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNightAudit(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)
	guest := seedGuest(t, db, prop.ID)
	rt := seedRoomType(t, db, prop.ID, 100)
	seedRoom(t, db, prop.ID, rt.ID, "101")
	dirty := seedRoom(t, db, prop.ID, rt.ID, "102")
	require.NoError(t, db.Model(&models.Room{}).
		Where("id = ?", dirty.ID).
		Update("status", models.RoomStatusDirty).Error)

	// an overdue confirmed arrival, due to become no_show
	overdueArrival := time.Now().UTC().AddDate(0, 0, -3)
	overdueDeparture := overdueArrival.AddDate(0, 0, 2)
	stale := models.Reservation{
		PropertyID:   prop.ID,
		GuestID:      guest.ID,
		Status:       models.ReservationStatusConfirmed,
		CheckInDate:  &overdueArrival,
		CheckOutDate: &overdueDeparture,
		Nights:       2,
	}
	require.NoError(t, db.Create(&stale).Error)

	folios := NewFolioService(db)
	folio, err := folios.CreateFolio(prop.ID, guest.ID, nil)
	require.NoError(t, err)
	_, err = folios.AddCharge(prop.ID, folio.ID,
		models.ItemTypeRoom, "Room charge",
		decimal.NewFromInt(1), decimal.NewFromInt(1000), nil)
	require.NoError(t, err)
	_, err = folios.RecordPayment(prop.ID, folio.ID,
		decimal.NewFromInt(500), models.PaymentMethodCash, "", nil)
	require.NoError(t, err)

	svc := NewReportService(db, nil)
	report, err := svc.RunNightAudit(context.Background(), prop.ID, time.Now().UTC())
	require.NoError(t, err)

	// charges roll up item total + tax; service charge lives on the folio only
	assertDec(t, "1100", report.ChargesPosted)
	assertDec(t, "500", report.PaymentsReceived)
	assertDec(t, "650", report.OpenBalance)
	assert.Equal(t, 1, report.NoShows)
	assert.Equal(t, 1, report.RoomsVacant)
	assert.Equal(t, 1, report.RoomsDirty)
	assert.Equal(t, 0, report.RoomsOccupied)

	var byMethod map[string]decimal.Decimal
	require.NoError(t, json.Unmarshal(report.PaymentsByMethod, &byMethod))
	assertDec(t, "500", byMethod[models.PaymentMethodCash])

	var reloaded models.Reservation
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, models.ReservationStatusNoShow, reloaded.Status)
}

func TestRunNightAuditReplacesPriorReport(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)

	svc := NewReportService(db, nil)
	businessDate := time.Now().UTC()

	_, err := svc.RunNightAudit(context.Background(), prop.ID, businessDate)
	require.NoError(t, err)
	_, err = svc.RunNightAudit(context.Background(), prop.ID, businessDate)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.NightAuditReport{}).
		Where("property_id = ?", prop.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLatestReport(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)
	svc := NewReportService(db, nil)

	report, err := svc.LatestReport(context.Background(), prop.ID)
	require.NoError(t, err)
	assert.Nil(t, report)

	_, err = svc.RunNightAudit(context.Background(), prop.ID, time.Now().UTC())
	require.NoError(t, err)

	report, err = svc.LatestReport(context.Background(), prop.ID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, prop.ID, report.PropertyID)

	_, err = svc.RunNightAudit(context.Background(), 9999, time.Now().UTC())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}
