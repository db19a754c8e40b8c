package services

import (
	"testing"

	"pms-backend/config"
	"pms-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection gets its own :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// seedProperty uses 10% tax and 5% service charge, the rates all the worked
// figures in these tests assume.
func seedProperty(t *testing.T, db *gorm.DB) models.Property {
	t.Helper()
	prop := models.Property{
		Name:              "Test Property",
		Currency:          "USD",
		TaxRate:           decimal.NewFromInt(10),
		ServiceChargeRate: decimal.NewFromInt(5),
	}
	require.NoError(t, db.Create(&prop).Error)
	return prop
}

func seedGuest(t *testing.T, db *gorm.DB, propertyID uint) models.Guest {
	t.Helper()
	guest := models.Guest{
		PropertyID: propertyID,
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
	}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func seedRoomType(t *testing.T, db *gorm.DB, propertyID uint, rate int64) models.RoomType {
	t.Helper()
	rt := models.RoomType{
		PropertyID: propertyID,
		TypeName:   "Standard",
		MaxGuests:  2,
		BaseRate:   decimal.NewFromInt(rate),
	}
	require.NoError(t, db.Create(&rt).Error)
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, propertyID uint, roomTypeID uint, number string) models.Room {
	t.Helper()
	room := models.Room{
		PropertyID: propertyID,
		RoomTypeID: &roomTypeID,
		RoomNumber: number,
		Status:     models.RoomStatusVacant,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedHousekeeper(t *testing.T, db *gorm.DB, propertyID uint, email string) models.Staff {
	t.Helper()
	staff := models.Staff{
		PropertyID: propertyID,
		FullName:   "Housekeeper " + email,
		Email:      email,
		Role:       models.RoleHousekeeping,
		Active:     true,
	}
	require.NoError(t, db.Create(&staff).Error)
	return staff
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)),
		"want %s, got %s", want, got.String())
}

// assertFolioInvariants checks the two ledger identities that must hold after
// every mutation: total = subtotal + tax + service charge, balance = total - paid.
func assertFolioInvariants(t *testing.T, folio *models.Folio) {
	t.Helper()
	wantTotal := folio.Subtotal.Add(folio.TaxAmount).Add(folio.ServiceCharge)
	assert.True(t, folio.TotalAmount.Equal(wantTotal),
		"total %s != subtotal+tax+sc %s", folio.TotalAmount, wantTotal)
	wantBalance := folio.TotalAmount.Sub(folio.PaidAmount)
	assert.True(t, folio.Balance.Equal(wantBalance),
		"balance %s != total-paid %s", folio.Balance, wantBalance)
}

func reloadFolio(t *testing.T, db *gorm.DB, id uint) *models.Folio {
	t.Helper()
	var folio models.Folio
	require.NoError(t, db.First(&folio, id).Error)
	return &folio
}
