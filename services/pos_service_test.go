package services

import (
	"testing"

	"pms-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type posFixture struct {
	db     *gorm.DB
	svc    *PosService
	folios *FolioService
	prop   models.Property
	guest  models.Guest
	outlet models.Outlet
	burger models.MenuItem
	soda   models.MenuItem
}

func newPosFixture(t *testing.T) *posFixture {
	t.Helper()
	db := newTestDB(t)
	prop := seedProperty(t, db)
	guest := seedGuest(t, db, prop.ID)

	outlet := models.Outlet{PropertyID: prop.ID, Name: "Lobby Bar", Kind: "bar"}
	require.NoError(t, db.Create(&outlet).Error)

	burger := models.MenuItem{OutletID: outlet.ID, Name: "Burger", Price: decimal.RequireFromString("12.50"), Available: true}
	require.NoError(t, db.Create(&burger).Error)
	soda := models.MenuItem{OutletID: outlet.ID, Name: "Soda", Price: decimal.RequireFromString("3.00"), Available: true}
	require.NoError(t, db.Create(&soda).Error)

	folios := NewFolioService(db)
	return &posFixture{
		db: db, svc: NewPosService(db, folios), folios: folios,
		prop: prop, guest: guest, outlet: outlet, burger: burger, soda: soda,
	}
}

func TestAddLinesRecomputesTotal(t *testing.T) {
	f := newPosFixture(t)

	order, err := f.svc.OpenOrder(f.prop.ID, f.outlet.ID, "T1", 2)
	require.NoError(t, err)
	assertDec(t, "0", order.Total)

	order, err = f.svc.AddLines(f.prop.ID, order.ID, []OrderLine{
		{MenuItemID: f.burger.ID, Quantity: decimal.NewFromInt(2)},
		{MenuItemID: f.soda.ID, Quantity: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	assertDec(t, "28.00", order.Total)

	order, err = f.svc.AddLines(f.prop.ID, order.ID, []OrderLine{
		{MenuItemID: f.soda.ID, Quantity: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	assertDec(t, "31.00", order.Total)
}

func TestAddLinesRejectsUnavailableItems(t *testing.T) {
	f := newPosFixture(t)
	require.NoError(t, f.db.Model(&f.burger).Update("available", false).Error)

	order, err := f.svc.OpenOrder(f.prop.ID, f.outlet.ID, "", 1)
	require.NoError(t, err)

	_, err = f.svc.AddLines(f.prop.ID, order.ID, []OrderLine{
		{MenuItemID: f.burger.ID, Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = f.svc.AddLines(f.prop.ID, order.ID, []OrderLine{
		{MenuItemID: f.soda.ID, Quantity: decimal.Zero},
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSettleOrder(t *testing.T) {
	f := newPosFixture(t)

	order, err := f.svc.OpenOrder(f.prop.ID, f.outlet.ID, "", 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.SettleOrder(f.prop.ID, order.ID))

	err = f.svc.SettleOrder(f.prop.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotOpen)

	_, err = f.svc.AddLines(f.prop.ID, order.ID, []OrderLine{
		{MenuItemID: f.soda.ID, Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, ErrOrderNotOpen)
}

func TestPostToFolioChargesTabTotal(t *testing.T) {
	f := newPosFixture(t)

	folio, err := f.folios.CreateFolio(f.prop.ID, f.guest.ID, nil)
	require.NoError(t, err)

	order, err := f.svc.OpenOrder(f.prop.ID, f.outlet.ID, "T4", 2)
	require.NoError(t, err)
	_, err = f.svc.AddLines(f.prop.ID, order.ID, []OrderLine{
		{MenuItemID: f.burger.ID, Quantity: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)

	posted, err := f.svc.PostToFolio(f.prop.ID, order.ID, folio.ID)
	require.NoError(t, err)

	// tab total 25.00 lands as one food & beverage line at the folio's rates
	assertDec(t, "25.00", posted.Subtotal)
	assertDec(t, "2.50", posted.TaxAmount)
	assertDec(t, "1.25", posted.ServiceCharge)
	assertFolioInvariants(t, posted)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", folio.ID).First(&item).Error)
	assert.Equal(t, models.ItemTypeFoodBeverage, item.ItemType)

	var reloaded models.PosOrder
	require.NoError(t, f.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PosOrderStatusPosted, reloaded.Status)
	require.NotNil(t, reloaded.FolioID)
	assert.Equal(t, folio.ID, *reloaded.FolioID)

	_, err = f.svc.PostToFolio(f.prop.ID, order.ID, folio.ID)
	assert.ErrorIs(t, err, ErrOrderNotOpen)
}

func TestPostToFolioRejectsEmptyTab(t *testing.T) {
	f := newPosFixture(t)

	folio, err := f.folios.CreateFolio(f.prop.ID, f.guest.ID, nil)
	require.NoError(t, err)

	order, err := f.svc.OpenOrder(f.prop.ID, f.outlet.ID, "", 1)
	require.NoError(t, err)

	_, err = f.svc.PostToFolio(f.prop.ID, order.ID, folio.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
