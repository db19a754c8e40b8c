package services

import (
	"testing"

	"pms-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type folioFixture struct {
	db    *gorm.DB
	svc   *FolioService
	prop  models.Property
	guest models.Guest
	folio *models.Folio
}

func newFolioFixture(t *testing.T) *folioFixture {
	t.Helper()
	db := newTestDB(t)
	prop := seedProperty(t, db)
	guest := seedGuest(t, db, prop.ID)
	svc := NewFolioService(db)

	folio, err := svc.CreateFolio(prop.ID, guest.ID, nil)
	require.NoError(t, err)

	return &folioFixture{db: db, svc: svc, prop: prop, guest: guest, folio: folio}
}

func (f *folioFixture) addCharge(t *testing.T, unitPrice int64) *models.Folio {
	t.Helper()
	folio, err := f.svc.AddCharge(
		f.prop.ID, f.folio.ID,
		models.ItemTypeRoom, "Room charge",
		decimal.NewFromInt(1), decimal.NewFromInt(unitPrice),
		nil,
	)
	require.NoError(t, err)
	return folio
}

func TestCreateFolio(t *testing.T) {
	f := newFolioFixture(t)

	assert.Equal(t, models.FolioStatusOpen, f.folio.Status)
	assert.NotEmpty(t, f.folio.FolioNumber)
	assertDec(t, "0", f.folio.Balance)

	_, err := f.svc.CreateFolio(f.prop.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestAddChargeComputesTotals(t *testing.T) {
	f := newFolioFixture(t)

	folio := f.addCharge(t, 1000)

	assertDec(t, "1000", folio.Subtotal)
	assertDec(t, "100", folio.TaxAmount)
	assertDec(t, "50", folio.ServiceCharge)
	assertDec(t, "1150", folio.TotalAmount)
	assertDec(t, "1150", folio.Balance)
	assertFolioInvariants(t, folio)
}

func TestAddChargeRejectsNonPositiveQuantity(t *testing.T) {
	f := newFolioFixture(t)

	_, err := f.svc.AddCharge(f.prop.ID, f.folio.ID,
		models.ItemTypeRoom, "bad", decimal.Zero, decimal.NewFromInt(10), nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// A discount posted as a charge would accrue tax and service charge that a
// later void never reverses, so charge posting refuses the adjustment types.
func TestAddChargeRejectsAdjustmentTypes(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	for _, itemType := range []string{models.ItemTypeDiscount, models.ItemTypeMiscellaneous} {
		_, err := f.svc.AddCharge(f.prop.ID, f.folio.ID,
			itemType, "adjustment as charge",
			decimal.NewFromInt(1), decimal.NewFromInt(1000), nil)
		assert.ErrorIs(t, err, ErrInvalidItemType)
	}

	folio := reloadFolio(t, f.db, f.folio.ID)
	assertDec(t, "1000", folio.Subtotal)
	assertDec(t, "50", folio.ServiceCharge)
	assertFolioInvariants(t, folio)
}

func TestRecordPaymentSettlesBalance(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	folio, err := f.svc.RecordPayment(f.prop.ID, f.folio.ID,
		decimal.NewFromInt(1150), models.PaymentMethodCash, "", nil)
	require.NoError(t, err)

	assertDec(t, "1150", folio.PaidAmount)
	assertDec(t, "0", folio.Balance)
	assertFolioInvariants(t, folio)
}

func TestOverpaymentDrivesBalanceNegative(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	folio, err := f.svc.RecordPayment(f.prop.ID, f.folio.ID,
		decimal.NewFromInt(1300), models.PaymentMethodCash, "", nil)
	require.NoError(t, err)

	assertDec(t, "-150", folio.Balance)
	assertFolioInvariants(t, folio)
}

func TestAdjustmentTouchesSubtotalOnly(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	folio, err := f.svc.AddAdjustment(f.prop.ID, f.folio.ID,
		models.ItemTypeDiscount, "Loyalty discount", decimal.NewFromInt(-200))
	require.NoError(t, err)

	assertDec(t, "800", folio.Subtotal)
	assertDec(t, "100", folio.TaxAmount)
	assertDec(t, "50", folio.ServiceCharge)
	assertDec(t, "950", folio.TotalAmount)
	assertFolioInvariants(t, folio)
}

func TestAdjustmentRejectsChargeTypes(t *testing.T) {
	f := newFolioFixture(t)

	_, err := f.svc.AddAdjustment(f.prop.ID, f.folio.ID,
		models.ItemTypeRoom, "nope", decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, ErrInvalidItemType)

	_, err = f.svc.AddAdjustment(f.prop.ID, f.folio.ID,
		models.ItemTypeDiscount, "zero", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestVoidItemReversesContribution(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&item).Error)

	folio, err := f.svc.VoidItem(f.prop.ID, f.folio.ID, item.ID, 1, "posted in error")
	require.NoError(t, err)

	assertDec(t, "0", folio.Subtotal)
	assertDec(t, "0", folio.TaxAmount)
	assertDec(t, "0", folio.ServiceCharge)
	assertDec(t, "0", folio.Balance)
	assertFolioInvariants(t, folio)

	require.NoError(t, f.db.First(&item, item.ID).Error)
	assert.True(t, item.Voided)
	assert.Equal(t, "posted in error", item.VoidReason)
	assert.NotNil(t, item.VoidedAt)

	_, err = f.svc.VoidItem(f.prop.ID, f.folio.ID, item.ID, 1, "again")
	assert.ErrorIs(t, err, ErrItemVoided)
}

// Voiding recomputes the service charge at the property's current rate. When
// the rate changed after posting, the reversal intentionally does not cancel
// the original service charge exactly.
func TestVoidItemUsesCurrentServiceChargeRate(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000) // sc 50 at 5%

	require.NoError(t, f.db.Model(&models.Property{}).
		Where("id = ?", f.prop.ID).
		Update("service_charge_rate", decimal.NewFromInt(10)).Error)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&item).Error)

	folio, err := f.svc.VoidItem(f.prop.ID, f.folio.ID, item.ID, 1, "rate changed in between")
	require.NoError(t, err)

	// reversal subtracts 10% of 1000, leaving -50 behind
	assertDec(t, "-50", folio.ServiceCharge)
	assertFolioInvariants(t, folio)
}

func TestVoidAdjustmentLeavesTaxAlone(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)
	_, err := f.svc.AddAdjustment(f.prop.ID, f.folio.ID,
		models.ItemTypeDiscount, "disc", decimal.NewFromInt(-200))
	require.NoError(t, err)

	var adj models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ? AND item_type = ?",
		f.folio.ID, models.ItemTypeDiscount).First(&adj).Error)

	folio, err := f.svc.VoidItem(f.prop.ID, f.folio.ID, adj.ID, 1, "undo discount")
	require.NoError(t, err)

	assertDec(t, "1000", folio.Subtotal)
	assertDec(t, "100", folio.TaxAmount)
	assertDec(t, "50", folio.ServiceCharge)
	assertFolioInvariants(t, folio)
}

func TestVoidPaymentRestoresBalanceAndCorporateAccrual(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	corp := models.CorporateAccount{PropertyID: f.prop.ID, Name: "Acme Corp"}
	require.NoError(t, f.db.Create(&corp).Error)

	folio, err := f.svc.RecordPayment(f.prop.ID, f.folio.ID,
		decimal.NewFromInt(500), models.PaymentMethodBankTransfer, "inv-1", &corp.ID)
	require.NoError(t, err)
	assertDec(t, "650", folio.Balance)

	require.NoError(t, f.db.First(&corp, corp.ID).Error)
	assertDec(t, "500", corp.CurrentBalance)

	var payment models.Payment
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&payment).Error)

	folio, err = f.svc.VoidPayment(f.prop.ID, f.folio.ID, payment.ID, 1, "wrong account")
	require.NoError(t, err)
	assertDec(t, "1150", folio.Balance)
	assertFolioInvariants(t, folio)

	require.NoError(t, f.db.First(&corp, corp.ID).Error)
	assertDec(t, "0", corp.CurrentBalance)

	_, err = f.svc.VoidPayment(f.prop.ID, f.folio.ID, payment.ID, 1, "again")
	assert.ErrorIs(t, err, ErrPaymentVoided)
}

func TestClosedFolioRejectsMutations(t *testing.T) {
	f := newFolioFixture(t)
	require.NoError(t, f.svc.CloseFolio(f.prop.ID, f.folio.ID))

	_, err := f.svc.AddCharge(f.prop.ID, f.folio.ID,
		models.ItemTypeRoom, "late charge", decimal.NewFromInt(1), decimal.NewFromInt(10), nil)
	assert.ErrorIs(t, err, ErrFolioClosed)

	_, err = f.svc.RecordPayment(f.prop.ID, f.folio.ID,
		decimal.NewFromInt(10), models.PaymentMethodCash, "", nil)
	assert.ErrorIs(t, err, ErrFolioClosed)

	require.NoError(t, f.svc.ReopenFolio(f.prop.ID, f.folio.ID))
	_, err = f.svc.AddCharge(f.prop.ID, f.folio.ID,
		models.ItemTypeRoom, "late charge", decimal.NewFromInt(1), decimal.NewFromInt(10), nil)
	assert.NoError(t, err)
}

func TestTransferChargeMovesExactAmounts(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	target, err := f.svc.CreateFolio(f.prop.ID, f.guest.ID, nil)
	require.NoError(t, err)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&item).Error)

	require.NoError(t, f.svc.TransferCharge(f.prop.ID, f.folio.ID, item.ID, target.ID))

	source := reloadFolio(t, f.db, f.folio.ID)
	moved := reloadFolio(t, f.db, target.ID)

	assertDec(t, "0", source.TotalAmount)
	assertDec(t, "1150", moved.TotalAmount)
	assertFolioInvariants(t, source)
	assertFolioInvariants(t, moved)

	require.NoError(t, f.db.First(&item, item.ID).Error)
	assert.Equal(t, target.ID, item.FolioID)

	err = f.svc.TransferCharge(f.prop.ID, target.ID, item.ID, target.ID)
	assert.ErrorIs(t, err, ErrSameFolio)
}

func TestSplitFolioConservesTotals(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)
	f.addCharge(t, 400)

	before := reloadFolio(t, f.db, f.folio.ID)

	var items []models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).Order("id ASC").Find(&items).Error)
	require.Len(t, items, 2)

	split, err := f.svc.SplitFolio(f.prop.ID, f.folio.ID, []uint{items[1].ID})
	require.NoError(t, err)

	source := reloadFolio(t, f.db, f.folio.ID)

	assertDec(t, "400", split.Subtotal)
	assertDec(t, "1000", source.Subtotal)
	assertFolioInvariants(t, split)
	assertFolioInvariants(t, source)

	combined := source.TotalAmount.Add(split.TotalAmount)
	assert.True(t, combined.Equal(before.TotalAmount),
		"split must conserve the combined total: %s + %s != %s",
		source.TotalAmount, split.TotalAmount, before.TotalAmount)

	var moved models.FolioItem
	require.NoError(t, f.db.First(&moved, items[1].ID).Error)
	assert.Equal(t, split.ID, moved.FolioID)
}

func TestSplitFolioRejectsVoidedAndMissingItems(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&item).Error)

	_, err := f.svc.SplitFolio(f.prop.ID, f.folio.ID, nil)
	assert.ErrorIs(t, err, ErrNoItemsSelected)

	_, err = f.svc.SplitFolio(f.prop.ID, f.folio.ID, []uint{item.ID, 9999})
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = f.svc.VoidItem(f.prop.ID, f.folio.ID, item.ID, 1, "void first")
	require.NoError(t, err)
	_, err = f.svc.SplitFolio(f.prop.ID, f.folio.ID, []uint{item.ID})
	assert.ErrorIs(t, err, ErrItemVoided)
}

// Item and payment mutations name the owning folio; an ID that belongs to a
// different folio must not resolve.
func TestItemMutationsRequireOwningFolio(t *testing.T) {
	f := newFolioFixture(t)
	f.addCharge(t, 1000)

	other, err := f.svc.CreateFolio(f.prop.ID, f.guest.ID, nil)
	require.NoError(t, err)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&item).Error)

	_, err = f.svc.VoidItem(f.prop.ID, other.ID, item.ID, 1, "wrong folio")
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = f.svc.TransferCharge(f.prop.ID, other.ID, item.ID, f.folio.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = f.svc.RecordPayment(f.prop.ID, f.folio.ID,
		decimal.NewFromInt(100), models.PaymentMethodCash, "", nil)
	require.NoError(t, err)

	var payment models.Payment
	require.NoError(t, f.db.Where("folio_id = ?", f.folio.ID).First(&payment).Error)

	_, err = f.svc.VoidPayment(f.prop.ID, other.ID, payment.ID, 1, "wrong folio")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	// untouched by the rejected calls
	folio := reloadFolio(t, f.db, f.folio.ID)
	assertDec(t, "100", folio.PaidAmount)
	assertFolioInvariants(t, folio)
}

func TestFolioIsScopedToProperty(t *testing.T) {
	f := newFolioFixture(t)

	other := models.Property{Name: "Other", TaxRate: decimal.NewFromInt(7)}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := f.svc.GetFolio(other.ID, f.folio.ID)
	assert.ErrorIs(t, err, ErrFolioNotFound)

	_, err = f.svc.AddCharge(other.ID, f.folio.ID,
		models.ItemTypeRoom, "cross-tenant", decimal.NewFromInt(1), decimal.NewFromInt(10), nil)
	assert.ErrorIs(t, err, ErrFolioNotFound)
}
