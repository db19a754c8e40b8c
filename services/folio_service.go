// services/folio_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pms-backend/models"
	"pms-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FolioService owns every mutation of the guest billing ledger. Each operation
// runs inside a single transaction so a line item and the recomputed folio
// aggregates land together or not at all.
type FolioService struct {
	DB *gorm.DB
}

func NewFolioService(db *gorm.DB) *FolioService {
	return &FolioService{DB: db}
}

// forUpdate takes a row lock on backends that support it. The sqlite test
// backend has no FOR UPDATE; transactions there are serialized anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *FolioService) lockFolio(tx *gorm.DB, propertyID, folioID uint) (*models.Folio, error) {
	var folio models.Folio
	err := forUpdate(tx).
		Where("property_id = ?", propertyID).
		First(&folio, folioID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolioNotFound
		}
		return nil, fmt.Errorf("failed to load folio %d: %w", folioID, err)
	}
	return &folio, nil
}

func (s *FolioService) lockOpenFolio(tx *gorm.DB, propertyID, folioID uint) (*models.Folio, error) {
	folio, err := s.lockFolio(tx, propertyID, folioID)
	if err != nil {
		return nil, err
	}
	if folio.Status != models.FolioStatusOpen {
		return nil, ErrFolioClosed
	}
	return folio, nil
}

func propertyRates(tx *gorm.DB, propertyID uint) (taxRate, serviceChargeRate decimal.Decimal, err error) {
	var prop models.Property
	if err := tx.First(&prop, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, decimal.Zero, ErrPropertyNotFound
		}
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to load property %d: %w", propertyID, err)
	}
	return prop.TaxRate, prop.ServiceChargeRate, nil
}

func saveAggregates(tx *gorm.DB, folio *models.Folio) error {
	folio.TotalAmount, folio.Balance = applyTotals(folio.Subtotal, folio.TaxAmount, folio.ServiceCharge, folio.PaidAmount)
	return tx.Model(&models.Folio{}).Where("id = ?", folio.ID).Updates(map[string]interface{}{
		"subtotal":       folio.Subtotal,
		"tax_amount":     folio.TaxAmount,
		"service_charge": folio.ServiceCharge,
		"total_amount":   folio.TotalAmount,
		"paid_amount":    folio.PaidAmount,
		"balance":        folio.Balance,
	}).Error
}

// CreateFolio opens a new folio for a guest, optionally tied to a reservation.
// The folio number is generated with a retry loop on unique collisions.
func (s *FolioService) CreateFolio(propertyID, guestID uint, reservationID *uint) (*models.Folio, error) {
	var guest models.Guest
	if err := s.DB.Where("property_id = ?", propertyID).First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to load guest %d: %w", guestID, err)
	}

	var folio models.Folio
	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		number, gErr := utils.GenerateFolioNumber(time.Now().UTC())
		if gErr != nil {
			return nil, fmt.Errorf("failed to generate folio number: %w", gErr)
		}

		folio = models.Folio{
			FolioNumber:   number,
			Status:        models.FolioStatusOpen,
			PropertyID:    propertyID,
			GuestID:       guestID,
			ReservationID: reservationID,
		}

		createErr = s.DB.Create(&folio).Error
		if createErr == nil {
			break
		}

		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			log.Printf("folio number collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return nil, fmt.Errorf("failed to create folio: %w", createErr)
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create folio after retries: %w", createErr)
	}
	return &folio, nil
}

// AddCharge posts one charge line and folds its totals into the folio:
// total = qty * unit price, tax and service charge at the property's rates.
// Adjustment types must go through AddAdjustment; a discount posted here would
// accrue tax and service charge that voiding never reverses.
func (s *FolioService) AddCharge(
	propertyID, folioID uint,
	itemType, description string,
	quantity, unitPrice decimal.Decimal,
	serviceDate *time.Time,
) (*models.Folio, error) {
	if itemType == models.ItemTypeDiscount || itemType == models.ItemTypeMiscellaneous {
		return nil, ErrInvalidItemType
	}
	if quantity.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *models.Folio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		folio, err := s.lockOpenFolio(tx, propertyID, folioID)
		if err != nil {
			return err
		}

		taxRate, scRate, err := propertyRates(tx, propertyID)
		if err != nil {
			return err
		}

		total, tax, serviceCharge := chargeAmounts(quantity, unitPrice, taxRate, scRate)

		item := models.FolioItem{
			FolioID:     folio.ID,
			ItemType:    itemType,
			Description: description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  total,
			TaxAmount:   tax,
			ServiceDate: serviceDate,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create folio item: %w", err)
		}

		folio.Subtotal = folio.Subtotal.Add(total)
		folio.TaxAmount = folio.TaxAmount.Add(tax)
		folio.ServiceCharge = folio.ServiceCharge.Add(serviceCharge)
		if err := saveAggregates(tx, folio); err != nil {
			return fmt.Errorf("failed to update folio aggregates: %w", err)
		}

		result = folio
		return nil
	})
	return result, err
}

// AddAdjustment posts a discount (negative) or miscellaneous (positive) line.
// It moves subtotal/total/balance only; tax and service-charge totals are
// deliberately untouched.
func (s *FolioService) AddAdjustment(
	propertyID, folioID uint,
	itemType, description string,
	amount decimal.Decimal,
) (*models.Folio, error) {
	if itemType != models.ItemTypeDiscount && itemType != models.ItemTypeMiscellaneous {
		return nil, ErrInvalidItemType
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}

	var result *models.Folio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		folio, err := s.lockOpenFolio(tx, propertyID, folioID)
		if err != nil {
			return err
		}

		item := models.FolioItem{
			FolioID:     folio.ID,
			ItemType:    itemType,
			Description: description,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   amount,
			TotalPrice:  amount,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create adjustment item: %w", err)
		}

		folio.Subtotal = folio.Subtotal.Add(amount)
		if err := saveAggregates(tx, folio); err != nil {
			return fmt.Errorf("failed to update folio aggregates: %w", err)
		}

		result = folio
		return nil
	})
	return result, err
}

// RecordPayment adds a payment and recomputes the balance. Overpayment drives
// the balance negative and is preserved as-is. A payment attributed to a
// corporate account accrues onto that account's receivable.
func (s *FolioService) RecordPayment(
	propertyID, folioID uint,
	amount decimal.Decimal,
	method, reference string,
	corporateAccountID *uint,
) (*models.Folio, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *models.Folio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		folio, err := s.lockOpenFolio(tx, propertyID, folioID)
		if err != nil {
			return err
		}

		if corporateAccountID != nil {
			var corp models.CorporateAccount
			if err := tx.Where("property_id = ?", propertyID).First(&corp, *corporateAccountID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCorporateNotFound
				}
				return fmt.Errorf("failed to load corporate account: %w", err)
			}
			newBalance := corp.CurrentBalance.Add(amount)
			if err := tx.Model(&corp).Update("current_balance", newBalance).Error; err != nil {
				return fmt.Errorf("failed to accrue corporate balance: %w", err)
			}
		}

		payment := models.Payment{
			FolioID:            folio.ID,
			Amount:             amount,
			Method:             method,
			Reference:          reference,
			CorporateAccountID: corporateAccountID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		folio.PaidAmount = folio.PaidAmount.Add(amount)
		if err := saveAggregates(tx, folio); err != nil {
			return fmt.Errorf("failed to update folio aggregates: %w", err)
		}

		result = folio
		return nil
	})
	return result, err
}

// VoidItem reverses a charge line's contribution. The service charge is
// recomputed from the item's stored total at the property's CURRENT rate, not
// the rate at posting time. If the rate changed in between the reversal will
// not cancel the original exactly; product has been asked whether that is
// intended, so the behavior is kept.
func (s *FolioService) VoidItem(propertyID, folioID, itemID, voidedBy uint, reason string) (*models.Folio, error) {
	var result *models.Folio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.FolioItem
		if err := forUpdate(tx).First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to load folio item %d: %w", itemID, err)
		}
		if item.FolioID != folioID {
			return ErrItemNotFound
		}
		if item.Voided {
			return ErrItemVoided
		}

		folio, err := s.lockOpenFolio(tx, propertyID, item.FolioID)
		if err != nil {
			return err
		}

		// adjustments never contributed tax or service charge
		serviceCharge := decimal.Zero
		if item.ItemType != models.ItemTypeDiscount && item.ItemType != models.ItemTypeMiscellaneous {
			_, scRate, rErr := propertyRates(tx, propertyID)
			if rErr != nil {
				return rErr
			}
			serviceCharge = percentOf(item.TotalPrice, scRate)
		}

		now := time.Now().UTC()
		if err := tx.Model(&item).Updates(map[string]interface{}{
			"voided":       true,
			"voided_by_id": voidedBy,
			"voided_at":    now,
			"void_reason":  reason,
		}).Error; err != nil {
			return fmt.Errorf("failed to void folio item: %w", err)
		}

		folio.Subtotal = folio.Subtotal.Sub(item.TotalPrice)
		folio.TaxAmount = folio.TaxAmount.Sub(item.TaxAmount)
		folio.ServiceCharge = folio.ServiceCharge.Sub(serviceCharge)
		if err := saveAggregates(tx, folio); err != nil {
			return fmt.Errorf("failed to update folio aggregates: %w", err)
		}

		result = folio
		return nil
	})
	return result, err
}

// VoidPayment reverses a payment and, when the payment was attributed to a
// corporate account, backs the accrual out of that account.
func (s *FolioService) VoidPayment(propertyID, folioID, paymentID, voidedBy uint, reason string) (*models.Folio, error) {
	var result *models.Folio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := forUpdate(tx).First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to load payment %d: %w", paymentID, err)
		}
		if payment.FolioID != folioID {
			return ErrPaymentNotFound
		}
		if payment.Voided {
			return ErrPaymentVoided
		}

		folio, err := s.lockOpenFolio(tx, propertyID, payment.FolioID)
		if err != nil {
			return err
		}

		if payment.CorporateAccountID != nil {
			var corp models.CorporateAccount
			if err := tx.First(&corp, *payment.CorporateAccountID).Error; err == nil {
				newBalance := corp.CurrentBalance.Sub(payment.Amount)
				if err := tx.Model(&corp).Update("current_balance", newBalance).Error; err != nil {
					return fmt.Errorf("failed to reverse corporate accrual: %w", err)
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load corporate account: %w", err)
			}
		}

		now := time.Now().UTC()
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"voided":       true,
			"voided_by_id": voidedBy,
			"voided_at":    now,
			"void_reason":  reason,
		}).Error; err != nil {
			return fmt.Errorf("failed to void payment: %w", err)
		}

		folio.PaidAmount = folio.PaidAmount.Sub(payment.Amount)
		if err := saveAggregates(tx, folio); err != nil {
			return fmt.Errorf("failed to update folio aggregates: %w", err)
		}

		result = folio
		return nil
	})
	return result, err
}

// TransferCharge moves one item between two open folios: the source loses the
// item's contribution (service charge at the current rate, as in void) and the
// target gains exactly the same amounts, so the two deltas always match.
func (s *FolioService) TransferCharge(propertyID, sourceFolioID, itemID, targetFolioID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.FolioItem
		if err := forUpdate(tx).First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to load folio item %d: %w", itemID, err)
		}
		if item.FolioID != sourceFolioID {
			return ErrItemNotFound
		}
		if item.Voided {
			return ErrItemVoided
		}
		if item.FolioID == targetFolioID {
			return ErrSameFolio
		}

		source, err := s.lockOpenFolio(tx, propertyID, item.FolioID)
		if err != nil {
			return err
		}
		target, err := s.lockOpenFolio(tx, propertyID, targetFolioID)
		if err != nil {
			return err
		}

		serviceCharge := decimal.Zero
		if item.ItemType != models.ItemTypeDiscount && item.ItemType != models.ItemTypeMiscellaneous {
			_, scRate, rErr := propertyRates(tx, propertyID)
			if rErr != nil {
				return rErr
			}
			serviceCharge = percentOf(item.TotalPrice, scRate)
		}

		if err := tx.Model(&item).Update("folio_id", target.ID).Error; err != nil {
			return fmt.Errorf("failed to reassign folio item: %w", err)
		}

		source.Subtotal = source.Subtotal.Sub(item.TotalPrice)
		source.TaxAmount = source.TaxAmount.Sub(item.TaxAmount)
		source.ServiceCharge = source.ServiceCharge.Sub(serviceCharge)
		if err := saveAggregates(tx, source); err != nil {
			return fmt.Errorf("failed to update source folio: %w", err)
		}

		target.Subtotal = target.Subtotal.Add(item.TotalPrice)
		target.TaxAmount = target.TaxAmount.Add(item.TaxAmount)
		target.ServiceCharge = target.ServiceCharge.Add(serviceCharge)
		if err := saveAggregates(tx, target); err != nil {
			return fmt.Errorf("failed to update target folio: %w", err)
		}

		return nil
	})
}

// SplitFolio moves the selected items onto a brand-new folio for the same
// guest. The new folio's service charge is computed fresh from the moved
// subtotal at the current rate, and the source is decremented by exactly the
// sums the new folio gains.
func (s *FolioService) SplitFolio(propertyID, sourceFolioID uint, itemIDs []uint) (*models.Folio, error) {
	if len(itemIDs) == 0 {
		return nil, ErrNoItemsSelected
	}

	var result *models.Folio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		source, err := s.lockOpenFolio(tx, propertyID, sourceFolioID)
		if err != nil {
			return err
		}

		var items []models.FolioItem
		if err := tx.Where("id IN ? AND folio_id = ?", itemIDs, source.ID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load items for split: %w", err)
		}
		if len(items) != len(itemIDs) {
			return ErrItemNotFound
		}
		for _, it := range items {
			if it.Voided {
				return ErrItemVoided
			}
		}

		_, scRate, err := propertyRates(tx, propertyID)
		if err != nil {
			return err
		}

		movedSubtotal := decimal.Zero
		movedTax := decimal.Zero
		for _, it := range items {
			movedSubtotal = movedSubtotal.Add(it.TotalPrice)
			movedTax = movedTax.Add(it.TaxAmount)
		}
		movedServiceCharge := percentOf(movedSubtotal, scRate)

		number, gErr := utils.GenerateFolioNumber(time.Now().UTC())
		if gErr != nil {
			return fmt.Errorf("failed to generate folio number: %w", gErr)
		}

		newFolio := models.Folio{
			FolioNumber:   number,
			Status:        models.FolioStatusOpen,
			PropertyID:    propertyID,
			GuestID:       source.GuestID,
			ReservationID: source.ReservationID,
			Subtotal:      movedSubtotal,
			TaxAmount:     movedTax,
			ServiceCharge: movedServiceCharge,
		}
		newFolio.TotalAmount, newFolio.Balance = applyTotals(movedSubtotal, movedTax, movedServiceCharge, decimal.Zero)
		if err := tx.Create(&newFolio).Error; err != nil {
			return fmt.Errorf("failed to create split folio: %w", err)
		}

		if err := tx.Model(&models.FolioItem{}).
			Where("id IN ?", itemIDs).
			Update("folio_id", newFolio.ID).Error; err != nil {
			return fmt.Errorf("failed to move items to split folio: %w", err)
		}

		source.Subtotal = source.Subtotal.Sub(movedSubtotal)
		source.TaxAmount = source.TaxAmount.Sub(movedTax)
		source.ServiceCharge = source.ServiceCharge.Sub(movedServiceCharge)
		if err := saveAggregates(tx, source); err != nil {
			return fmt.Errorf("failed to update source folio: %w", err)
		}

		result = &newFolio
		return nil
	})
	return result, err
}

// CloseFolio flips the soft status flag. Closing is allowed regardless of
// balance; the balance simply stays on the closed folio.
func (s *FolioService) CloseFolio(propertyID, folioID uint) error {
	return s.setStatus(propertyID, folioID, models.FolioStatusClosed)
}

// ReopenFolio makes a closed folio mutable again.
func (s *FolioService) ReopenFolio(propertyID, folioID uint) error {
	return s.setStatus(propertyID, folioID, models.FolioStatusOpen)
}

func (s *FolioService) setStatus(propertyID, folioID uint, status string) error {
	res := s.DB.Model(&models.Folio{}).
		Where("id = ? AND property_id = ?", folioID, propertyID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update folio status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFolioNotFound
	}
	return nil
}

// GetFolio loads a folio with its lines and payments.
func (s *FolioService) GetFolio(propertyID, folioID uint) (*models.Folio, error) {
	var folio models.Folio
	err := s.DB.
		Preload("Items").
		Preload("Payments").
		Preload("Guest").
		Where("property_id = ?", propertyID).
		First(&folio, folioID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolioNotFound
		}
		return nil, fmt.Errorf("failed to retrieve folio: %w", err)
	}
	return &folio, nil
}

// ListFolios returns folios for a property, newest first.
func (s *FolioService) ListFolios(propertyID uint, status string) ([]models.Folio, error) {
	q := s.DB.Where("property_id = ?", propertyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Folio
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve folios: %w", err)
	}
	return list, nil
}
