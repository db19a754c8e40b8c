// services/pos_service.go
package services

import (
	"errors"
	"fmt"

	"pms-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PosService runs the restaurant/bar tabs. A tab either settles at the outlet
// or posts its total to a room folio as a single food & beverage charge.
type PosService struct {
	DB     *gorm.DB
	Folios *FolioService
}

func NewPosService(db *gorm.DB, folios *FolioService) *PosService {
	return &PosService{DB: db, Folios: folios}
}

// OrderLine is one requested line on a tab.
type OrderLine struct {
	MenuItemID uint            `json:"menuItemId"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// OpenOrder starts a tab at an outlet.
func (s *PosService) OpenOrder(propertyID, outletID uint, tableNumber string, covers int) (*models.PosOrder, error) {
	var outlet models.Outlet
	if err := s.DB.Where("property_id = ?", propertyID).First(&outlet, outletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("db error checking outlet: %w", err)
	}

	if covers <= 0 {
		covers = 1
	}

	order := models.PosOrder{
		PropertyID:  propertyID,
		OutletID:    outletID,
		TableNumber: tableNumber,
		Covers:      covers,
		Status:      models.PosOrderStatusOpen,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to open pos order: %w", err)
	}
	return &order, nil
}

// AddLines appends menu items to an open tab and recomputes its total.
func (s *PosService) AddLines(propertyID, orderID uint, lines []OrderLine) (*models.PosOrder, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidAmount
	}

	var result *models.PosOrder
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.PosOrder
		if err := forUpdate(tx).Where("property_id = ?", propertyID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to load pos order: %w", err)
		}
		if order.Status != models.PosOrderStatusOpen {
			return ErrOrderNotOpen
		}

		total := order.Total
		for _, line := range lines {
			if line.Quantity.Sign() <= 0 {
				return ErrInvalidAmount
			}

			var item models.MenuItem
			if err := tx.Where("outlet_id = ? AND available = ?", order.OutletID, true).
				First(&item, line.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMenuItemNotFound
				}
				return fmt.Errorf("db error checking menu item %d: %w", line.MenuItemID, err)
			}

			lineTotal := line.Quantity.Mul(item.Price).Round(2)
			orderItem := models.PosOrderItem{
				PosOrderID: order.ID,
				MenuItemID: item.ID,
				Name:       item.Name,
				Quantity:   line.Quantity,
				UnitPrice:  item.Price,
				LineTotal:  lineTotal,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			total = total.Add(lineTotal)
		}

		if err := tx.Model(&order).Update("total", total).Error; err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}
		order.Total = total
		result = &order
		return nil
	})
	return result, err
}

// SettleOrder closes a tab paid at the outlet.
func (s *PosService) SettleOrder(propertyID, orderID uint) error {
	res := s.DB.Model(&models.PosOrder{}).
		Where("id = ? AND property_id = ? AND status = ?", orderID, propertyID, models.PosOrderStatusOpen).
		Update("status", models.PosOrderStatusSettled)
	if res.Error != nil {
		return fmt.Errorf("failed to settle pos order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotOpen
	}
	return nil
}

// PostToFolio charges the tab's total to a room folio as one food & beverage
// line and marks the tab posted.
func (s *PosService) PostToFolio(propertyID, orderID, folioID uint) (*models.Folio, error) {
	var order models.PosOrder
	if err := s.DB.Preload("Items").Where("property_id = ?", propertyID).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load pos order: %w", err)
	}
	if order.Status != models.PosOrderStatusOpen {
		return nil, ErrOrderNotOpen
	}
	if order.Total.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	desc := fmt.Sprintf("POS order #%d", order.ID)
	folio, err := s.Folios.AddCharge(
		propertyID, folioID,
		models.ItemTypeFoodBeverage, desc,
		decimal.NewFromInt(1), order.Total,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&order).Updates(map[string]interface{}{
		"status":   models.PosOrderStatusPosted,
		"folio_id": folioID,
	}).Error; err != nil {
		// charge landed but the tab is still open; surface it, do not retry
		return nil, fmt.Errorf("charge posted but failed to close pos order %d: %w", order.ID, err)
	}

	return folio, nil
}

// GetOrder loads a tab with its lines.
func (s *PosService) GetOrder(propertyID, orderID uint) (*models.PosOrder, error) {
	var order models.PosOrder
	if err := s.DB.Preload("Items").Where("property_id = ?", propertyID).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve pos order: %w", err)
	}
	return &order, nil
}
