// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pms-backend/models"
	"pms-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReservationService drives the reservation state machine
// (confirmed -> checked_in -> checked_out, confirmed -> cancelled) and its
// side effects on rooms, folios and housekeeping.
type ReservationService struct {
	DB           *gorm.DB
	Folios       *FolioService
	Housekeeping *HousekeepingService
}

func NewReservationService(db *gorm.DB, folios *FolioService, housekeeping *HousekeepingService) *ReservationService {
	return &ReservationService{DB: db, Folios: folios, Housekeeping: housekeeping}
}

// RoomAssignment attaches a concrete room to one reservation_room slot.
type RoomAssignment struct {
	ReservationRoomID uint `json:"reservationRoomId"`
	RoomID            uint `json:"roomId"`
}

func parseStayDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return &d, nil
	}
	return nil, ErrInvalidDates
}

func nightsBetween(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

// CreateReservation books one or more room-type slots for a guest, generates
// the reference code, opens the stay folio and posts the room charges onto it.
func (s *ReservationService) CreateReservation(
	propertyID, guestID uint,
	checkIn, checkOut string,
	roomTypeIDs []uint,
	adults, children int,
) (*models.Reservation, error) {
	if len(roomTypeIDs) == 0 {
		return nil, ErrRoomSlotMismatch
	}
	if adults <= 0 {
		adults = 1
	}
	if children < 0 {
		children = 0
	}

	ci, err := parseStayDate(checkIn)
	if err != nil || ci == nil {
		return nil, ErrInvalidDates
	}
	co, err := parseStayDate(checkOut)
	if err != nil || co == nil {
		return nil, ErrInvalidDates
	}
	if !co.After(*ci) {
		return nil, ErrInvalidDates
	}
	nights := nightsBetween(*ci, *co)

	var guest models.Guest
	if err := s.DB.Where("property_id = ?", propertyID).First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("db error checking guest: %w", err)
	}

	var roomTypes []models.RoomType
	if err := s.DB.Where("property_id = ? AND id IN ?", propertyID, roomTypeIDs).Find(&roomTypes).Error; err != nil {
		return nil, fmt.Errorf("db error checking room types: %w", err)
	}
	typeByID := make(map[uint]models.RoomType, len(roomTypes))
	for _, rt := range roomTypes {
		typeByID[rt.ID] = rt
	}
	for _, rtID := range roomTypeIDs {
		if _, ok := typeByID[rtID]; !ok {
			return nil, ErrRoomSlotMismatch
		}
	}

	reference, err := utils.GenerateReferenceCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference code: %w", err)
	}

	total := decimal.Zero
	for _, rtID := range roomTypeIDs {
		total = total.Add(typeByID[rtID].BaseRate.Mul(decimal.NewFromInt(int64(nights))))
	}

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		reservation := models.Reservation{
			PropertyID:    propertyID,
			GuestID:       guestID,
			ReferenceCode: reference,
			Status:        models.ReservationStatusConfirmed,
			CheckInDate:   ci,
			CheckOutDate:  co,
			Nights:        nights,
			Adults:        adults,
			Children:      children,
			TotalAmount:   total,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		reservationID = reservation.ID

		for _, rtID := range roomTypeIDs {
			slot := models.ReservationRoom{
				ReservationID: reservation.ID,
				RoomTypeID:    rtID,
				NightlyRate:   typeByID[rtID].BaseRate,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return fmt.Errorf("failed to create reservation room: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// open the stay folio and post one room charge per slot
	folio, err := s.Folios.CreateFolio(propertyID, guestID, &reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to open stay folio: %w", err)
	}
	for _, rtID := range roomTypeIDs {
		rt := typeByID[rtID]
		desc := fmt.Sprintf("Room charge - %s (%d nights)", rt.TypeName, nights)
		if _, err := s.Folios.AddCharge(
			propertyID, folio.ID,
			models.ItemTypeRoom, desc,
			decimal.NewFromInt(int64(nights)), rt.BaseRate,
			ci,
		); err != nil {
			return nil, fmt.Errorf("failed to post room charge: %w", err)
		}
	}

	return s.GetDetails(propertyID, reservationID)
}

// AssignRooms attaches concrete rooms to reservation_room slots. Neither the
// reservation nor the room status changes; this is pre-assignment ahead of
// the stay.
func (s *ReservationService) AssignRooms(propertyID, reservationID uint, assignments []RoomAssignment) error {
	if len(assignments) == 0 {
		return ErrRoomSlotMismatch
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Where("property_id = ?", propertyID).First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		for _, a := range assignments {
			var room models.Room
			if err := tx.Where("property_id = ?", propertyID).First(&room, a.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return fmt.Errorf("db error checking room %d: %w", a.RoomID, err)
			}

			res := tx.Model(&models.ReservationRoom{}).
				Where("id = ? AND reservation_id = ?", a.ReservationRoomID, reservationID).
				Update("room_id", a.RoomID)
			if res.Error != nil {
				return fmt.Errorf("failed to assign room: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrRoomSlotMismatch
			}
		}
		return nil
	})
}

// CheckIn validates that every slot has a room before touching anything, then
// marks the reservation checked_in and every assigned room occupied.
func (s *ReservationService) CheckIn(propertyID, reservationID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := forUpdate(tx).Preload("Rooms").
			Where("property_id = ?", propertyID).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		if reservation.Status == models.ReservationStatusCheckedIn {
			return ErrAlreadyCheckedIn
		}
		if reservation.Status != models.ReservationStatusConfirmed {
			return ErrNotConfirmed
		}
		if len(reservation.Rooms) == 0 {
			return ErrRoomsNotAssigned
		}
		for _, slot := range reservation.Rooms {
			if slot.RoomID == nil {
				return ErrRoomsNotAssigned
			}
		}

		now := time.Now().UTC()
		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"status":        models.ReservationStatusCheckedIn,
			"checked_in_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}

		for _, slot := range reservation.Rooms {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *slot.RoomID).
				Update("status", models.RoomStatusOccupied).Error; err != nil {
				return fmt.Errorf("failed to occupy room %d: %w", *slot.RoomID, err)
			}
		}
		return nil
	})
}

// CheckOut marks the stay checked_out, turns every assigned room dirty and
// closes the stay folio. Housekeeping tasks are created afterwards,
// best-effort: a task that fails to create is logged and swallowed because
// the checkout itself already succeeded.
func (s *ReservationService) CheckOut(propertyID, reservationID uint) error {
	var roomIDs []uint

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := forUpdate(tx).Preload("Rooms").
			Where("property_id = ?", propertyID).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		if reservation.Status != models.ReservationStatusCheckedIn {
			return ErrNotCheckedIn
		}

		now := time.Now().UTC()
		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"status":         models.ReservationStatusCheckedOut,
			"checked_out_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}

		for _, slot := range reservation.Rooms {
			if slot.RoomID == nil {
				continue
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *slot.RoomID).
				Update("status", models.RoomStatusDirty).Error; err != nil {
				return fmt.Errorf("failed to mark room %d dirty: %w", *slot.RoomID, err)
			}
			roomIDs = append(roomIDs, *slot.RoomID)
		}

		if err := tx.Model(&models.Folio{}).
			Where("reservation_id = ? AND status = ?", reservationID, models.FolioStatusOpen).
			Update("status", models.FolioStatusClosed).Error; err != nil {
			return fmt.Errorf("failed to close stay folio: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return txErr
	}

	for _, roomID := range roomIDs {
		notes := fmt.Sprintf("Post check-out cleaning (reservation %d)", reservationID)
		if _, err := s.Housekeeping.CreateCleaningTask(propertyID, roomID, notes); err != nil {
			log.Printf("warning: failed to create housekeeping task for room %d: %v", roomID, err)
		}
	}

	return nil
}

// Cancel is only reachable from confirmed and has no room or folio side
// effects.
func (s *ReservationService) Cancel(propertyID, reservationID uint) error {
	res := s.DB.Model(&models.Reservation{}).
		Where("id = ? AND property_id = ? AND status = ?",
			reservationID, propertyID, models.ReservationStatusConfirmed).
		Update("status", models.ReservationStatusCancelled)
	if res.Error != nil {
		return fmt.Errorf("failed to cancel reservation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var reservation models.Reservation
		if err := s.DB.Where("property_id = ?", propertyID).First(&reservation, reservationID).Error; err != nil {
			return ErrReservationNotFound
		}
		return ErrNotConfirmed
	}
	return nil
}

// Delete removes a confirmed or cancelled reservation and cascades through
// folio items, payments, folios and reservation rooms, then releases any
// assigned rooms back to vacant.
func (s *ReservationService) Delete(propertyID, reservationID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Preload("Rooms").
			Where("property_id = ?", propertyID).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		if reservation.Status != models.ReservationStatusConfirmed &&
			reservation.Status != models.ReservationStatusCancelled {
			return ErrDeleteNotAllowed
		}

		var folioIDs []uint
		if err := tx.Model(&models.Folio{}).
			Where("reservation_id = ?", reservationID).
			Pluck("id", &folioIDs).Error; err != nil {
			return fmt.Errorf("failed to collect folios: %w", err)
		}

		if len(folioIDs) > 0 {
			if err := tx.Where("folio_id IN ?", folioIDs).Delete(&models.FolioItem{}).Error; err != nil {
				return fmt.Errorf("failed to delete folio items: %w", err)
			}
			if err := tx.Where("folio_id IN ?", folioIDs).Delete(&models.Payment{}).Error; err != nil {
				return fmt.Errorf("failed to delete payments: %w", err)
			}
			if err := tx.Where("id IN ?", folioIDs).Delete(&models.Folio{}).Error; err != nil {
				return fmt.Errorf("failed to delete folios: %w", err)
			}
		}

		if err := tx.Where("reservation_id = ?", reservationID).Delete(&models.ReservationRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete reservation rooms: %w", err)
		}

		for _, slot := range reservation.Rooms {
			if slot.RoomID == nil {
				continue
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *slot.RoomID).
				Update("status", models.RoomStatusVacant).Error; err != nil {
				return fmt.Errorf("failed to release room %d: %w", *slot.RoomID, err)
			}
		}

		if err := tx.Delete(&reservation).Error; err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}
		return nil
	})
}

// hasDateConflict checks the assigned rooms against other live reservations.
// When the conflict query itself errors the stay is treated as available
// (fail open); that leniency is deliberate and mirrors the availability
// behavior the front desk depends on.
func (s *ReservationService) hasDateConflict(reservation *models.Reservation, newCheckOut time.Time) bool {
	for _, slot := range reservation.Rooms {
		if slot.RoomID == nil {
			continue
		}
		var count int64
		err := s.DB.Model(&models.Reservation{}).
			Joins("JOIN reservation_rooms ON reservation_rooms.reservation_id = reservations.id").
			Where("reservation_rooms.room_id = ?", *slot.RoomID).
			Where("reservations.id != ?", reservation.ID).
			Where("reservations.status IN ?", []string{
				models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn,
			}).
			Where("reservations.check_in_date < ? AND reservations.check_out_date > ?",
				newCheckOut, reservation.CheckInDate).
			Count(&count).Error
		if err != nil {
			log.Printf("warning: availability check failed for room %d, treating as available: %v", *slot.RoomID, err)
			continue
		}
		if count > 0 {
			return true
		}
	}
	return false
}

// ExtendStay moves the check-out date. The stay total is rescaled
// proportionally at the reservation's average nightly rate, and the stay
// folio's total/balance are overwritten with the new figure. Overwriting (as
// opposed to posting an adjustment line) drops any discounts baked into the
// prior total; that matches the long-standing front-desk behavior and stays
// until product says otherwise.
func (s *ReservationService) ExtendStay(propertyID, reservationID uint, newCheckOut string) (*models.Reservation, error) {
	co, err := parseStayDate(newCheckOut)
	if err != nil || co == nil {
		return nil, ErrInvalidDates
	}

	var reservation models.Reservation
	if err := s.DB.Preload("Rooms").
		Where("property_id = ?", propertyID).
		First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}

	if reservation.Status != models.ReservationStatusConfirmed &&
		reservation.Status != models.ReservationStatusCheckedIn {
		return nil, ErrExtendNotAllowed
	}
	if reservation.CheckInDate == nil || !co.After(*reservation.CheckInDate) {
		return nil, ErrInvalidDates
	}

	if s.hasDateConflict(&reservation, *co) {
		return nil, ErrDateConflict
	}

	oldNights := reservation.Nights
	if oldNights <= 0 {
		oldNights = 1
	}
	newNights := nightsBetween(*reservation.CheckInDate, *co)

	avgNightly := reservation.TotalAmount.Div(decimal.NewFromInt(int64(oldNights)))
	newTotal := avgNightly.Mul(decimal.NewFromInt(int64(newNights))).Round(2)

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"check_out_date": co,
			"nights":         newNights,
			"total_amount":   newTotal,
		}).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}

		var folio models.Folio
		err := tx.Where("reservation_id = ?", reservationID).First(&folio).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load stay folio: %w", err)
		}

		// overwrite, not adjust: see function comment
		newBalance := newTotal.Sub(folio.PaidAmount)
		if err := tx.Model(&folio).Updates(map[string]interface{}{
			"total_amount": newTotal,
			"balance":      newBalance,
		}).Error; err != nil {
			return fmt.Errorf("failed to update stay folio: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetDetails(propertyID, reservationID)
}

// GetDetails loads one reservation with its rooms and guest.
func (s *ReservationService) GetDetails(propertyID, reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Rooms.Room").
		Preload("Rooms.RoomType").
		Preload("Guest").
		Where("property_id = ?", propertyID).
		First(&reservation, reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation details: %w", err)
	}
	return &reservation, nil
}

// GetAllWithRelations lists a property's reservations, newest first.
func (s *ReservationService) GetAllWithRelations(propertyID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.
		Preload("Guest").
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Rooms.RoomType").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}

	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.ReservationRoom{}
		}
	}
	return list, nil
}
