package services

import "errors"

// Business rejections are sentinel codes so controllers can map them to 4xx
// responses; infrastructure failures are wrapped with %w and become 500s.
var (
	ErrPropertyNotFound = errors.New("property_not_found")

	ErrFolioNotFound   = errors.New("folio_not_found")
	ErrFolioClosed     = errors.New("folio_closed")
	ErrItemNotFound    = errors.New("item_not_found")
	ErrItemVoided      = errors.New("item_already_voided")
	ErrPaymentNotFound = errors.New("payment_not_found")
	ErrPaymentVoided   = errors.New("payment_already_voided")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidItemType = errors.New("invalid_item_type")
	ErrSameFolio       = errors.New("same_folio")
	ErrNoItemsSelected = errors.New("no_items_selected")

	ErrReservationNotFound = errors.New("reservation_not_found")
	ErrRoomsNotAssigned    = errors.New("rooms_not_assigned")
	ErrNotConfirmed        = errors.New("not_confirmed")
	ErrNotCheckedIn        = errors.New("not_checked_in")
	ErrAlreadyCheckedIn    = errors.New("already_checked_in")
	ErrDeleteNotAllowed    = errors.New("delete_not_allowed")
	ErrExtendNotAllowed    = errors.New("extend_not_allowed")
	ErrDateConflict        = errors.New("reservation_date_conflict")
	ErrInvalidDates        = errors.New("invalid_dates")
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrGuestNotFound       = errors.New("guest_not_found")
	ErrRoomSlotMismatch    = errors.New("room_slot_mismatch")

	ErrTaskNotFound = errors.New("task_not_found")

	ErrOrderNotFound    = errors.New("pos_order_not_found")
	ErrOrderNotOpen     = errors.New("pos_order_not_open")
	ErrMenuItemNotFound = errors.New("menu_item_not_found")

	ErrStaffNotFound      = errors.New("staff_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrPasswordTooShort   = errors.New("password_too_short")
	ErrEmailTaken         = errors.New("email_taken")

	ErrCorporateNotFound = errors.New("corporate_account_not_found")
)
