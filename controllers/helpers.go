package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"pms-backend/services"

	"github.com/gin-gonic/gin"
)

// currentPropertyID resolves the tenant for the request: the property baked
// into the session token wins, with a query-param fallback for internal
// tooling.
func currentPropertyID(c *gin.Context) uint {
	if v, ok := c.Get("propertyID"); ok {
		if id, ok2 := v.(uint); ok2 && id != 0 {
			return id
		}
	}
	if raw := c.Query("property_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return uint(id)
		}
	}
	return 0
}

func currentStaffID(c *gin.Context) uint {
	if v, ok := c.Get("staffID"); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}

func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

var notFoundErrs = []error{
	services.ErrPropertyNotFound,
	services.ErrFolioNotFound,
	services.ErrItemNotFound,
	services.ErrPaymentNotFound,
	services.ErrReservationNotFound,
	services.ErrRoomNotFound,
	services.ErrGuestNotFound,
	services.ErrTaskNotFound,
	services.ErrOrderNotFound,
	services.ErrMenuItemNotFound,
	services.ErrStaffNotFound,
	services.ErrCorporateNotFound,
}

var conflictErrs = []error{
	services.ErrItemVoided,
	services.ErrPaymentVoided,
	services.ErrFolioClosed,
	services.ErrAlreadyCheckedIn,
	services.ErrDateConflict,
	services.ErrEmailTaken,
	services.ErrOrderNotOpen,
}

// statusForError maps service sentinels onto HTTP codes; anything unknown is
// an internal error.
func statusForError(err error) int {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range conflictErrs {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrRoomsNotAssigned),
		errors.Is(err, services.ErrNotConfirmed),
		errors.Is(err, services.ErrNotCheckedIn),
		errors.Is(err, services.ErrDeleteNotAllowed),
		errors.Is(err, services.ErrExtendNotAllowed),
		errors.Is(err, services.ErrInvalidDates),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidItemType),
		errors.Is(err, services.ErrSameFolio),
		errors.Is(err, services.ErrNoItemsSelected),
		errors.Is(err, services.ErrRoomSlotMismatch),
		errors.Is(err, services.ErrPasswordTooShort):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
