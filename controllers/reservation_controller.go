package controllers

import (
	"log"
	"net/http"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	list, err := rc.Service.GetAllWithRelations(currentPropertyID(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (rc *ReservationController) GetReservationDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	reservation, err := rc.Service.GetDetails(currentPropertyID(c), id)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type createReservationPayload struct {
	GuestID     uint   `json:"guestId" binding:"required"`
	CheckIn     string `json:"checkIn" binding:"required"`
	CheckOut    string `json:"checkOut" binding:"required"`
	RoomTypeIDs []uint `json:"roomTypeIds" binding:"required"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var payload createReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	reservation, err := rc.Service.CreateReservation(
		currentPropertyID(c), payload.GuestID,
		payload.CheckIn, payload.CheckOut,
		payload.RoomTypeIDs, payload.Adults, payload.Children,
	)
	if err != nil {
		log.Printf("create reservation failed: %v", err)
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

type assignRoomsPayload struct {
	Assignments []services.RoomAssignment `json:"assignments" binding:"required"`
}

func (rc *ReservationController) AssignRooms(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload assignRoomsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	if err := rc.Service.AssignRooms(currentPropertyID(c), id, payload.Assignments); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"assigned": true})
}

func (rc *ReservationController) CheckIn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := rc.Service.CheckIn(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "checked_in"})
}

func (rc *ReservationController) CheckOut(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := rc.Service.CheckOut(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "checked_out"})
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := rc.Service.Cancel(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "cancelled"})
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := rc.Service.Delete(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

type extendStayPayload struct {
	NewCheckOut string `json:"newCheckOut" binding:"required"`
}

func (rc *ReservationController) ExtendStay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload extendStayPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	reservation, err := rc.Service.ExtendStay(currentPropertyID(c), id, payload.NewCheckOut)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
