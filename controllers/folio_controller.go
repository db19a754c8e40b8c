package controllers

import (
	"log"
	"net/http"
	"time"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type FolioController struct {
	Service *services.FolioService
}

func NewFolioController(service *services.FolioService) *FolioController {
	return &FolioController{Service: service}
}

type createFolioPayload struct {
	GuestID       uint  `json:"guestId" binding:"required"`
	ReservationID *uint `json:"reservationId"`
}

func (fc *FolioController) CreateFolio(c *gin.Context) {
	var payload createFolioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	folio, err := fc.Service.CreateFolio(currentPropertyID(c), payload.GuestID, payload.ReservationID)
	if err != nil {
		log.Printf("create folio failed: %v", err)
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, folio)
}

func (fc *FolioController) GetFolio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	folio, err := fc.Service.GetFolio(currentPropertyID(c), id)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}

func (fc *FolioController) ListFolios(c *gin.Context) {
	folios, err := fc.Service.ListFolios(currentPropertyID(c), c.Query("status"))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folios)
}

type addChargePayload struct {
	ItemType    string          `json:"itemType" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	ServiceDate *time.Time      `json:"serviceDate"`
}

func (fc *FolioController) AddCharge(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload addChargePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	folio, err := fc.Service.AddCharge(
		currentPropertyID(c), id,
		payload.ItemType, payload.Description,
		payload.Quantity, payload.UnitPrice,
		payload.ServiceDate,
	)
	if err != nil {
		log.Printf("add charge failed (folio %d): %v", id, err)
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}

type adjustmentPayload struct {
	ItemType    string          `json:"itemType" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

func (fc *FolioController) AddAdjustment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload adjustmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	folio, err := fc.Service.AddAdjustment(
		currentPropertyID(c), id,
		payload.ItemType, payload.Description, payload.Amount,
	)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}

type paymentPayload struct {
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Method             string          `json:"method" binding:"required"`
	Reference          string          `json:"reference"`
	CorporateAccountID *uint           `json:"corporateAccountId"`
}

func (fc *FolioController) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload paymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	folio, err := fc.Service.RecordPayment(
		currentPropertyID(c), id,
		payload.Amount, payload.Method, payload.Reference,
		payload.CorporateAccountID,
	)
	if err != nil {
		log.Printf("record payment failed (folio %d): %v", id, err)
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}

type voidPayload struct {
	Reason string `json:"reason"`
}

func (fc *FolioController) VoidItem(c *gin.Context) {
	folioID, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload voidPayload
	_ = c.ShouldBindJSON(&payload)

	folio, err := fc.Service.VoidItem(currentPropertyID(c), folioID, itemID, currentStaffID(c), payload.Reason)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}

func (fc *FolioController) VoidPayment(c *gin.Context) {
	folioID, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	paymentID, ok := paramID(c, "paymentId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload voidPayload
	_ = c.ShouldBindJSON(&payload)

	folio, err := fc.Service.VoidPayment(currentPropertyID(c), folioID, paymentID, currentStaffID(c), payload.Reason)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}

type transferPayload struct {
	TargetFolioID uint `json:"targetFolioId" binding:"required"`
}

func (fc *FolioController) TransferCharge(c *gin.Context) {
	folioID, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload transferPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	if err := fc.Service.TransferCharge(currentPropertyID(c), folioID, itemID, payload.TargetFolioID); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"transferred": true})
}

type splitPayload struct {
	ItemIDs []uint `json:"itemIds" binding:"required"`
}

func (fc *FolioController) SplitFolio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload splitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	newFolio, err := fc.Service.SplitFolio(currentPropertyID(c), id, payload.ItemIDs)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, newFolio)
}

func (fc *FolioController) CloseFolio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := fc.Service.CloseFolio(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "closed"})
}

func (fc *FolioController) ReopenFolio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := fc.Service.ReopenFolio(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "open"})
}
