package controllers

import (
	"net/http"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type PosController struct {
	Service *services.PosService
}

func NewPosController(service *services.PosService) *PosController {
	return &PosController{Service: service}
}

type openOrderPayload struct {
	OutletID    uint   `json:"outletId" binding:"required"`
	TableNumber string `json:"tableNumber"`
	Covers      int    `json:"covers"`
}

func (pc *PosController) OpenOrder(c *gin.Context) {
	var payload openOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	order, err := pc.Service.OpenOrder(currentPropertyID(c), payload.OutletID, payload.TableNumber, payload.Covers)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

func (pc *PosController) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	order, err := pc.Service.GetOrder(currentPropertyID(c), id)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

type addLinesPayload struct {
	Lines []services.OrderLine `json:"lines" binding:"required"`
}

func (pc *PosController) AddLines(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload addLinesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	order, err := pc.Service.AddLines(currentPropertyID(c), id, payload.Lines)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

func (pc *PosController) SettleOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := pc.Service.SettleOrder(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "settled"})
}

type postToFolioPayload struct {
	FolioID uint `json:"folioId" binding:"required"`
}

func (pc *PosController) PostToFolio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload postToFolioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	folio, err := pc.Service.PostToFolio(currentPropertyID(c), id, payload.FolioID)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, folio)
}
