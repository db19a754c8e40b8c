package controllers

import (
	"net/http"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Service *services.StaffService
}

func NewStaffController(service *services.StaffService) *StaffController {
	return &StaffController{Service: service}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (sc *StaffController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	token, staff, err := sc.Service.Login(payload.Email, payload.Password)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"staff": staff,
	})
}

type createStaffPayload struct {
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
	Password   string `json:"password" binding:"required"`
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var payload createStaffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	staff, err := sc.Service.CreateStaff(currentPropertyID(c),
		payload.FullName, payload.Email, payload.Phone,
		payload.Role, payload.Department, payload.Password)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, staff)
}

func (sc *StaffController) GetStaff(c *gin.Context) {
	list, err := sc.Service.ListStaff(currentPropertyID(c), c.Query("role"))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (sc *StaffController) DeactivateStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := sc.Service.DeactivateStaff(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deactivated": true})
}
