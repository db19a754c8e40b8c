package controllers

import (
	"net/http"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type HousekeepingController struct {
	Service *services.HousekeepingService
}

func NewHousekeepingController(service *services.HousekeepingService) *HousekeepingController {
	return &HousekeepingController{Service: service}
}

func (hc *HousekeepingController) ListTasks(c *gin.Context) {
	tasks, err := hc.Service.ListTasks(currentPropertyID(c), c.Query("status"))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tasks)
}

type createTaskPayload struct {
	RoomID uint   `json:"roomId" binding:"required"`
	Notes  string `json:"notes"`
}

func (hc *HousekeepingController) CreateTask(c *gin.Context) {
	var payload createTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	task, err := hc.Service.CreateCleaningTask(currentPropertyID(c), payload.RoomID, payload.Notes)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, task)
}

func (hc *HousekeepingController) StartTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := hc.Service.StartTask(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "in_progress"})
}

func (hc *HousekeepingController) CompleteTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := hc.Service.CompleteTask(currentPropertyID(c), id); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "completed"})
}
