package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"pms-backend/config"
	"pms-backend/models"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	q := config.DB.Preload("RoomType").Where("property_id = ?", currentPropertyID(c))
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("room binding error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "room_number_required")
		return
	}
	room.PropertyID = currentPropertyID(c)
	if room.Status == "" {
		room.Status = models.RoomStatusVacant
	}

	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := config.DB.Where("id = ?", *room.RoomTypeID).First(&rt).Error; err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid_room_type")
			return
		}
	}

	if result := config.DB.Create(&room); result.Error != nil {
		if strings.Contains(result.Error.Error(), "Duplicate entry") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict,
				fmt.Sprintf("room number '%s' already exists", room.RoomNumber))
			return
		}
		log.Printf("room create error: %v", result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, room)
}

func UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	delete(updateData, "id")
	delete(updateData, "property_id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Room{}).
		Where("id = ? AND property_id = ?", id, currentPropertyID(c)).
		Updates(updateData).Error; err != nil {
		log.Printf("room update error (id %d): %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "update_failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}

func DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	result := config.DB.Where("id = ? AND property_id = ?", id, currentPropertyID(c)).Delete(&models.Room{})
	if result.Error != nil {
		log.Printf("room delete error (id %d): %v", id, result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "delete_failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "room_not_found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
