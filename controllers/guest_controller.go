package controllers

import (
	"errors"
	"net/http"
	"strings"

	"pms-backend/config"
	"pms-backend/models"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetGuests(c *gin.Context) {
	q := config.DB.Where("property_id = ?", currentPropertyID(c))
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var guests []models.Guest
	if err := q.Order("full_name ASC").Find(&guests).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func GetGuestByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var guest models.Guest
	if err := config.DB.Where("property_id = ?", currentPropertyID(c)).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "guest_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	guest.FullName = strings.TrimSpace(guest.FullName)
	if guest.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "full_name_required")
		return
	}
	guest.PropertyID = currentPropertyID(c)

	if err := config.DB.Create(&guest).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func UpdateGuest(c *gin.Context) {
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

	if err := config.DB.Model(&models.Guest{}).
		Where("id = ? AND property_id = ?", id, currentPropertyID(c)).
		Updates(updateData).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update_failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}

func DeleteGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	result := config.DB.Where("id = ? AND property_id = ?", id, currentPropertyID(c)).Delete(&models.Guest{})
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete_failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "guest_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
