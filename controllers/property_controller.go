package controllers

import (
	"errors"
	"net/http"

	"pms-backend/config"
	"pms-backend/models"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetProperty(c *gin.Context) {
	var prop models.Property
	if err := config.DB.First(&prop, currentPropertyID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, prop)
}

// UpdateProperty also covers rate changes. New tax and service charge rates
// apply to charges posted afterwards; existing folio lines are not reworked.
func UpdateProperty(c *gin.Context) {
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	result := config.DB.Model(&models.Property{}).
		Where("id = ?", currentPropertyID(c)).
		Updates(updateData)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update_failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "property_not_found")
		return
	}

	var prop models.Property
	if err := config.DB.First(&prop, currentPropertyID(c)).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, prop)
}
