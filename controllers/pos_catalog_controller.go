package controllers

import (
	"net/http"
	"strings"

	"pms-backend/config"
	"pms-backend/models"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

// Outlet and menu catalog: plain CRUD straight on the DB.

func GetOutlets(c *gin.Context) {
	var outlets []models.Outlet
	if err := config.DB.Where("property_id = ?", currentPropertyID(c)).Find(&outlets).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, outlets)
}

func CreateOutlet(c *gin.Context) {
	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	outlet.Name = strings.TrimSpace(outlet.Name)
	if outlet.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name_required")
		return
	}
	outlet.PropertyID = currentPropertyID(c)

	if err := config.DB.Create(&outlet).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, outlet)
}

func GetMenuItems(c *gin.Context) {
	outletID, ok := paramID(c, "outletId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var items []models.MenuItem
	if err := config.DB.Where("outlet_id = ?", outletID).Find(&items).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

func CreateMenuItem(c *gin.Context) {
	outletID, ok := paramID(c, "outletId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name_required")
		return
	}
	item.OutletID = outletID
	item.Available = true

	if err := config.DB.Create(&item).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

func UpdateMenuItem(c *gin.Context) {
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
	delete(updateData, "outlet_id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.MenuItem{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update_failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}
