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

func GetCorporateAccounts(c *gin.Context) {
	var accounts []models.CorporateAccount
	if err := config.DB.Where("property_id = ?", currentPropertyID(c)).
		Order("name ASC").Find(&accounts).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, accounts)
}

func GetCorporateAccountByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var account models.CorporateAccount
	if err := config.DB.Where("property_id = ?", currentPropertyID(c)).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "corporate_account_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, account)
}

func CreateCorporateAccount(c *gin.Context) {
	var account models.CorporateAccount
	if err := c.ShouldBindJSON(&account); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	account.Name = strings.TrimSpace(account.Name)
	if account.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name_required")
		return
	}
	account.PropertyID = currentPropertyID(c)

	if err := config.DB.Create(&account).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database_error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, account)
}

func UpdateCorporateAccount(c *gin.Context) {
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
	delete(updateData, "current_balance")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	result := config.DB.Model(&models.CorporateAccount{}).
		Where("id = ? AND property_id = ?", id, currentPropertyID(c)).
		Updates(updateData)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update_failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "corporate_account_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}
