package controllers

import (
	"net/http"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type PreferenceInput struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// GetSettings returns every persisted preference as a flat key-value map.
// Missing keys are simply absent; the client applies its own defaults.
func GetSettings(c *gin.Context) {
	var prefs []models.Preference
	if err := config.DB.Find(&prefs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	out := make(map[string]string, len(prefs))
	for _, p := range prefs {
		out[p.Key] = p.Value
	}
	c.JSON(http.StatusOK, out)
}

// UpdateSetting upserts a single preference key. Writes are per-key and
// synchronous; there is deliberately no multi-key transaction.
func UpdateSetting(c *gin.Context) {
	var input PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.IsPreferenceKey(input.Key) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown preference key")
		return
	}

	pref := models.Preference{Key: input.Key, Value: input.Value}
	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&pref).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	c.JSON(http.StatusOK, pref)
}
