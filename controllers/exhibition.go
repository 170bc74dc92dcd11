package controllers

import (
	"errors"
	"net/http"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateExhibitionInput struct {
	Name        string   `json:"name" binding:"required"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Link        string   `json:"link"`
	EventSeries []string `json:"eventSeries"`
	Summary     string   `json:"summary"`
}

type UpdateExhibitionInput struct {
	Name        *string   `json:"name"`
	Date        *string   `json:"date"`
	Location    *string   `json:"location"`
	Link        *string   `json:"link"`
	EventSeries *[]string `json:"eventSeries"`
	Summary     *string   `json:"summary"`
}

// CreateExhibition creates a new exhibition
func CreateExhibition(c *gin.Context) {
	var input CreateExhibitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	exhibition := models.Exhibition{
		ID:          uuid.New(),
		Name:        input.Name,
		Location:    input.Location,
		Link:        input.Link,
		EventSeries: models.StringList(input.EventSeries),
		Summary:     input.Summary,
	}
	if t, ok := utils.ParseDate(input.Date); ok {
		exhibition.Date = &t
	}

	if err := config.DB.Create(&exhibition).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create exhibition")
		return
	}

	c.JSON(http.StatusCreated, exhibition)
}

// GetExhibitions retrieves all exhibitions
func GetExhibitions(c *gin.Context) {
	var exhibitions []models.Exhibition
	if err := config.DB.Order("date").Find(&exhibitions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve exhibitions")
		return
	}

	c.JSON(http.StatusOK, exhibitions)
}

// UpdateExhibition updates an exhibition. A rename cascades through every
// customer's tag list; customers reference exhibitions by name, so without
// the rewrite the tags would orphan.
func UpdateExhibition(c *gin.Context) {
	exhibitionUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid exhibition ID format")
		return
	}

	var input UpdateExhibitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var exhibition models.Exhibition
	if err := config.DB.Where("id = ?", exhibitionUUID).First(&exhibition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Exhibition not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	oldName := exhibition.Name
	if input.Name != nil && *input.Name != "" {
		exhibition.Name = *input.Name
	}
	if input.Date != nil {
		if t, ok := utils.ParseDate(*input.Date); ok {
			exhibition.Date = &t
		} else {
			exhibition.Date = nil
		}
	}
	if input.Location != nil {
		exhibition.Location = *input.Location
	}
	if input.Link != nil {
		exhibition.Link = *input.Link
	}
	if input.EventSeries != nil {
		exhibition.EventSeries = models.StringList(*input.EventSeries)
	}
	if input.Summary != nil {
		exhibition.Summary = *input.Summary
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&exhibition).Error; err != nil {
			return err
		}
		if exhibition.Name == oldName {
			return nil
		}
		// bulk rewrite pass over the soft references
		var customers []models.Customer
		if err := tx.Find(&customers).Error; err != nil {
			return err
		}
		for i := range customers {
			customer := &customers[i]
			changed := false
			for j, tag := range customer.Tags {
				if tag == oldName {
					customer.Tags[j] = exhibition.Name
					changed = true
				}
			}
			if !changed {
				continue
			}
			if err := tx.Model(customer).Update("tags", customer.Tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update exhibition")
		return
	}

	c.JSON(http.StatusOK, exhibition)
}

// DeleteExhibition deletes an exhibition. Customer tags referencing it are
// left in place (they are soft references; only renames cascade). Gated by
// ?confirm=true.
func DeleteExhibition(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Deletion requires confirm=true")
		return
	}

	exhibitionUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid exhibition ID format")
		return
	}

	// hard delete: a soft-deleted row would keep the name in the unique
	// index and block re-creating an exhibition under the same name
	result := config.DB.Unscoped().Where("id = ?", exhibitionUUID).Delete(&models.Exhibition{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete exhibition")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Exhibition not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exhibition deleted successfully"})
}
