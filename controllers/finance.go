package controllers

import (
	"net/http"
	"time"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpenseInput struct {
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency"`
}

func CreateExpense(c *gin.Context) {
	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, ok := utils.ParseDate(input.Date)
	if !ok {
		date = time.Now()
	}
	expense := models.Expense{
		ID:          uuid.New(),
		Date:        date,
		Category:    utils.CanonicalTag(input.Category),
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    input.Currency,
	}
	if expense.Currency == "" {
		expense.Currency = "USD"
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func GetExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := config.DB.Order("date DESC").Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func DeleteExpense(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Deletion requires confirm=true")
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	result := config.DB.Where("id = ?", expenseUUID).Delete(&models.Expense{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

type FXRateInput struct {
	Currency string  `json:"currency" binding:"required"`
	Rate     float64 `json:"rate" binding:"required"`
	Date     string  `json:"date"`
}

func CreateFXRate(c *gin.Context) {
	var input FXRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, ok := utils.ParseDate(input.Date)
	if !ok {
		date = time.Now()
	}
	rate := models.FXRate{
		ID:       uuid.New(),
		Currency: input.Currency,
		Rate:     input.Rate,
		Date:     date,
	}

	if err := config.DB.Create(&rate).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create FX rate")
		return
	}

	c.JSON(http.StatusCreated, rate)
}

func GetFXRates(c *gin.Context) {
	var rates []models.FXRate
	if err := config.DB.Order("date DESC").Find(&rates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve FX rates")
		return
	}

	c.JSON(http.StatusOK, rates)
}

type TagOptionInput struct {
	Kind    string `json:"kind" binding:"required"`
	Key     string `json:"key" binding:"required"`
	LabelEN string `json:"labelEn"`
	LabelZH string `json:"labelZh"`
}

func CreateTagOption(c *gin.Context) {
	var input TagOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Kind != models.TagKindCategory && input.Kind != models.TagKindSeries {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown tag kind")
		return
	}

	option := models.TagOption{
		ID:      uuid.New(),
		Kind:    input.Kind,
		Key:     input.Key,
		LabelEN: input.LabelEN,
		LabelZH: input.LabelZH,
	}

	if err := config.DB.Create(&option).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	c.JSON(http.StatusCreated, option)
}

func GetTagOptions(c *gin.Context) {
	query := config.DB.Order("kind, key")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var options []models.TagOption
	if err := query.Find(&options).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tags")
		return
	}

	c.JSON(http.StatusOK, options)
}

// GetTagLabels returns the display label for every tag key in the requested
// language: the built-in canonical keys plus runtime-added tag options.
func GetTagLabels(c *gin.Context) {
	lang := c.DefaultQuery("lang", utils.LangEN)
	labels := utils.TagLabels(lang)

	var options []models.TagOption
	if err := config.DB.Find(&options).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tags")
		return
	}
	for _, o := range options {
		label := o.LabelEN
		if lang == utils.LangZH && o.LabelZH != "" {
			label = o.LabelZH
		}
		if label == "" {
			label = o.Key
		}
		labels[o.Key] = label
	}

	c.JSON(http.StatusOK, labels)
}

func DeleteTagOption(c *gin.Context) {
	tagUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tag ID format")
		return
	}

	result := config.DB.Where("id = ?", tagUUID).Delete(&models.TagOption{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tag")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tag not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
