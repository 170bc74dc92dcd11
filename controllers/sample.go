package controllers

import (
	"errors"
	"net/http"
	"time"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/services"
	"crm-master-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SampleFeeInput struct {
	PaymentCategory string  `json:"paymentCategory"`
	PaymentType     string  `json:"paymentType"`
	SamplePrice     float64 `json:"samplePrice"`
	ShippingPrice   float64 `json:"shippingPrice"`
	Currency        string  `json:"currency"`
	Balance         float64 `json:"balance"`
	InvoiceDate     string  `json:"invoiceDate"`
	PaymentDate     string  `json:"paymentDate"`
	PaymentStatus   string  `json:"paymentStatus"`
	Comment         string  `json:"comment"`
}

type DocumentLinkInput struct {
	Title string `json:"title"`
	URL   string `json:"url" binding:"required"`
}

// CreateSampleInput defines the expected JSON structure for creating a sample
type CreateSampleInput struct {
	CustomerID     string              `json:"customerId" binding:"required"`
	CrystalType    string              `json:"crystalType"`
	Categories     []string            `json:"categories"`
	Form           string              `json:"form"`
	OriginalSize   string              `json:"originalSize"`
	ProcessedSize  string              `json:"processedSize"`
	Nickname       string              `json:"nickname"`
	Status         string              `json:"status"`
	TestStatus     string              `json:"testStatus"`
	NextActionDate string              `json:"nextActionDate"`
	UpcomingPlan   string              `json:"upcomingPlan"`
	Fee            *SampleFeeInput     `json:"fee"`
	Documents      []DocumentLinkInput `json:"documents"`
}

// UpdateSampleInput defines the expected JSON structure for updating a sample
type UpdateSampleInput struct {
	CrystalType    *string              `json:"crystalType"`
	Categories     *[]string            `json:"categories"`
	Form           *string              `json:"form"`
	OriginalSize   *string              `json:"originalSize"`
	ProcessedSize  *string              `json:"processedSize"`
	Nickname       *string              `json:"nickname"`
	Status         *string              `json:"status"`
	TestStatus     *string              `json:"testStatus"`
	NextActionDate *string              `json:"nextActionDate"`
	UpcomingPlan   *string              `json:"upcomingPlan"`
	Fee            *SampleFeeInput      `json:"fee"`
	Documents      *[]DocumentLinkInput `json:"documents"`
}

type SampleHistoryInput struct {
	Date string `json:"date"`
	Text string `json:"text" binding:"required"`
}

func buildFee(sampleID uuid.UUID, in *SampleFeeInput) *models.SampleFee {
	if in == nil {
		return nil
	}
	fee := &models.SampleFee{
		SampleID:        sampleID,
		PaymentCategory: in.PaymentCategory,
		PaymentType:     in.PaymentType,
		SamplePrice:     in.SamplePrice,
		ShippingPrice:   in.ShippingPrice,
		Currency:        in.Currency,
		Balance:         in.Balance,
		PaymentStatus:   in.PaymentStatus,
		Comment:         in.Comment,
	}
	if fee.Currency == "" {
		fee.Currency = "USD"
	}
	if fee.PaymentStatus == "" {
		fee.PaymentStatus = "unpaid"
	}
	if t, ok := utils.ParseDate(in.InvoiceDate); ok {
		fee.InvoiceDate = &t
	}
	if t, ok := utils.ParseDate(in.PaymentDate); ok {
		fee.PaymentDate = &t
	}
	return fee
}

func buildDocuments(sampleID uuid.UUID, inputs []DocumentLinkInput) []models.DocumentLink {
	docs := make([]models.DocumentLink, 0, len(inputs))
	for _, in := range inputs {
		docs = append(docs, models.DocumentLink{
			SampleID: sampleID,
			Title:    in.Title,
			URL:      in.URL,
		})
	}
	return docs
}

// CreateSample creates a new sample under a customer, assigning the next
// per-customer index and the derived composite name.
func CreateSample(c *gin.Context) {
	var input CreateSampleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing []models.Sample
	if err := config.DB.Select("customer_id", "sample_index").
		Where("customer_id = ?", customerUUID).Find(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	sample := models.Sample{
		ID:             uuid.New(),
		CustomerID:     customerUUID,
		CustomerName:   customer.Name,
		SampleIndex:    services.NextSampleIndex(existing, customerUUID),
		CrystalType:    input.CrystalType,
		Categories:     models.StringList(input.Categories),
		Form:           input.Form,
		OriginalSize:   input.OriginalSize,
		ProcessedSize:  input.ProcessedSize,
		Nickname:       input.Nickname,
		Status:         models.SampleStatusPreparing,
		TestStatus:     models.TestStatusOngoing,
		UpcomingPlan:   input.UpcomingPlan,
		LastStatusDate: &now,
	}
	if input.Status != "" {
		sample.Status = utils.CanonicalTag(input.Status)
	}
	if input.TestStatus != "" {
		sample.TestStatus = utils.CanonicalTag(input.TestStatus)
	}
	if t, ok := utils.ParseDate(input.NextActionDate); ok {
		sample.NextActionDate = &t
	}
	sample.SampleName = sample.DeriveName()
	sample.Fee = buildFee(sample.ID, input.Fee)
	sample.Documents = buildDocuments(sample.ID, input.Documents)

	if err := config.DB.Create(&sample).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create sample")
		return
	}

	c.JSON(http.StatusCreated, sample)
}

// GetSamples retrieves samples, optionally filtered by ?customerId=
func GetSamples(c *gin.Context) {
	query := config.DB.Preload("Fee").Preload("Documents")
	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	var samples []models.Sample
	if err := query.Order("customer_name, sample_index").Find(&samples).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve samples")
		return
	}

	c.JSON(http.StatusOK, samples)
}

// GetSample retrieves a specific sample by ID
func GetSample(c *gin.Context) {
	sampleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sample ID format")
		return
	}

	var sample models.Sample
	if err := config.DB.Preload("Fee").Preload("Documents").
		Where("id = ?", sampleUUID).First(&sample).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sample not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, sample)
}

// UpdateSample updates an existing sample. Any change to a name constituent
// re-derives the composite name; every update stamps LastStatusDate.
func UpdateSample(c *gin.Context) {
	sampleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sample ID format")
		return
	}

	var input UpdateSampleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var sample models.Sample
	if err := config.DB.Where("id = ?", sampleUUID).First(&sample).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sample not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CrystalType != nil {
		sample.CrystalType = *input.CrystalType
	}
	if input.Categories != nil {
		sample.Categories = models.StringList(*input.Categories)
	}
	if input.Form != nil {
		sample.Form = *input.Form
	}
	if input.OriginalSize != nil {
		sample.OriginalSize = *input.OriginalSize
	}
	if input.ProcessedSize != nil {
		sample.ProcessedSize = *input.ProcessedSize
	}
	if input.Nickname != nil {
		sample.Nickname = *input.Nickname
	}
	if input.Status != nil {
		sample.Status = utils.CanonicalTag(*input.Status)
	}
	if input.TestStatus != nil {
		sample.TestStatus = utils.CanonicalTag(*input.TestStatus)
	}
	if input.NextActionDate != nil {
		if t, ok := utils.ParseDate(*input.NextActionDate); ok {
			sample.NextActionDate = &t
		} else {
			sample.NextActionDate = nil
		}
	}
	if input.UpcomingPlan != nil {
		sample.UpcomingPlan = *input.UpcomingPlan
	}
	sample.SampleName = sample.DeriveName()
	now := time.Now()
	sample.LastStatusDate = &now

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if input.Fee != nil {
			if err := tx.Where("sample_id = ?", sample.ID).
				Delete(&models.SampleFee{}).Error; err != nil {
				return err
			}
			if fee := buildFee(sample.ID, input.Fee); fee != nil {
				if err := tx.Create(fee).Error; err != nil {
					return err
				}
				sample.Fee = fee
			}
		}
		if input.Documents != nil {
			if err := tx.Where("sample_id = ?", sample.ID).
				Delete(&models.DocumentLink{}).Error; err != nil {
				return err
			}
			sample.Documents = buildDocuments(sample.ID, *input.Documents)
			for i := range sample.Documents {
				if err := tx.Create(&sample.Documents[i]).Error; err != nil {
					return err
				}
			}
		}
		return tx.Omit("Fee", "Documents").Save(&sample).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update sample")
		return
	}

	c.JSON(http.StatusOK, sample)
}

// AddSampleHistory prepends a dated entry to the sample's status log.
func AddSampleHistory(c *gin.Context) {
	sampleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sample ID format")
		return
	}

	var input SampleHistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	date, ok := utils.ParseDate(input.Date)
	if !ok {
		date = time.Now()
	}

	var sample models.Sample
	if err := config.DB.Where("id = ?", sampleUUID).First(&sample).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Sample not found")
		return
	}

	sample.StatusDetails = utils.PrependHistory(sample.StatusDetails, date, input.Text)
	now := time.Now()
	sample.LastStatusDate = &now

	if err := config.DB.Model(&sample).Updates(map[string]interface{}{
		"status_details":   sample.StatusDetails,
		"last_status_date": sample.LastStatusDate,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add history entry")
		return
	}

	c.JSON(http.StatusOK, sample)
}

// SampleHistoryEntryView is one decoded status log entry.
type SampleHistoryEntryView struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// GetSampleHistory returns the decoded status log, newest first.
func GetSampleHistory(c *gin.Context) {
	sampleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sample ID format")
		return
	}

	var sample models.Sample
	if err := config.DB.Where("id = ?", sampleUUID).First(&sample).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Sample not found")
		return
	}

	entries := utils.ParseHistory(sample.StatusDetails)
	out := make([]SampleHistoryEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, SampleHistoryEntryView{
			Date: e.Date.Format(utils.DateLayout),
			Text: e.Text,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ReplaceSampleHistory overwrites the whole status log from structured
// entries, in the order given (newest first). This is how single entries get
// edited or removed.
func ReplaceSampleHistory(c *gin.Context) {
	sampleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sample ID format")
		return
	}

	var inputs []SampleHistoryEntryView
	if err := c.ShouldBindJSON(&inputs); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var sample models.Sample
	if err := config.DB.Where("id = ?", sampleUUID).First(&sample).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Sample not found")
		return
	}

	entries := make([]utils.HistoryEntry, 0, len(inputs))
	for _, in := range inputs {
		date, ok := utils.ParseDate(in.Date)
		if !ok {
			date = utils.BeginningOfDay(time.Now())
		}
		entries = append(entries, utils.HistoryEntry{Date: date, Text: in.Text})
	}
	sample.StatusDetails = utils.EncodeHistory(entries)
	now := time.Now()
	sample.LastStatusDate = &now

	if err := config.DB.Model(&sample).Updates(map[string]interface{}{
		"status_details":   sample.StatusDetails,
		"last_status_date": sample.LastStatusDate,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to replace history")
		return
	}

	c.JSON(http.StatusOK, sample)
}

// deleteSamplesOf removes every sample owned by a customer, fee and document
// rows included. Shared with the customer cascade delete.
func deleteSamplesOf(tx *gorm.DB, customerID uuid.UUID) error {
	var sampleIDs []uuid.UUID
	if err := tx.Model(&models.Sample{}).Where("customer_id = ?", customerID).
		Pluck("id", &sampleIDs).Error; err != nil {
		return err
	}
	if len(sampleIDs) == 0 {
		return nil
	}
	if err := tx.Where("sample_id IN ?", sampleIDs).
		Delete(&models.SampleFee{}).Error; err != nil {
		return err
	}
	if err := tx.Where("sample_id IN ?", sampleIDs).
		Delete(&models.DocumentLink{}).Error; err != nil {
		return err
	}
	return tx.Where("customer_id = ?", customerID).Delete(&models.Sample{}).Error
}

// DeleteSample deletes one sample. Gated by ?confirm=true.
func DeleteSample(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Deletion requires confirm=true")
		return
	}

	sampleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sample ID format")
		return
	}

	var deleted int64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sample_id = ?", sampleUUID).
			Delete(&models.SampleFee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sample_id = ?", sampleUUID).
			Delete(&models.DocumentLink{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", sampleUUID).Delete(&models.Sample{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete sample")
		return
	}
	if deleted == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Sample not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sample deleted successfully"})
}
