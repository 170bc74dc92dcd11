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

// ContactInput is one contact row inside a customer payload
type ContactInput struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	WeChat    string `json:"weChat"`
	IsPrimary bool   `json:"isPrimary"`
}

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name           string         `json:"name" binding:"required"`
	Region         []string       `json:"region"`
	Rank           *int           `json:"rank"`
	Status         string         `json:"status"`
	FollowUpStatus string         `json:"followUpStatus"`
	ProductSummary string         `json:"productSummary"`
	Tags           []string       `json:"tags"`
	Contacts       []ContactInput `json:"contacts"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name           *string         `json:"name"`
	Region         *[]string       `json:"region"`
	Rank           *int            `json:"rank"`
	Status         *string         `json:"status"`
	FollowUpStatus *string         `json:"followUpStatus"`
	ProductSummary *string         `json:"productSummary"`
	Tags           *[]string       `json:"tags"`
	Contacts       *[]ContactInput `json:"contacts"`
}

// InteractionInput carries the structured form of one interaction; the
// encoded summary string is built server-side.
type InteractionInput struct {
	Date    string `json:"date" binding:"required"`
	Starred bool   `json:"starred"`
	Type    string `json:"type"`
	Effect  string `json:"effect"`
	Content string `json:"content"`
}

func buildContacts(customerID uuid.UUID, inputs []ContactInput) []models.Contact {
	contacts := make([]models.Contact, 0, len(inputs))
	primarySeen := false
	for _, in := range inputs {
		isPrimary := in.IsPrimary && !primarySeen
		if isPrimary {
			primarySeen = true
		}
		contacts = append(contacts, models.Contact{
			CustomerID: customerID,
			Name:       in.Name,
			Role:       in.Role,
			Email:      in.Email,
			Phone:      in.Phone,
			WeChat:     in.WeChat,
			IsPrimary:  isPrimary,
		})
	}
	return contacts
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Normalized name is the dedup key; refuse duplicates up front
	var existing models.Customer
	err := config.DB.Where("LOWER(TRIM(name)) = ?", services.NormalizeName(input.Name)).
		First(&existing).Error
	if err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		ID:             uuid.New(),
		Name:           input.Name,
		Region:         models.StringList(input.Region),
		Rank:           3,
		Status:         models.CustomerStatusPotential,
		FollowUpStatus: models.FollowUpNoAction,
		ProductSummary: input.ProductSummary,
	}
	if input.Rank != nil && *input.Rank >= 1 && *input.Rank <= 5 {
		customer.Rank = *input.Rank
	}
	if input.Status != "" {
		customer.Status = utils.CanonicalTag(input.Status)
	}
	if input.FollowUpStatus != "" {
		customer.FollowUpStatus = utils.CanonicalTag(input.FollowUpStatus)
	}
	for _, tag := range input.Tags {
		customer.Tags = append(customer.Tags, utils.CanonicalTag(tag))
	}
	if input.ProductSummary != "" {
		now := time.Now()
		customer.LastStatusUpdate = &now
	}
	customer.Contacts = buildContacts(customer.ID, input.Contacts)

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Preload("Contacts").Preload("Interactions").
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Contacts").Preload("Interactions").
		Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer. A rename cascades to the
// denormalized customer name on every sample; a product summary edit stamps
// LastStatusUpdate.
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Contacts").
		Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	renamed := false
	if input.Name != nil && *input.Name != "" && *input.Name != customer.Name {
		// refuse colliding with another customer's normalized name
		var other models.Customer
		err := config.DB.Where("LOWER(TRIM(name)) = ? AND id <> ?",
			services.NormalizeName(*input.Name), customerUUID).First(&other).Error
		if err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Another customer with this name already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		customer.Name = *input.Name
		renamed = true
	}
	if input.Region != nil {
		customer.Region = models.StringList(*input.Region)
	}
	if input.Rank != nil && *input.Rank >= 1 && *input.Rank <= 5 {
		customer.Rank = *input.Rank
	}
	if input.Status != nil {
		customer.Status = utils.CanonicalTag(*input.Status)
	}
	if input.FollowUpStatus != nil {
		customer.FollowUpStatus = utils.CanonicalTag(*input.FollowUpStatus)
	}
	if input.ProductSummary != nil {
		customer.ProductSummary = *input.ProductSummary
		now := time.Now()
		customer.LastStatusUpdate = &now
	}
	if input.Tags != nil {
		tags := make(models.StringList, 0, len(*input.Tags))
		for _, tag := range *input.Tags {
			tags = append(tags, utils.CanonicalTag(tag))
		}
		customer.Tags = tags
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if input.Contacts != nil {
			if err := tx.Where("customer_id = ?", customer.ID).
				Delete(&models.Contact{}).Error; err != nil {
				return err
			}
			customer.Contacts = buildContacts(customer.ID, *input.Contacts)
		}
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		if renamed {
			if err := tx.Model(&models.Sample{}).
				Where("customer_id = ?", customer.ID).
				Update("customer_name", customer.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer deletes a customer and, in the same transaction, every
// sample that references it. Gated by a single ?confirm=true.
func DeleteCustomer(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Deletion requires confirm=true")
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var deleted int64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteSamplesOf(tx, customerUUID); err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerUUID).
			Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerUUID).
			Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", customerUUID).Delete(&models.Customer{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if deleted == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// storeDerivedDates recomputes the cached dates from the customer's current
// interaction log and persists them.
func storeDerivedDates(tx *gorm.DB, customerID uuid.UUID, authoritative bool) error {
	var customer models.Customer
	if err := tx.Preload("Interactions").
		Where("id = ?", customerID).First(&customer).Error; err != nil {
		return err
	}
	services.ApplyDerivedDates(&customer, services.ComputeDerivedDates(customer.Interactions), authoritative)
	return tx.Model(&customer).Updates(map[string]interface{}{
		"last_contact_date":        customer.LastContactDate,
		"last_customer_reply_date": customer.LastCustomerReplyDate,
		"last_my_reply_date":       customer.LastMyReplyDate,
	}).Error
}

// AddInteraction appends an interaction to a customer's log and recomputes
// the cached derived dates (preserve policy).
func AddInteraction(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input InteractionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	date, ok := utils.ParseDate(input.Date)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	interaction := models.Interaction{
		CustomerID: customerUUID,
		Date:       date,
		Summary: utils.EncodeSummary(utils.SummaryParts{
			Starred: input.Starred,
			Type:    utils.CanonicalTag(input.Type),
			Effect:  utils.CanonicalTag(input.Effect),
			Content: input.Content,
		}),
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&interaction).Error; err != nil {
			return err
		}
		return storeDerivedDates(tx, customerUUID, false)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add interaction")
		return
	}

	c.JSON(http.StatusCreated, interaction)
}

// UpdateInteraction edits one interaction by id and recomputes the cached
// derived dates (preserve policy).
func UpdateInteraction(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	interactionUUID, err := uuid.Parse(c.Param("interactionId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid interaction ID format")
		return
	}

	var input InteractionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	date, ok := utils.ParseDate(input.Date)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	var interaction models.Interaction
	if err := config.DB.Where("id = ? AND customer_id = ?", interactionUUID, customerUUID).
		First(&interaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Interaction not found")
		return
	}

	interaction.Date = date
	interaction.Summary = utils.EncodeSummary(utils.SummaryParts{
		Starred: input.Starred,
		Type:    utils.CanonicalTag(input.Type),
		Effect:  utils.CanonicalTag(input.Effect),
		Content: input.Content,
	})

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&interaction).Error; err != nil {
			return err
		}
		return storeDerivedDates(tx, customerUUID, false)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update interaction")
		return
	}

	c.JSON(http.StatusOK, interaction)
}

// DeleteInteraction removes one interaction by id and recomputes the cached
// derived dates (preserve policy).
func DeleteInteraction(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	interactionUUID, err := uuid.Parse(c.Param("interactionId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid interaction ID format")
		return
	}

	var deleted int64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND customer_id = ?", interactionUUID, customerUUID).
			Delete(&models.Interaction{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}
		return storeDerivedDates(tx, customerUUID, false)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete interaction")
		return
	}
	if deleted == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Interaction not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interaction deleted successfully"})
}

// RefreshCustomerDates recomputes the cached derived dates on demand.
// Default keeps stored values where the log yields nothing;
// ?authoritative=true applies the computation verbatim, clearing
// unsupported fields.
func RefreshCustomerDates(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	authoritative := c.Query("authoritative") == "true"

	if err := storeDerivedDates(config.DB, customerUUID, authoritative); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to refresh dates")
		}
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, customer)
}
