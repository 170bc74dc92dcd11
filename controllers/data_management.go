package controllers

import (
	"bytes"
	"net/http"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/services"
	"crm-master-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImportCustomers ingests a TSV body. ?mode=merge (default) reconciles by
// normalized name with id preservation; ?mode=replace discards the existing
// customer set (and its samples, per the cascade rule) and requires
// confirm=true.
func ImportCustomers(c *gin.Context) {
	mode := c.DefaultQuery("mode", "merge")
	if mode != "merge" && mode != "replace" {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown import mode")
		return
	}
	if mode == "replace" && c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Replace import requires confirm=true")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}
	rows, err := services.ReadTSV(bytes.NewReader(body))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unparseable TSV input")
		return
	}
	incoming := services.ParseCustomerRows(rows)

	var existing []models.Customer
	if err := config.DB.Find(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var merged []models.Customer
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if mode == "replace" {
			merged = services.ReplaceCustomers(incoming)
			for i := range existing {
				if err := deleteSamplesOf(tx, existing[i].ID); err != nil {
					return err
				}
			}
			for _, table := range []interface{}{
				&models.Interaction{}, &models.Contact{}, &models.Customer{},
			} {
				if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
					return err
				}
			}
			for i := range merged {
				if err := tx.Create(&merged[i]).Error; err != nil {
					return err
				}
			}
			return nil
		}

		merged = services.MergeCustomers(existing, incoming)
		touched := make(map[string]bool, len(incoming))
		for i := range incoming {
			touched[services.NormalizeName(incoming[i].Name)] = true
		}
		for i := range merged {
			customer := &merged[i]
			// untouched existing customers keep their contacts and samples as is
			if !touched[services.NormalizeName(customer.Name)] {
				continue
			}
			// imported rows never carry interactions, so existing logs
			// survive a merge re-import; contacts are replaced wholesale
			if err := tx.Where("customer_id = ?", customer.ID).
				Delete(&models.Contact{}).Error; err != nil {
				return err
			}
			for j := range customer.Contacts {
				customer.Contacts[j].CustomerID = customer.ID
			}
			if err := tx.Omit("Interactions").Save(customer).Error; err != nil {
				return err
			}
			// replaced record may have been renamed; keep samples in sync
			if err := tx.Model(&models.Sample{}).Where("customer_id = ?", customer.ID).
				Update("customer_name", customer.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to import customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":     mode,
		"imported": len(incoming),
		"total":    len(merged),
	})
}

// ImportSamples ingests a TSV body. Rows always append; customer names that
// resolve to nothing get the unknown sentinel rather than failing the batch.
func ImportSamples(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}
	rows, err := services.ReadTSV(bytes.NewReader(body))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unparseable TSV input")
		return
	}
	incoming := services.ParseSampleRows(rows)

	var customers []models.Customer
	if err := config.DB.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	var existing []models.Sample
	if err := config.DB.Select("customer_id", "sample_index").
		Find(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	attached := services.AttachSamples(incoming, customers, existing)
	orphans := 0
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for i := range attached {
			if attached[i].CustomerID == services.UnknownCustomerID {
				orphans++
			}
			if err := tx.Create(&attached[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to import samples")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported":   len(attached),
		"unresolved": orphans,
	})
}

// ExportCustomers writes every customer as TSV with the fixed header list.
func ExportCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Preload("Contacts").Order("name").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="customers.tsv"`)
	c.Header("Content-Type", "text/tab-separated-values; charset=utf-8")
	if err := services.WriteTSV(c.Writer, services.CustomerExportHeader,
		services.CustomerExportRows(customers)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write export")
	}
}

// ExportSamples writes every sample as TSV with the fixed header list.
func ExportSamples(c *gin.Context) {
	var samples []models.Sample
	if err := config.DB.Order("customer_name, sample_index").Find(&samples).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve samples")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="samples.tsv"`)
	c.Header("Content-Type", "text/tab-separated-values; charset=utf-8")
	if err := services.WriteTSV(c.Writer, services.SampleExportHeader,
		services.SampleExportRows(samples)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write export")
	}
}

// ClearDatabase wipes every entity table in one transaction. Preferences
// survive a clear. Gated by ?confirm=true.
func ClearDatabase(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Clearing the database requires confirm=true")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{
			&models.SampleFee{}, &models.DocumentLink{}, &models.Sample{},
			&models.Interaction{}, &models.Contact{}, &models.Customer{},
			&models.Exhibition{}, &models.Expense{}, &models.FXRate{},
			&models.TagOption{},
		} {
			// hard delete: soft-deleted rows would still trip unique
			// indexes (exhibition names) on re-import
			if err := tx.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear database")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Database cleared"})
}
