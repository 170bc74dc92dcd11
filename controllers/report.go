// controllers/report.go
package controllers

import (
	"net/http"
	"sort"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/services"
	"crm-master-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// OverviewSummary represents the dashboard overview data
type OverviewSummary struct {
	TotalCustomers   int            `json:"totalCustomers"`
	TotalSamples     int            `json:"totalSamples"`
	TotalExhibitions int            `json:"totalExhibitions"`
	CustomerAging    map[string]int `json:"customerAging"`
	SampleUrgency    map[string]int `json:"sampleUrgency"`
}

// GetOverview returns counts plus the aging/urgency color buckets the
// dashboard paints: customers by days since last contact, samples by days
// until their next action date.
func (rc *ReportController) GetOverview(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	var samples []models.Sample
	if err := config.DB.Find(&samples).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve samples")
		return
	}
	var exhibitionCount int64
	if err := config.DB.Model(&models.Exhibition{}).Count(&exhibitionCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count exhibitions")
		return
	}

	summary := OverviewSummary{
		TotalCustomers:   len(customers),
		TotalSamples:     len(samples),
		TotalExhibitions: int(exhibitionCount),
		CustomerAging:    make(map[string]int),
		SampleUrgency:    make(map[string]int),
	}
	for i := range customers {
		summary.CustomerAging[utils.ClassifyAging(customers[i].LastContactDate)]++
	}
	for i := range samples {
		summary.SampleUrgency[utils.ClassifyDeadline(samples[i].NextActionDate)]++
	}

	c.JSON(http.StatusOK, summary)
}

// GetSamplesByStatus groups samples into status-board columns, first-seen
// status order, stable within each column.
func (rc *ReportController) GetSamplesByStatus(c *gin.Context) {
	var samples []models.Sample
	if err := config.DB.Order("customer_name, sample_index").Find(&samples).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve samples")
		return
	}

	groups := utils.GroupBy(samples, func(s models.Sample) string { return s.Status })
	c.JSON(http.StatusOK, groups)
}

// GetCustomersBySeries groups customers by the event series of their tagged
// exhibitions for the printable report, ordered with a Chinese-aware
// collation. Customers whose tags resolve to no series land under "other".
func (rc *ReportController) GetCustomersBySeries(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Preload("Contacts").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	var exhibitions []models.Exhibition
	if err := config.DB.Find(&exhibitions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve exhibitions")
		return
	}

	seriesByName := make(map[string]string)
	for i := range exhibitions {
		if len(exhibitions[i].EventSeries) > 0 {
			seriesByName[services.NormalizeName(exhibitions[i].Name)] = exhibitions[i].EventSeries[0]
		}
	}

	groups := utils.SortedGroupBy(customers, func(cust models.Customer) string {
		for _, tag := range cust.Tags {
			if series, ok := seriesByName[services.NormalizeName(tag)]; ok {
				return series
			}
		}
		return "other"
	}, utils.CollatedLess)

	// locale-aware name order inside each group
	for g := range groups {
		items := groups[g].Items
		sort.SliceStable(items, func(i, j int) bool {
			return utils.CollatedLess(items[i].Name, items[j].Name)
		})
	}

	c.JSON(http.StatusOK, groups)
}
