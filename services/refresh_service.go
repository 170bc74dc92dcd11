// services/refresh_service.go
package services

import (
	"log"

	"crm-master-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RefreshService keeps every customer's cached derived dates consistent with
// their interaction logs via a nightly resync.
type RefreshService struct {
	db *gorm.DB
}

func NewRefreshService(db *gorm.DB) *RefreshService {
	return &RefreshService{db: db}
}

func (s *RefreshService) StartScheduler() {
	c := cron.New()

	// Run every night at 03:30
	c.AddFunc("30 3 * * *", s.RefreshAllCustomers)

	c.Start()
	log.Println("Derived-date scheduler started")
}

// RefreshAllCustomers recomputes the three cached dates for every customer.
// Non-authoritative: fields the log no longer supports keep their stored
// value rather than being cleared.
func (s *RefreshService) RefreshAllCustomers() {
	log.Println("Starting derived-date refresh...")

	var customers []models.Customer
	if err := s.db.Preload("Interactions").Find(&customers).Error; err != nil {
		log.Printf("Failed to fetch customers: %v", err)
		return
	}

	for i := range customers {
		customer := &customers[i]
		ApplyDerivedDates(customer, ComputeDerivedDates(customer.Interactions), false)

		err := s.db.Model(customer).Updates(map[string]interface{}{
			"last_contact_date":        customer.LastContactDate,
			"last_customer_reply_date": customer.LastCustomerReplyDate,
			"last_my_reply_date":       customer.LastMyReplyDate,
		}).Error
		if err != nil {
			log.Printf("Customer %s: failed to update derived dates: %v", customer.ID, err)
		}
	}

	log.Println("Derived-date refresh completed")
}
