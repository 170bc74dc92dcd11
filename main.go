package main

import (
	"fmt"
	"log"
	"os"

	"crm-master-backend/config"
	"crm-master-backend/models"
	"crm-master-backend/routes"
	"crm-master-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Customer{},
		&models.Contact{},
		&models.Interaction{},
		&models.Sample{},
		&models.SampleFee{},
		&models.DocumentLink{},
		&models.Exhibition{},
		&models.Expense{},
		&models.FXRate{},
		&models.TagOption{},
		&models.Preference{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("REFRESH_CRON_DISABLED") == "" {
		services.NewRefreshService(config.DB).StartScheduler()
	}

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
