package routes

import (
	"crm-master-backend/config"
	"crm-master-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api")
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)

			customers.POST("/:id/interactions", controllers.AddInteraction)
			customers.PUT("/:id/interactions/:interactionId", controllers.UpdateInteraction)
			customers.DELETE("/:id/interactions/:interactionId", controllers.DeleteInteraction)
			customers.POST("/:id/refresh-dates", controllers.RefreshCustomerDates)
		}

		// Sample routes
		samples := api.Group("/samples")
		{
			samples.POST("", controllers.CreateSample)
			samples.GET("", controllers.GetSamples)
			samples.GET("/:id", controllers.GetSample)
			samples.PUT("/:id", controllers.UpdateSample)
			samples.DELETE("/:id", controllers.DeleteSample)
			samples.POST("/:id/history", controllers.AddSampleHistory)
			samples.GET("/:id/history", controllers.GetSampleHistory)
			samples.PUT("/:id/history", controllers.ReplaceSampleHistory)
		}

		// Exhibition routes
		exhibitions := api.Group("/exhibitions")
		{
			exhibitions.POST("", controllers.CreateExhibition)
			exhibitions.GET("", controllers.GetExhibitions)
			exhibitions.PUT("/:id", controllers.UpdateExhibition)
			exhibitions.DELETE("/:id", controllers.DeleteExhibition)
		}

		// Finance routes
		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}
		fxrates := api.Group("/fxrates")
		{
			fxrates.POST("", controllers.CreateFXRate)
			fxrates.GET("", controllers.GetFXRates)
		}

		// Tag routes
		tags := api.Group("/tags")
		{
			tags.POST("", controllers.CreateTagOption)
			tags.GET("", controllers.GetTagOptions)
			tags.GET("/labels", controllers.GetTagLabels)
			tags.DELETE("/:id", controllers.DeleteTagOption)
		}

		// Data management routes
		data := api.Group("/data")
		{
			data.POST("/import/customers", controllers.ImportCustomers)
			data.POST("/import/samples", controllers.ImportSamples)
			data.GET("/export/customers", controllers.ExportCustomers)
			data.GET("/export/samples", controllers.ExportSamples)
			data.POST("/clear", controllers.ClearDatabase)
		}

		// Report routes
		reportController := controllers.ReportController{}
		api.GET("/reports/overview", reportController.GetOverview)
		api.GET("/reports/samples-by-status", reportController.GetSamplesByStatus)
		api.GET("/reports/customers-by-series", reportController.GetCustomersBySeries)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("", controllers.UpdateSetting)
		}
	}

	return r
}
