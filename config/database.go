package config

import (
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the embedded sqlite file by default (the local store of a
// single-user install). Set DB_DRIVER=postgres and DB_URL to run against a
// server instead.
func ConnectDB() {
	var dialector gorm.Dialector
	if os.Getenv("DB_DRIVER") == "postgres" {
		dialector = postgres.Open(os.Getenv("DB_URL"))
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "crm-master.db"
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}
