package Models

import (
	"log"

	"Compass/Config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the sqlite database and runs migrations. Config.Load must
// have run first so the database path is known.
func Connect() {
	path := "database.db"
	if Config.Current != nil && Config.Current.DatabasePath != "" {
		path = Config.Current.DatabasePath
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Println(err)
		return
	}
	DB = connection

	if err := DB.AutoMigrate(&RouteLog{}); err != nil {
		log.Printf("Error migrating route logs: %v", err)
	}
}
