package migration

import (
	"Recipe-Finder/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.StoreRecord{}); err != nil {
		log.Fatalf("Error migrating store records table: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
