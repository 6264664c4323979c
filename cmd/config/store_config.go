package config

import (
	migration "Recipe-Finder/cmd/database/migrate"
	"Recipe-Finder/internal/utils"
	"Recipe-Finder/pkg/store"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectStore picks the document store backend. A configured Firebase
// database URL wins; otherwise the Postgres fallback keeps the same key-path
// semantics on a single records table.
func ConnectStore() (store.Store, error) {
	if databaseURL := utils.GetConfig("FIREBASE_DATABASE_URL"); databaseURL != "" {
		return store.NewFirebaseStore(databaseURL, utils.GetConfig("FIREBASE_AUTH_SECRET")), nil
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, err
	}
	return store.NewGormStore(db), nil
}
