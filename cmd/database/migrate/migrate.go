package migration

import (
	"Taxflow-Backend/entities"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Document{}); err != nil {
		log.Fatalf("Error migrating document database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.AccountingTransaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.TaskItem{}); err != nil {
		log.Fatalf("Error migrating task database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StorageLocation{}); err != nil {
		log.Fatalf("Error migrating storage location database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.AnalysisRule{}); err != nil {
		log.Fatalf("Error migrating analysis rule database: %v", err)
		return err
	}

	if err := seedDemoUser(db); err != nil {
		return err
	}
	if err := seedStorageLocations(db); err != nil {
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

func seedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&entities.User{
		Email:    "demo@taxflow.local",
		Password: string(hash),
		Name:     "Demo User",
		Role:     "user",
	}).Error
}

func seedStorageLocations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.StorageLocation{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	locations := []entities.StorageLocation{
		{Label: "Digital archive", Type: entities.StorageTypeDigital, IsDefault: true},
		{Label: "Paper folder", Type: entities.StorageTypePhysical},
		{Label: "lexoffice", Type: entities.StorageTypeLexoffice},
	}
	for _, location := range locations {
		if err := db.Create(&location).Error; err != nil {
			return err
		}
	}
	return nil
}
