package database

import (
	"log"

	"github.com/Bhargavvz/todoapp/models"

	"gorm.io/gorm"
)

// RunMigrations creates the todos table and its category, priority and due date indexes.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(&models.Todo{}); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
