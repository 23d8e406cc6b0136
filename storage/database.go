package storage

import (
	"log"
	"os"

	"github.com/Dexter-Mtetwa/find-my-property/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Load the .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Get the database URL
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Panic("DATABASE_URL is not set in the environment variables")
	}

	// Connect to the database
	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if dbError != nil {
		log.Printf("[error] failed to initialize database, got error %v", dbError)
		log.Panic("Error connecting to the database")
	}

	// Assign the db to the global variable
	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	// Perform database migrations
	db.AutoMigrate(
		&models.Profile{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyView{},
		&models.Like{},
		&models.Request{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
