package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"campus-voting-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database connection.
var DB *gorm.DB

// InitDB connects to MySQL, migrates the schema and seeds the admin account.
func InitDB() error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	dbUser := getEnv("DB_USER", "voteuser")
	dbPassword := getEnv("DB_PASSWORD", "votepassword")
	dbHost := getEnv("DB_HOST", "mysql")
	dbPort := getEnv("DB_PORT", "3306")
	dbName := getEnv("DB_NAME", "votingdb")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
		// Needed so unique-index violations surface as gorm.ErrDuplicatedKey;
		// the vote ledger depends on that to detect double submits.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("failed to migrate models: %v", err)
	}

	if err := SeedAdmin(DB); err != nil {
		return fmt.Errorf("failed to seed admin account: %v", err)
	}

	log.Println("database connected and migrated")
	return nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.LoginLog{},
		&models.Election{},
		&models.Candidate{},
		&models.Vote{},
		&models.PasswordOTP{},
	)
}

// SeedAdmin creates the default administrator account if none exists.
func SeedAdmin(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "admin@nec.edu")

	var count int64
	if err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := getEnv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{Email: email, Password: string(hash), Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("default admin account created: %s", email)
	return nil
}

// CloseDB closes the underlying connection pool.
func CloseDB() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("failed to get database handle: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("failed to close database: %v", err)
		return
	}
	log.Println("database connection closed")
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
