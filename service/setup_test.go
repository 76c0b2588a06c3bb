package service

import (
	"testing"

	"campus-voting-backend/database"
	"campus-voting-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB points the global connection at a fresh in-memory SQLite
// database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	database.DB = db
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	for _, m := range []interface{}{
		&models.Vote{}, &models.Candidate{}, &models.Election{},
		&models.PasswordOTP{}, &models.LoginLog{}, &models.Student{}, &models.Admin{},
	} {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
