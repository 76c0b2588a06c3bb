package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"campus-voting-backend/database"
	"campus-voting-backend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestEnvironment sets up the Gin router and in-memory SQLite
// database for testing. Admin routes are mounted without the JWT
// middleware; the middleware has its own tests.
func SetupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	testing.Init()
	gin.SetMode(gin.TestMode)
	os.Setenv("EMAIL_MOCK", "true")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Same setting as production: unique-index violations must
		// surface as gorm.ErrDuplicatedKey for the vote ledger.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to in-memory database: %v", err)
	}

	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := database.DB.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(config))

	api := router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.POST("/admin/login", AdminLogin)
		api.GET("/admin/login-logs", GetLoginLogs)
		api.GET("/admin/students", GetStudents)
		api.POST("/admin/elections", CreateElection)
		api.PUT("/admin/elections/:id", UpdateElection)
		api.PUT("/admin/elections/:id/status", UpdateElectionStatus)
		api.DELETE("/admin/elections/:id", DeleteElection)
		api.POST("/admin/candidates", CreateCandidate)
		api.DELETE("/admin/candidates/:id", DeleteCandidate)

		api.POST("/student/register", StudentRegister)
		api.POST("/student/login", StudentLogin)
		api.POST("/student/forgot-password", ForgotPassword)
		api.POST("/student/verify-otp", VerifyOTP)
		api.POST("/student/reset-password", ResetPassword)

		api.GET("/elections", GetElections)
		api.GET("/elections/:id", GetElection)
		api.GET("/elections/:id/results", GetElectionResults)
		api.GET("/candidates", GetCandidates)
		api.GET("/candidates/election/:id", GetCandidatesByElection)

		api.POST("/vote", SubmitVote)
		api.GET("/vote/status/:electionId/:studentId", GetVoteStatus)
		api.GET("/vote/student/:studentId", GetStudentVotes)
		api.DELETE("/vote/:voteId", DeleteVote)
	}

	return router, db
}

// ClearTables empties all tables between tests. Order matters because
// of foreign key relationships.
func ClearTables(db *gorm.DB) {
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Vote{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Candidate{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Election{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.PasswordOTP{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LoginLog{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Student{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Admin{})
}

// itoa formats a record id for building request paths.
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// doJSON performs a JSON request against the test router.
func doJSON(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// createTestElection stores an election with the given window.
func createTestElection(db *gorm.DB, start, end time.Time) models.Election {
	election := models.Election{
		Title:       "Student Council 2026",
		Description: "Annual student council election",
		StartTime:   start,
		EndTime:     end,
		CreatedBy:   "admin@nec.edu",
	}
	db.Create(&election)
	return election
}

// createTestCandidate stores a candidate under an election.
func createTestCandidate(db *gorm.DB, electionID uint, name string) models.Candidate {
	candidate := models.Candidate{
		Name:       name,
		Position:   "President",
		ElectionID: electionID,
		Department: "CSE",
	}
	db.Create(&candidate)
	return candidate
}
