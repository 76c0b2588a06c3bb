package routes

import (
	"log"
	"net/http"
	"os"
	"time"

	"campus-voting-backend/handlers"
	"campus-voting-backend/middleware"
	"campus-voting-backend/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server wraps the HTTP server.
type Server struct {
	*http.Server
}

// SetupRouter configures the Gin router with all API routes.
func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // restrict to the frontend domain in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(requestIDMiddleware())

	handlers.InitRateLimiters()

	go startOTPSweeper()

	api := router.Group("/api")
	{
		api.Use(handlers.RateLimitMiddleware())

		api.GET("/health", handlers.HealthCheck)
		api.GET("/status", handlers.SystemStatus)

		// Admin authentication and management
		api.POST("/admin/login", handlers.AdminLogin)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/login-logs", handlers.GetLoginLogs)
			admin.GET("/students", handlers.GetStudents)
			admin.GET("/ratelimit/stats", handlers.GetRateLimiterStats)

			admin.POST("/elections", handlers.CreateElection)
			admin.PUT("/elections/:id", handlers.UpdateElection)
			admin.PUT("/elections/:id/status", handlers.UpdateElectionStatus)
			admin.DELETE("/elections/:id", handlers.DeleteElection)

			admin.POST("/candidates", handlers.CreateCandidate)
			admin.DELETE("/candidates/:id", handlers.DeleteCandidate)
		}

		// Student account flows
		student := api.Group("/student")
		{
			student.POST("/register", handlers.StudentRegister)
			student.POST("/login", handlers.StudentLogin)
			student.POST("/forgot-password", handlers.ForgotPassword)
			student.POST("/verify-otp", handlers.VerifyOTP)
			student.POST("/reset-password", handlers.ResetPassword)
		}

		// Public election and candidate reads
		api.GET("/elections", handlers.GetElections)
		api.GET("/elections/:id", handlers.GetElection)
		api.GET("/elections/:id/results", handlers.GetElectionResults)
		api.GET("/candidates", handlers.GetCandidates)
		api.GET("/candidates/election/:id", handlers.GetCandidatesByElection)

		// Vote ledger
		api.POST("/vote", handlers.SubmitVote)
		api.GET("/vote/status/:electionId/:studentId", handlers.GetVoteStatus)
		api.GET("/vote/student/:studentId", handlers.GetStudentVotes)
		api.DELETE("/vote/:voteId", handlers.DeleteVote)
	}

	return router
}

// StartServer starts the HTTP server in a goroutine.
func StartServer(router *gin.Engine) *Server {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8090"
	}
	addr := ":" + port

	srv := &Server{
		&http.Server{
			Addr:    addr,
			Handler: router,
		},
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	return srv
}

// requestIDMiddleware tags each request with a correlation id for logs
// and responses.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// startOTPSweeper periodically reaps expired password-reset codes.
// Lookups already ignore expired rows, so the sweep is garbage
// collection, not correctness.
func startOTPSweeper() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		service.SweepExpiredOTPs()
	}
}
