package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"campus-voting-backend/database"
	"campus-voting-backend/middleware"
	"campus-voting-backend/models"
	"campus-voting-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginInput defines the admin credential payload.
type AdminLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles POST /api/admin/login.
func AdminLogin(c *gin.Context) {
	var input AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var admin models.Admin
	if err := database.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	logLogin(c, admin.Email, "", "admin")

	token, err := middleware.IssueToken(jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  "admin",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"role":  "admin",
		},
	})
}

// StudentRegisterInput defines the registration payload.
type StudentRegisterInput struct {
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	StudentID  string `json:"studentId" binding:"required"`
	Department string `json:"department" binding:"required"`
	Year       string `json:"year" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

// StudentRegister handles POST /api/student/register.
func StudentRegister(c *gin.Context) {
	var input StudentRegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	var existing int64
	database.DB.Model(&models.Student{}).
		Where("email = ? OR student_id = ?", input.Email, input.StudentID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Student already registered with this email or student ID"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	student := models.Student{
		FullName:     input.FullName,
		Email:        input.Email,
		StudentID:    input.StudentID,
		Department:   input.Department,
		Year:         input.Year,
		Password:     string(hash),
		IsRegistered: true,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		log.Printf("student registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"student": student,
	})
}

// StudentLoginInput defines the student credential payload.
type StudentLoginInput struct {
	Email     string `json:"email" binding:"required,email"`
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// StudentLogin handles POST /api/student/login.
func StudentLogin(c *gin.Context) {
	var input StudentLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, student ID, and password are required"})
		return
	}

	var student models.Student
	err := database.DB.Where("email = ? AND student_id = ?", input.Email, input.StudentID).
		First(&student).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials. Please register first if you haven't already."})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	logLogin(c, student.Email, student.StudentID, "student")

	token, err := middleware.IssueToken(jwt.MapClaims{
		"id":        student.ID,
		"email":     student.Email,
		"studentId": student.StudentID,
		"role":      "student",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    student,
	})
}

// ForgotPasswordInput carries the reset request email.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /api/student/forgot-password.
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := service.RequestPasswordReset(input.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent successfully to your email address",
		"email":   maskEmail(input.Email),
	})
}

// VerifyOTPInput carries an email/code pair for verification.
type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP handles POST /api/student/verify-otp.
func VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and OTP are required"})
		return
	}

	if err := service.VerifyOTP(input.Email, input.OTP); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "OTP verified successfully",
		"verified": true,
	})
}

// ResetPasswordInput carries the final step of the reset flow.
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword handles POST /api/student/reset-password.
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, OTP, and new password are required"})
		return
	}

	if err := service.ResetPassword(input.Email, input.OTP, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully",
		"success": true,
	})
}

// GetLoginLogs handles GET /api/admin/login-logs, latest 100 entries.
func GetLoginLogs(c *gin.Context) {
	var logs []models.LoginLog
	err := database.DB.Order("login_time desc").Limit(100).Find(&logs).Error
	if err != nil {
		log.Printf("failed to fetch login logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetStudents handles GET /api/admin/students, newest first. Password
// hashes never serialize (json:"-" on the model).
func GetStudents(c *gin.Context) {
	var students []models.Student
	err := database.DB.Order("created_at desc").Find(&students).Error
	if err != nil {
		log.Printf("failed to fetch students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// logLogin records a successful login; a logging failure never blocks
// the login itself.
func logLogin(c *gin.Context, email, studentID, userType string) {
	entry := models.LoginLog{
		Email:     email,
		StudentID: studentID,
		UserType:  userType,
		LoginTime: time.Now(),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("failed to record login attempt: %v", err)
	}
}

// maskEmail hides the middle of the local part: "student@x.edu" becomes
// "st****t@x.edu".
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 3 {
		return email
	}
	return email[:2] + strings.Repeat("*", at-3) + email[at-1:]
}
