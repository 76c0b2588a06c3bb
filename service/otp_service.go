package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"campus-voting-backend/database"
	"campus-voting-backend/mailer"
	"campus-voting-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpPurpose = "forgot-password"

// RequestPasswordReset generates a fresh OTP for the student's email,
// invalidating any previous codes, and mails it. A mail failure is
// reported to the caller; the flow never pretends a code was delivered.
func RequestPasswordReset(email string) error {
	if email == "" {
		return validationf("email is required")
	}

	var student models.Student
	if err := database.DB.Where("email = ?", email).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("account with this email address")
		}
		return upstream("get student", err)
	}

	code, err := generateOTP()
	if err != nil {
		return upstream("generate otp", err)
	}

	// At most one live code per (email, purpose): a new request
	// invalidates all prior ones.
	err = database.DB.Where("email = ? AND purpose = ?", email, otpPurpose).
		Delete(&models.PasswordOTP{}).Error
	if err != nil {
		return upstream("invalidate previous otp", err)
	}

	record := models.PasswordOTP{
		Email:     email,
		Code:      code,
		Purpose:   otpPurpose,
		CreatedAt: time.Now(),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return upstream("store otp", err)
	}

	if err := mailer.SendOTPEmail(email, code); err != nil {
		return upstream("send otp email", err)
	}
	return nil
}

// VerifyOTP checks that a live (unexpired) code exists for the email.
func VerifyOTP(email, code string) error {
	if email == "" || code == "" {
		return validationf("email and OTP are required")
	}
	if _, err := liveOTP(email, code); err != nil {
		return err
	}
	return nil
}

// ResetPassword re-verifies the OTP, updates the student's password hash
// and consumes the code so it cannot be replayed.
func ResetPassword(email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return validationf("email, OTP, and new password are required")
	}
	if len(newPassword) < 6 {
		return validationf("password must be at least 6 characters long")
	}

	record, err := liveOTP(email, code)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return upstream("hash password", err)
	}

	result := database.DB.Model(&models.Student{}).
		Where("email = ?", email).Update("password", string(hash))
	if result.Error != nil {
		return upstream("update password", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("student")
	}

	if err := database.DB.Delete(&models.PasswordOTP{}, record.ID).Error; err != nil {
		return upstream("consume otp", err)
	}
	return nil
}

// SweepExpiredOTPs deletes codes past their validity window. Lookups
// already ignore expired rows; the sweep just keeps the table small.
func SweepExpiredOTPs() {
	cutoff := models.ExpiredBefore(time.Now())
	result := database.DB.Where("created_at < ?", cutoff).Delete(&models.PasswordOTP{})
	if result.Error != nil {
		log.Printf("failed to sweep expired otps: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("swept %d expired otp records", result.RowsAffected)
	}
}

// liveOTP finds an unexpired code for the email. Expired rows are
// treated as nonexistent regardless of whether the sweeper has run.
func liveOTP(email, code string) (*models.PasswordOTP, error) {
	var record models.PasswordOTP
	err := database.DB.
		Where("email = ? AND code = ? AND purpose = ? AND created_at >= ?",
			email, code, otpPurpose, models.ExpiredBefore(time.Now())).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("invalid or expired OTP")
		}
		return nil, upstream("get otp", err)
	}
	return &record, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
