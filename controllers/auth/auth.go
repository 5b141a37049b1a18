package authController

import (
	"errors"
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	confirmEmailPurpose  = "CONFIRM_EMAIL"
	resetPasswordPurpose = "RESET_PASSWORD"
)

// Signup registers a new account. The account stays unconfirmed until the
// emailed code is redeemed; the response tells the caller to check their
// inbox rather than treating signup as an immediate login.
func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up user!", nil)
	}

	code := utils.GenerateOTP()
	verification := models.VerificationCode{
		Email:     newUser.Email,
		Code:      code,
		Purpose:   confirmEmailPurpose,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&verification).Error; err != nil {
		log.Printf("Error saving verification code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up user!", nil)
	}

	go func(user models.User, code string) {
		if err := utils.SendConfirmationEmail(user.Email, user.Name, code); err != nil {
			log.Printf("Error sending confirmation email: %v", err)
		}
		utils.SyncUserToCRM(user.Name, user.Email)
	}(newUser, code)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Account created. Check your email for a confirmation code.", fiber.Map{
		"id":    newUser.ID,
		"name":  newUser.Name,
		"email": newUser.Email,
	})
}

// ConfirmEmail redeems the signup confirmation code.
func ConfirmEmail(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedConfirmEmail").(*authValidator.ConfirmEmailRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	if user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Email already confirmed.", nil)
	}

	var verification models.VerificationCode
	err := db.Where("email = ? AND code = ? AND purpose = ? AND used = ?",
		reqData.Email, reqData.Code, confirmEmailPurpose, false).
		Order("created_at desc").First(&verification).Error
	if err != nil || time.Now().After(verification.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired confirmation code!", nil)
	}

	tx := db.Begin()
	verification.Used = true
	if err := tx.Save(&verification).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm email!", nil)
	}
	if err := tx.Model(&user).Update("is_email_verified", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm email!", nil)
	}
	tx.Commit()

	go func(user models.User) {
		if err := utils.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}(user)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email confirmed. You can now log in.", nil)
}

// Login authenticates with email and password and returns a bearer token.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not confirmed. Check your inbox for the confirmation code.", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	now := time.Now()
	db.Model(&user).Update("last_login", now)
	db.Create(&models.LoginHistory{
		UserID:    user.ID,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		LoginTime: now,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"is_admin": user.IsAdmin(),
		},
	})
}

// Session returns the current authenticated user and derived admin flag.
func Session(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session fetched successfully!", fiber.Map{
		"user":     user,
		"is_admin": user.IsAdmin(),
	})
}

// ForgotPassword mails a reset code. The response does not reveal whether
// the address has an account.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err == nil {
		code := utils.GenerateOTP()
		verification := models.VerificationCode{
			Email:     user.Email,
			Code:      code,
			Purpose:   resetPasswordPurpose,
			ExpiresAt: time.Now().Add(15 * time.Minute),
		}
		if err := db.Create(&verification).Error; err != nil {
			log.Printf("Error saving reset code: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		go func(user models.User, code string) {
			if err := utils.SendPasswordResetEmail(user.Email, user.Name, code); err != nil {
				log.Printf("Error sending reset email: %v", err)
			}
		}(user, code)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If the email is registered, a reset code has been sent.", nil)
}

// ResetPassword redeems a reset code and stores the new password.
func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired reset code!", nil)
	}

	var verification models.VerificationCode
	err := db.Where("email = ? AND code = ? AND purpose = ? AND used = ?",
		reqData.Email, reqData.Code, resetPasswordPurpose, false).
		Order("created_at desc").First(&verification).Error
	if err != nil || time.Now().After(verification.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired reset code!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	tx := db.Begin()
	verification.Used = true
	if err := tx.Save(&verification).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}
	if err := tx.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}

// ChangePassword updates the password of the authenticated user.
func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedChangePassword").(*authValidator.ChangePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully!", nil)
}
