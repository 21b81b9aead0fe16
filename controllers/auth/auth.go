package authController

import (
	"log"
	"time"

	"donasi/config"
	"donasi/middleware"
	"donasi/models"
	authValidator "donasi/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Controller handles admin authentication and profile management.
type Controller struct {
	DB *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// Login authenticates by username or phone number and issues a JWT
func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	err := ctl.DB.
		Where("username = ? OR phone_number = ?", reqData.Identifier, reqData.Identifier).
		First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Username atau nomor telepon tidak ditemukan", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Password salah", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to process login", nil)
	}

	now := time.Now()
	user.LastLogin = &now
	ctl.DB.Save(&user)

	return middleware.JsonResponse(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the logged-in admin
func (ctl *Controller) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := ctl.DB.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User tidak ditemukan", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Profile retrieved", user)
}

// UpdateProfile updates the admin's username and/or phone number
func (ctl *Controller) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedProfile").(*authValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := ctl.DB.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User tidak ditemukan", nil)
	}

	if reqData.Username != "" {
		// Reject a username already taken by another account
		var existing models.User
		if err := ctl.DB.Where("username = ? AND id <> ?", reqData.Username, userID).
			First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Username is already taken!", nil)
		}
		user.Username = reqData.Username
	}
	if reqData.PhoneNumber != "" {
		user.PhoneNumber = reqData.PhoneNumber
	}

	if err := ctl.DB.Save(&user).Error; err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update profile", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Profile updated", user)
}

// UpdatePassword changes the admin's password after verifying the current one
func (ctl *Controller) UpdatePassword(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedPassword").(*authValidator.UpdatePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := ctl.DB.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User tidak ditemukan", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Password saat ini salah", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update password", nil)
	}

	user.Password = string(hashed)
	if err := ctl.DB.Save(&user).Error; err != nil {
		log.Printf("Error updating password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update password", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Password updated", nil)
}
