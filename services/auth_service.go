package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

type AuthService struct {
	DB       *gorm.DB
	Referral *ReferralService
}

func NewAuthService(db *gorm.DB, referral *ReferralService) *AuthService {
	return &AuthService{DB: db, Referral: referral}
}

// newReferralCode generates a short shareable code from a uuid.
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Register creates a CLIENT account. An optional referral code links the
// referrer (at most once, never to oneself) and records the PENDING signup
// row in the same transaction.
func (s *AuthService) Register(c *fiber.Ctx) error {
	var req struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		ReferralCode string `json:"referral_code"`
		Locale       string `json:"locale"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and email are required"})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be at least 8 characters"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bcrypt error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create account"})
	}

	locale := "en"
	switch req.Locale {
	case "ar", "tr":
		locale = req.Locale
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleClient,
		ReferralCode: newReferralCode(),
		Locale:       locale,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if req.ReferralCode != "" {
			var referrer models.User
			err := tx.Where("referral_code = ?", strings.ToUpper(strings.TrimSpace(req.ReferralCode))).
				First(&referrer).Error
			if err == nil && referrer.ID != user.ID {
				user.ReferredByID = &referrer.ID
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// unknown codes are ignored, signup still succeeds
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if user.ReferredByID != nil {
			if _, err := s.Referral.EnsureReferralSignup(tx, *user.ReferredByID, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
		}
		log.Printf("DB error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create account"})
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		log.Printf("token error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": user})
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		log.Printf("token error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue session"})
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	var user models.User
	if err := s.DB.First(&user, "id = ?", sess.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// magicTokenTTL bounds how long an issued magic login link stays valid.
const magicTokenTTL = 15 * time.Minute

// IssueMagicLogin (staff only) creates a single-use passwordless login
// token for a user. Only the token hash is persisted, as a typed audit
// payload; the raw token is returned once to the caller.
func (s *AuthService) IssueMagicLogin(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	userID := c.Params("user_id")
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	raw, hash, err := utils.NewMagicToken()
	if err != nil {
		log.Printf("failed to generate magic token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
	}

	payload := models.MagicLoginAudit{
		TokenHash: hash,
		ExpiresAt: time.Now().Add(magicTokenTTL),
	}
	if err := models.WriteAudit(s.DB, sess.UserID, models.AuditActionMagicLogin, "user", user.ID, payload); err != nil {
		log.Printf("DB error writing magic token audit: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
	}

	return c.JSON(fiber.Map{
		"token":      raw,
		"user_id":    user.ID,
		"expires_at": payload.ExpiresAt,
	})
}

// ConsumeMagicLogin exchanges a valid, unused magic token for a session.
// A used or expired token fails with a domain conflict error.
func (s *AuthService) ConsumeMagicLogin(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and token are required"})
	}

	var token string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var payload models.MagicLoginAudit
		_, err := models.LatestAudit(tx, models.AuditActionMagicLogin, req.UserID, &payload)
		if err != nil {
			return err
		}
		if payload.TokenHash != utils.HashToken(req.Token) {
			return errForbidden("invalid token")
		}
		if payload.Used {
			return errConflict("token already used")
		}
		if time.Now().After(payload.ExpiresAt) {
			return errConflict("token expired")
		}

		var user models.User
		if err := tx.First(&user, "id = ?", req.UserID).Error; err != nil {
			return err
		}

		payload.Used = true
		if err := models.WriteAudit(tx, user.ID, models.AuditActionMagicLogin, "user", user.ID, payload); err != nil {
			return err
		}

		token, err = utils.GenerateSessionToken(user.ID, user.Role)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no token issued for this user"})
		}
		var ce *conflictError
		if errors.As(err, &ce) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Error()})
		}
		var fe *forbiddenError
		if errors.As(err, &fe) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": fe.Error()})
		}
		log.Printf("DB error consuming magic token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to consume token"})
	}

	return c.JSON(fiber.Map{"token": token})
}
