// handlers/auth.go
package handlers

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"uplife/database"
	"uplife/models"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type GuestLoginRequest struct {
	GuestName string `json:"guest_name,omitempty"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	User    UserInfo `json:"user,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type UserInfo struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsGuest      bool      `json:"is_guest"`
	ReferralCode string    `json:"referral_code"`
	CreatedAt    time.Time `json:"created_at"`
}

// GuestLogin creates a new guest session
func GuestLogin(c *fiber.Ctx) error {
	var req GuestLoginRequest
	_ = c.BodyParser(&req)

	db := database.GetDB()

	guestName := req.GuestName
	if guestName == "" {
		guestName = fmt.Sprintf("Guest_%s", uuid.New().String()[:8])
	}
	guestEmail := fmt.Sprintf("guest_%s@uplife.local", uuid.New().String()[:8])

	user := models.User{
		Username:     guestName,
		Email:        &guestEmail,
		Password:     "",
		IsGuest:      true,
		ReferralCode: newReferralCode(),
		CreatedAt:    time.Now(),
		LastLogin:    time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create guest account"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: userInfo(user)})
}

// Register creates a new account, optionally linked to a referrer
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Username must be at least 3 characters"})
	}
	if len(req.Password) < 8 {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Password must be at least 8 characters"})
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{Success: false, Error: "Username already taken"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to hash password"})
	}

	user := models.User{
		Username:     req.Username,
		Password:     string(hashed),
		ReferralCode: newReferralCode(),
		CreatedAt:    time.Now(),
		LastLogin:    time.Now(),
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	// Resolve the referral code before creating the user so the link
	// can be recorded in the same request.
	var referrer *models.User
	if req.ReferralCode != "" {
		var found models.User
		if err := db.Where("referral_code = ?", strings.ToUpper(req.ReferralCode)).First(&found).Error; err == nil {
			referrer = &found
			user.ReferredBy = &found.ID
		}
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
	}

	if referrer != nil {
		recordReferral(referrer, &user, req.ReferralCode)
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.Status(201).JSON(AuthResponse{Success: true, Token: token, User: userInfo(user)})
}

// Login authenticates a registered user
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Username and password are required"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid credentials"})
	}

	if user.IsBanned {
		return c.Status(403).JSON(AuthResponse{Success: false, Error: "Account is banned"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid credentials"})
	}

	db.Model(&user).UpdateColumn("last_login", time.Now().UTC())

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: userInfo(user)})
}

// recordReferral links the new user to their referrer and credits the
// referrer's welcome bonus. Failures are logged, never surfaced to the
// registering user.
func recordReferral(referrer, referred *models.User, codeUsed string) {
	db := database.GetDB()

	referral := models.Referral{
		ReferrerID: referrer.ID,
		ReferredID: referred.ID,
		CodeUsed:   strings.ToUpper(codeUsed),
	}
	if err := db.Create(&referral).Error; err != nil {
		log.Printf("Failed to record referral %d -> %d: %v", referrer.ID, referred.ID, err)
		return
	}

	if err := services.GetStarService().Grant(referrer.ID, 1, "referral", fmt.Sprintf("Invited %s", referred.Username)); err != nil {
		log.Printf("Failed to grant referral star to user %d: %v", referrer.ID, err)
		return
	}
	if _, err := services.GetProgressionService().GrantXPFor(referrer.ID, services.XPSourceStar); err != nil {
		log.Printf("Failed to grant referral XP to user %d: %v", referrer.ID, err)
	}
}

func newReferralCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

func userInfo(user models.User) UserInfo {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return UserInfo{
		ID:           user.ID,
		Username:     user.Username,
		Email:        email,
		IsGuest:      user.IsGuest,
		ReferralCode: user.ReferralCode,
		CreatedAt:    user.CreatedAt,
	}
}

func generateToken(user models.User) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "uplife-secret-change-in-production"
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_guest": user.IsGuest,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
