package handlers

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"shelfmind_backend/models"
	"shelfmind_backend/utils"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateRegistration mirrors the account rules the dashboards rely
// on: real-looking email, password with at least one letter and one
// digit, trimmed name, known role, non-empty store assignment.
func validateRegistration(req *RegisterRequest) string {
	if !emailPattern.MatchString(req.Email) {
		return "A valid email address is required"
	}
	if len(req.Password) < 6 {
		return "Password must be at least 6 characters long"
	}
	hasLetter, hasDigit := false, false
	for _, r := range req.Password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasDigit {
		return "Password must contain at least one digit"
	}
	if !hasLetter {
		return "Password must contain at least one letter"
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		return "Name must be at least 2 characters long"
	}
	if len(req.Name) > 100 {
		return "Name must be less than 100 characters"
	}
	if !models.ValidRole(req.Role) {
		return `Role must be either "associate" or "manager"`
	}
	req.StoreID = strings.TrimSpace(req.StoreID)
	if req.StoreID == "" {
		return "Store ID is required"
	}
	req.StoreName = strings.TrimSpace(req.StoreName)
	if len(req.StoreName) < 2 {
		return "Store name must be at least 2 characters long"
	}
	return ""
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	if msg := validateRegistration(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": msg})
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Email already registered"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Could not hash password"})
	}

	user := models.User{
		ID:        req.Role + "-" + uuid.New().String()[:8],
		Email:     req.Email,
		Password:  hashedPassword,
		Name:      req.Name,
		Role:      req.Role,
		StoreID:   req.StoreID,
		StoreName: req.StoreName,
		IsActive:  true,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to create user account"})
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Could not create access token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "User account created successfully for " + user.Role,
		"user":         user,
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	unauthorized := func() error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Incorrect email, password, or role",
		})
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return unauthorized()
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return unauthorized()
	}
	if user.Role != req.Role {
		return unauthorized()
	}
	if !user.IsActive {
		return unauthorized()
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Could not create access token"})
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Validate - GET /api/auth/validate
// Confirms the Bearer token and returns the account it belongs to.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Could not validate credentials"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Inactive user"})
	}

	return c.JSON(user)
}

// Roles - GET /api/auth/roles
func (h *AuthHandler) Roles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"roles": []fiber.Map{
			{
				"value":       models.RoleAssociate,
				"label":       "Store Associate",
				"description": "Handles day-to-day shelf monitoring and restocking tasks",
			},
			{
				"value":       models.RoleManager,
				"label":       "Store Manager",
				"description": "Oversees store operations and manages associates",
			},
		},
	})
}
