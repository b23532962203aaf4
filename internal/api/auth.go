package api

import (
	"net/http"                       // HTTP status codes
	"vending_system/internal/domain" // Importing domain models
	"vending_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the body for the registration endpoint
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Role     string `json:"role"`                        // Optional role, defaults to buyer
}

// LoginRequest is the body for the login endpoint
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		role := req.Role
		if role == "" {
			role = domain.RoleBuyer // Default role
		}
		if !domain.ValidRole(role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be buyer or seller"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Usernames are stored exactly as given; uniqueness is case-sensitive
		user := domain.User{Username: req.Username, Password: string(hash), Role: role}
		if err := db.Create(&user).Error; err != nil {
			// Unique constraint on username makes duplicates fail here
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is already taken"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User created"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		var user domain.User
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			// Same message whether the user is unknown or the password is wrong
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged in", "user": user, "token": token})
	}
}
