package api

import (
	"context"                        // Context for Redis operations
	"net/http"                       // HTTP status codes
	"strconv"                        // Path parameter parsing
	"vending_system/internal/domain" // Importing domain models
	"vending_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ListUsersHandler returns all users (sellers only)
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GetUserHandler returns a single user by ID
func GetUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		ctx := context.Background()
		cacheKey := utils.UserKey(uint(id))
		var user domain.User
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &user); err == nil && found {
			c.JSON(http.StatusOK, user)
			return
		}
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, user)
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler deletes the authenticated user's own account.
// The self check runs before any lookup so another user's row is never touched.
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if uint(id) != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user"})
			return
		}
		var user domain.User
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Remove the account and any products it listed in one transaction,
		// so no product is ever left without an owner
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("seller_id = ?", user.ID).Delete(&domain.Product{}).Error; err != nil {
				return err
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("User deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.UserKey(user.ID), utils.ProductsKey())
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
