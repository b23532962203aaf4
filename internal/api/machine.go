package api

import (
	"context"                        // Context for Redis operations
	"errors"                         // Sentinel errors for the buy transaction
	"net/http"                       // HTTP status codes
	"vending_system/internal/domain" // Importing domain models
	"vending_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// DepositRequest carries a single coin to add to the buyer's deposit
type DepositRequest struct {
	Coin int `json:"coin" binding:"required"`
}

// BuyRequest names the product and how many units to buy (default 1)
type BuyRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Amount    *int `json:"amount"`
}

// Outcomes of the buy transaction that map to client errors
var (
	errProductNotFound   = errors.New("product not found")
	errInsufficientStock = errors.New("not enough products available")
	errInsufficientFunds = errors.New("not enough funds")
)

// DepositHandler adds one coin to the authenticated buyer's deposit
func DepositHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req DepositRequest
		if err := c.ShouldBindJSON(&req); err != nil || !utils.ValidCoin(req.Coin) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coin"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := db.Model(&user).Update("deposit", gorm.Expr("deposit + ?", req.Coin)).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"coin":    req.Coin,
				"error":   err.Error(),
			}).Error("Deposit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deposit failed"})
			return
		}
		user.Deposit += req.Coin
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"coin":    req.Coin,
			"deposit": user.Deposit,
		}).Info("Coin deposited")
		_ = utils.DeleteCache(context.Background(), rdb, utils.UserKey(user.ID))
		c.JSON(http.StatusOK, gin.H{"message": "Deposit added", "user": user})
	}
}

// BuyHandler performs the purchase: stock check, funds check, then the debit
// and stock decrement as one transaction. The decrements are guarded by the
// same conditions they were checked against, so two concurrent purchases of
// the last unit cannot both commit.
func BuyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req BuyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		amount := 1 // One unit unless the buyer asks for more
		if req.Amount != nil {
			amount = *req.Amount
		}
		if amount < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be at least 1"})
			return
		}
		var user domain.User
		var product domain.Product
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&user, userID).Error; err != nil {
				return err
			}
			if err := tx.First(&product, req.ProductID).Error; err != nil {
				return errProductNotFound
			}
			if product.AmountAvailable < amount {
				return errInsufficientStock
			}
			total := amount * product.Cost
			if user.Deposit < total {
				return errInsufficientFunds
			}
			// Conditional decrement: zero rows affected means another request
			// took the stock between our read and this write
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND amount_available >= ?", product.ID, amount).
				Update("amount_available", gorm.Expr("amount_available - ?", amount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientStock
			}
			// Same guard on the buyer's deposit
			res = tx.Model(&domain.User{}).
				Where("id = ? AND deposit >= ?", user.ID, total).
				Update("deposit", gorm.Expr("deposit - ?", total))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientFunds
			}
			// Re-read inside the transaction for the response values
			if err := tx.First(&user, user.ID).Error; err != nil {
				return err
			}
			return tx.First(&product, product.ID).Error
		})
		switch {
		case err == nil:
		case errors.Is(err, errProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		case errors.Is(err, errInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough products available"})
			return
		case errors.Is(err, errInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough funds"})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		default:
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,
				"product_id": req.ProductID,
				"amount":     amount,
				"error":      err.Error(),
			}).Error("Purchase failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": product.ID,
			"amount":     amount,
			"spent":      amount * product.Cost,
		}).Info("Purchase completed")
		_ = utils.DeleteCache(context.Background(), rdb,
			utils.UserKey(user.ID), utils.ProductsKey(), utils.ProductKey(product.ID))
		// Change is made from whatever deposit remains after the purchase, so
		// unspent coins come back to the buyer on every purchase
		c.JSON(http.StatusOK, gin.H{
			"message": "Purchase successful",
			"product": product,
			"change":  utils.MakeChange(user.Deposit),
		})
	}
}

// ResetHandler zeroes the authenticated buyer's deposit; safe to repeat
func ResetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := db.Model(&user).Update("deposit", 0).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Deposit reset failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
			return
		}
		user.Deposit = 0
		logrus.WithFields(logrus.Fields{"user_id": userID}).Info("Deposit reset")
		_ = utils.DeleteCache(context.Background(), rdb, utils.UserKey(user.ID))
		c.JSON(http.StatusOK, gin.H{"message": "Deposit reset", "user": user})
	}
}
