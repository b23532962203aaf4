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

// CreateProductRequest is the body for creating a product.
// AmountAvailable is a pointer so an explicit zero passes validation.
type CreateProductRequest struct {
	Name            string `json:"name" binding:"required"`
	Cost            int    `json:"cost" binding:"required,gt=0"`
	AmountAvailable *int   `json:"amount_available" binding:"required,gte=0"`
}

// UpdateProductRequest is the body for updating a product; absent fields
// keep their current values
type UpdateProductRequest struct {
	Name            *string `json:"name"`
	Cost            *int    `json:"cost" binding:"omitempty,gt=0"`
	AmountAvailable *int    `json:"amount_available" binding:"omitempty,gte=0"`
}

// ListProductsHandler returns all products (public)
func ListProductsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var products []domain.Product
		if found, err := utils.GetCache(ctx, rdb, utils.ProductsKey(), &products); err == nil && found {
			c.JSON(http.StatusOK, products)
			return
		}
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.ProductsKey(), products)
		c.JSON(http.StatusOK, products)
	}
}

// GetProductHandler returns a single product by ID (public)
func GetProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		ctx := context.Background()
		cacheKey := utils.ProductKey(uint(id))
		var product domain.Product
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &product); err == nil && found {
			c.JSON(http.StatusOK, product)
			return
		}
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, product)
		c.JSON(http.StatusOK, product)
	}
}

// CreateProductHandler lists a new product owned by the authenticated seller.
// The owner always comes from the token, never from the request body.
func CreateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, positive cost and non-negative amount_available are required"})
			return
		}
		product := domain.Product{
			Name:            req.Name,
			Cost:            req.Cost,
			AmountAvailable: *req.AmountAvailable,
			SellerID:        sellerID,
		}
		if err := db.Create(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{"seller_id": sellerID, "error": err.Error()}).Error("Product creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProductsKey())
		c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
	}
}

// UpdateProductHandler updates a product owned by the authenticated seller
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		var product domain.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.SellerID != sellerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another seller's product"})
			return
		}
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Cost != nil {
			product.Cost = *req.Cost
		}
		if req.AmountAvailable != nil {
			product.AmountAvailable = *req.AmountAvailable
		}
		if err := db.Save(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{"product_id": product.ID, "error": err.Error()}).Error("Product update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProductsKey(), utils.ProductKey(product.ID))
		c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
	}
}

// DeleteProductHandler removes a product owned by the authenticated seller
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, exists := currentUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		var product domain.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.SellerID != sellerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another seller's product"})
			return
		}
		if err := db.Delete(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{"product_id": product.ID, "error": err.Error()}).Error("Product deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProductsKey(), utils.ProductKey(product.ID))
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
