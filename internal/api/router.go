package api

import (
	"vending_system/internal/domain"     // Role constants
	"vending_system/internal/middleware" // Auth middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// SetupRouter registers every route on a gin engine. rdb may be nil to run
// without the cache.
func SetupRouter(r *gin.Engine, db *gorm.DB, rdb *redis.Client, jwtSecret string) {
	buyer := middleware.AuthRequired(jwtSecret, domain.RoleBuyer)
	seller := middleware.AuthRequired(jwtSecret, domain.RoleSeller)
	anyRole := middleware.AuthRequired(jwtSecret, domain.RoleBuyer, domain.RoleSeller)

	// Auth routes
	r.POST("/register", RegisterHandler(db))
	r.POST("/login", LoginHandler(db, jwtSecret))

	// User routes
	r.GET("/users", seller, ListUsersHandler(db))
	r.GET("/users/:id", anyRole, GetUserHandler(db, rdb))
	r.DELETE("/users/:id", anyRole, DeleteUserHandler(db, rdb))

	// Product routes; reads are public
	r.GET("/products", ListProductsHandler(db, rdb))
	r.GET("/products/:id", GetProductHandler(db, rdb))
	r.POST("/products", seller, CreateProductHandler(db, rdb))
	r.PUT("/products/:id", seller, UpdateProductHandler(db, rdb))
	r.DELETE("/products/:id", seller, DeleteProductHandler(db, rdb))

	// Vending routes (buyers only)
	r.POST("/deposit", buyer, DepositHandler(db, rdb))
	r.POST("/buy", buyer, BuyHandler(db, rdb))
	r.POST("/reset", buyer, ResetHandler(db, rdb))
}
