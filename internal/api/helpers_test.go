package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"vending_system/internal/domain"
	"vending_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "api-test-secret"

// newTestServer builds a router backed by an in-memory SQLite database.
// The cache client is nil, so every read goes straight to the database.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}))

	r := gin.New()
	SetupRouter(r, db, nil, testSecret)
	return r, db
}

// createUser inserts a user directly and returns it with a valid token
func createUser(t *testing.T, db *gorm.DB, username, role string, deposit int) (domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Username: username, Password: string(hash), Role: role, Deposit: deposit}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateJWT(user.ID, role, testSecret)
	require.NoError(t, err)
	return user, token
}

// createProduct inserts a product directly
func createProduct(t *testing.T, db *gorm.DB, name string, cost, stock int, sellerID uint) domain.Product {
	t.Helper()
	product := domain.Product{Name: name, Cost: cost, AmountAvailable: stock, SellerID: sellerID}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response body into a map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
