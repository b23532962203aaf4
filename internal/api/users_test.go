package api

import (
	"net/http"
	"testing"
	"vending_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListUsers_SellerOnly(t *testing.T) {
	r, db := newTestServer(t)
	_, sellerToken := createUser(t, db, "seller1", domain.RoleSeller, 0)
	_, buyerToken := createUser(t, db, "buyer1", domain.RoleBuyer, 0)

	rec := doJSON(t, r, http.MethodGet, "/users", sellerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/users", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUser_EitherRole(t *testing.T) {
	r, db := newTestServer(t)
	target, _ := createUser(t, db, "frank", domain.RoleBuyer, 25)
	_, buyerToken := createUser(t, db, "buyer2", domain.RoleBuyer, 0)
	_, sellerToken := createUser(t, db, "seller2", domain.RoleSeller, 0)

	for _, token := range []string{buyerToken, sellerToken} {
		rec := doJSON(t, r, http.MethodGet, "/users/1", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(target.ID), body["id"])
		assert.Equal(t, "frank", body["username"])
	}
}

func TestGetUser_NotFound(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createUser(t, db, "grace", domain.RoleBuyer, 0)

	rec := doJSON(t, r, http.MethodGet, "/users/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser_SelfOnly(t *testing.T) {
	r, db := newTestServer(t)
	userA, tokenA := createUser(t, db, "heidi", domain.RoleBuyer, 40)
	userB, _ := createUser(t, db, "ivan", domain.RoleBuyer, 75)

	// A may not delete B, and B must stay exactly as it was
	rec := doJSON(t, r, http.MethodDelete, "/users/2", tokenA, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var check domain.User
	require.NoError(t, db.First(&check, userB.ID).Error)
	assert.Equal(t, 75, check.Deposit)
	assert.Equal(t, "ivan", check.Username)

	// A may delete A
	rec = doJSON(t, r, http.MethodDelete, "/users/1", tokenA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.ErrorIs(t, db.First(&check, userA.ID).Error, gorm.ErrRecordNotFound)
}

func TestDeleteUser_RemovesOwnedProducts(t *testing.T) {
	r, db := newTestServer(t)
	seller, token := createUser(t, db, "judy", domain.RoleSeller, 0)
	createProduct(t, db, "cola", 50, 3, seller.ID)

	rec := doJSON(t, r, http.MethodDelete, "/users/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Where("seller_id = ?", seller.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "a deleted seller must not leave orphaned products")
}

func TestDeleteUser_MissingSelf(t *testing.T) {
	r, db := newTestServer(t)
	user, token := createUser(t, db, "kate", domain.RoleBuyer, 0)
	require.NoError(t, db.Delete(&domain.User{}, user.ID).Error)

	rec := doJSON(t, r, http.MethodDelete, "/users/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
