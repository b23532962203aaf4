package domain

// User Model
type User struct {
	ID       uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Username string    `gorm:"unique;not null" json:"username"`   // Unique username (case-sensitive)
	Password string    `gorm:"not null" json:"-"`                 // Hashed password, never serialized
	Deposit  int       `gorm:"not null;default:0" json:"deposit"` // Coin balance in the smallest coin unit
	Role     string    `gorm:"default:buyer" json:"role"`         // Role: buyer or seller
	Products []Product `gorm:"foreignKey:SellerID" json:"-"`      // Products listed by this user (sellers only)
}

// Roles a user can hold
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// ValidRole reports whether role is one of the accepted roles
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}
