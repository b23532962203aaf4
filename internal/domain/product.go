package domain

// Product Model
type Product struct {
	ID              uint   `gorm:"primaryKey" json:"id"`             // Primary key
	Name            string `gorm:"index" json:"name"`                // Product name
	AmountAvailable int    `gorm:"not null" json:"amount_available"` // Units in stock, never negative
	Cost            int    `gorm:"not null" json:"cost"`             // Unit cost in the smallest coin unit
	SellerID        uint   `gorm:"not null" json:"seller_id"`        // Foreign key to the owning seller
}
