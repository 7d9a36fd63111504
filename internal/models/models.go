package models

// CartItem is one row of a user's cart: how many units of one product
// the user holds. The pair (user_id, product_id) is the primary key, so
// a product appears at most once per cart.
type CartItem struct {
	UserID    string `gorm:"primaryKey;size:64;column:user_id"    json:"user_id"`
	ProductID string `gorm:"primaryKey;size:64;column:product_id" json:"product_id"`
	Quantity  int    `gorm:"not null;check:quantity > 0"          json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
