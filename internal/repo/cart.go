package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ganeshmurthy/product-recommender-system/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem increments the row's quantity, creating the row when it does
// not exist yet. The increment is a single UPDATE expression, so two
// concurrent adds for the same row cannot lose each other's update.
func (r *GormRepo) AddItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(item).Error
		}

		return tx.Create(item).Error
	})
}

// SetQuantity overwrites the row's quantity, deleting the row instead
// when the new quantity is zero or negative. A missing row is
// gorm.ErrRecordNotFound.
func (r *GormRepo) SetQuantity(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		if err := tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(&existing).Error; err != nil {
			return err
		}

		if item.Quantity <= 0 {
			return tx.Delete(&existing).Error
		}

		return tx.Model(&existing).Update("quantity", item.Quantity).Error
	})
}

// RemoveItem deletes the row whatever its quantity. The row is fetched
// first so an absent row reports gorm.ErrRecordNotFound; the delete is
// then verified by rows affected in case the row vanished in between.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error; err != nil {
			return err
		}

		res := tx.Delete(&existing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
