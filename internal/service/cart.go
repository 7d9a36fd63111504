package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ganeshmurthy/product-recommender-system/internal/events"
	"github.com/ganeshmurthy/product-recommender-system/internal/logging"
	"github.com/ganeshmurthy/product-recommender-system/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// actionCartAdd is the interaction type the recommender pipeline
// trains on. The analytics schema names add-to-cart events "cart"
// (its InteractionType.CART value), so the literal must stay "cart",
// not "cart-add".
const actionCartAdd = "cart"

// Store is the transactional cart-row storage the service runs on.
// *repo.GormRepo is the production implementation.
type Store interface {
	GetCart(ctx context.Context, userID string) ([]models.CartItem, error)
	AddItem(ctx context.Context, item *models.CartItem) error
	SetQuantity(ctx context.Context, item *models.CartItem) error
	RemoveItem(ctx context.Context, userID, productID string) error
}

type CartService struct {
	Store    Store
	Recorder events.Recorder
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.Store.GetCart(ctx, userID)
}

// AddItem records the interaction, then increments or creates the cart
// row. A quantity of zero or less means "one": clients that just hit
// the add button send no quantity at all.
func (s *CartService) AddItem(ctx context.Context, item *models.CartItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("product_id must not be empty: %w", ErrValidation)
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	// Best effort: a dead broker must not keep anyone from shopping.
	if err := s.Recorder.Record(ctx, item.UserID, item.ProductID, actionCartAdd); err != nil {
		logging.FromContext(ctx).Warn("interaction record failed", "user_id", item.UserID, "product_id", item.ProductID, "error", err)
	}

	return s.Store.AddItem(ctx, item)
}

// UpdateItem sets the row's quantity to exactly item.Quantity; zero or
// negative removes the row. The row must already exist.
func (s *CartService) UpdateItem(ctx context.Context, item *models.CartItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("product_id must not be empty: %w", ErrValidation)
	}

	err := s.Store.SetQuantity(ctx, item)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("item not in cart: %w", ErrNotFound)
	}
	return err
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return fmt.Errorf("product_id must not be empty: %w", ErrValidation)
	}

	err := s.Store.RemoveItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("item not in cart: %w", ErrNotFound)
	}
	return err
}
