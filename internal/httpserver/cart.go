package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ganeshmurthy/product-recommender-system/internal/logging"
	mwauth "github.com/ganeshmurthy/product-recommender-system/internal/middleware/auth"
	"github.com/ganeshmurthy/product-recommender-system/internal/models"
	"github.com/ganeshmurthy/product-recommender-system/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

// cartItemRequest is the body of POST/PUT/DELETE /cart/:user_id. The
// owner comes from the route (already checked against the token), so a
// user_id in the body is ignored.
type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHTTP) ownerID(c echo.Context) string {
	id, _ := c.Get(mwauth.CtxUserID).(string)
	return id
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	items, err := h.Svc.GetCart(ctx, h.ownerID(c))
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	if items == nil {
		items = []models.CartItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == "" {
		l.Warn("add_to_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, "product_id required")
	}

	item := models.CartItem{
		UserID:    h.ownerID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.Svc.AddItem(ctx, &item); err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("item added to cart", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == "" {
		l.Warn("update_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, "product_id required")
	}

	item := models.CartItem{
		UserID:    h.ownerID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.Svc.UpdateItem(ctx, &item); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_cart_not_found", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, "item not found in cart")
		}
		l.Error("update_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart item updated", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.cart")

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == "" {
		l.Warn("remove_from_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, "product_id required")
	}

	if err := h.Svc.RemoveItem(ctx, h.ownerID(c), req.ProductID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_not_found", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, "item not found in cart")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart item removed", "product_id", req.ProductID)
	return c.NoContent(http.StatusNoContent)
}
