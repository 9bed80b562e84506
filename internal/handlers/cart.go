package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repository"
	"github.com/Skotchmaster/storefront/internal/session"
)

type CartHandler struct {
	Products repository.ProductRepo
	Producer *mykafka.Producer
}

type AddToCartRequest struct {
	ProductID *uint `json:"product_id"`
}

type UpdateCartRequest struct {
	ProductID *uint  `json:"product_id"`
	Action    string `json:"action"`
}

type CartResponse struct {
	Success   bool `json:"success"`
	CartCount int  `json:"cart_count"`
}

type CartError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func cartInputError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, CartError{Success: false, Message: "Product ID is required."})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	sess := session.FromContext(c)

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return cartInputError(c)
	}
	if req.ProductID == nil || *req.ProductID == 0 {
		return cartInputError(c)
	}

	productID := strconv.FormatUint(uint64(*req.ProductID), 10)
	sess.Cart.Add(productID)
	sess.Touch()

	publish(c, h.Producer, "cart_events", sess.ID, map[string]any{
		"type":      "cart_item_added",
		"productID": *req.ProductID,
		"quantity":  sess.Cart[productID].Quantity,
	})

	return c.JSON(http.StatusOK, CartResponse{Success: true, CartCount: sess.Cart.Count()})
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	sess := session.FromContext(c)

	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return cartInputError(c)
	}
	if req.ProductID == nil || *req.ProductID == 0 {
		return cartInputError(c)
	}

	// entries not in the cart are untouched, for either action
	productID := strconv.FormatUint(uint64(*req.ProductID), 10)
	sess.Cart.Update(productID, req.Action)
	sess.Touch()

	publish(c, h.Producer, "cart_events", sess.ID, map[string]any{
		"type":      "cart_updated",
		"productID": *req.ProductID,
		"action":    req.Action,
	})

	return c.JSON(http.StatusOK, CartResponse{Success: true, CartCount: sess.Cart.Count()})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	sess := session.FromContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	productID := strconv.Itoa(id)
	if _, ok := sess.Cart[productID]; ok {
		sess.Cart.Remove(productID)
		sess.Touch()
		sess.AddFlash("Item removed from cart.", "success")

		publish(c, h.Producer, "cart_events", sess.ID, map[string]any{
			"type":      "cart_item_removed",
			"productID": id,
		})
	}

	return c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) CartPage(c echo.Context) error {
	sess := session.FromContext(c)
	ctx := c.Request().Context()

	lookup := func(id uint) (*models.Product, error) {
		return h.Products.FindByID(ctx, id)
	}
	items, total := sess.Cart.Materialize(cart.ProductLookup(lookup))

	return c.Render(http.StatusOK, "cart.html", viewData(c, map[string]any{
		"cart_items": items,
		"total":      total,
	}))
}
