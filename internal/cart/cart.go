// Package cart holds the per-visitor shopping cart: a mapping of
// product id (in string form) to a purchase quantity. It lives in the
// session and never touches storage directly.
package cart

import (
	"sort"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

type Entry struct {
	Quantity int `json:"quantity"`
}

type Cart map[string]Entry

func New() Cart {
	return Cart{}
}

// Add puts one unit of the product into the cart, inserting the entry
// with quantity 1 when it is not there yet.
func (c Cart) Add(productID string) {
	entry, ok := c[productID]
	if ok {
		entry.Quantity++
		c[productID] = entry
		return
	}
	c[productID] = Entry{Quantity: 1}
}

// Update applies "increase" or "decrease" to an existing entry. An
// entry decreased to zero or below is deleted. Entries that are not in
// the cart are left alone, for either action.
func (c Cart) Update(productID, action string) {
	entry, ok := c[productID]
	if !ok {
		return
	}
	switch action {
	case ActionIncrease:
		entry.Quantity++
		c[productID] = entry
	case ActionDecrease:
		entry.Quantity--
		if entry.Quantity <= 0 {
			delete(c, productID)
			return
		}
		c[productID] = entry
	}
}

// Remove drops the entry entirely. Removing an absent entry is a no-op.
func (c Cart) Remove(productID string) {
	delete(c, productID)
}

// Count is the sum of all quantities, recomputed on every call.
func (c Cart) Count() int {
	total := 0
	for _, entry := range c {
		total += entry.Quantity
	}
	return total
}

type Line struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

type ProductLookup func(id uint) (*models.Product, error)

// Materialize resolves every entry against current product data.
// Entries whose product no longer exists are dropped from the view.
// Lines come back in ascending product-id order.
func (c Cart) Materialize(lookup ProductLookup) ([]Line, float64) {
	ids := make([]int, 0, len(c))
	for key := range c {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lines := make([]Line, 0, len(ids))
	var grandTotal float64
	for _, id := range ids {
		entry := c[strconv.Itoa(id)]
		product, err := lookup(uint(id))
		if err != nil || product == nil {
			continue
		}
		lineTotal := float64(entry.Quantity) * product.Price
		lines = append(lines, Line{
			ID:       product.ID,
			Name:     product.Name,
			Quantity: entry.Quantity,
			Price:    product.Price,
			Total:    lineTotal,
		})
		grandTotal += lineTotal
	}
	return lines, grandTotal
}
