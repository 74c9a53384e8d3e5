package services

import (
	"cafe-cli/models"

	"github.com/shopspring/decimal"
)

// OrderBuilder accumulates menu items for a pending order.
type OrderBuilder struct {
	items []models.MenuItem
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{}
}

// AddByName resolves name in the catalog and appends the item.
func (b *OrderBuilder) AddByName(c *Catalog, name string) error {
	item, err := c.FindByName(name)
	if err != nil {
		return err
	}
	b.Add(item)
	return nil
}

func (b *OrderBuilder) Add(item models.MenuItem) {
	b.items = append(b.items, item)
}

func (b *OrderBuilder) Len() int { return len(b.items) }

func (b *OrderBuilder) Total() decimal.Decimal {
	return b.Build().Total()
}

func (b *OrderBuilder) Summary() string {
	return b.Build().Summary()
}

// Build returns an order holding a copy of the accumulated items, so later
// additions to the builder do not change it.
func (b *OrderBuilder) Build() models.Order {
	items := make([]models.MenuItem, len(b.items))
	copy(items, b.items)
	return models.Order{Items: items}
}
