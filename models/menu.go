package models

import "github.com/shopspring/decimal"

// MenuItem is one priced entry of the café menu. Values are never mutated
// after the catalog is loaded; orders hold copies of them.
type MenuItem struct {
	Name  string
	Price decimal.Decimal
}

func NewMenuItem(name string, price decimal.Decimal) MenuItem {
	return MenuItem{Name: name, Price: price}
}

// String renders the item the way the menu lists it, e.g. "Coffee ($2.50)".
func (m MenuItem) String() string {
	return m.Name + " (" + FormatPrice(m.Price) + ")"
}

// FormatPrice renders a price with a dollar sign and two decimals.
func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}
