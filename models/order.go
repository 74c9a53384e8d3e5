package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Order is the finalized list of items of one transaction.
// The total is always derived from Items.
type Order struct {
	Items []MenuItem
}

func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price)
	}
	return total
}

// Summary returns one "name\t\t$price" line per item followed by the total line.
func (o Order) Summary() string {
	var sb strings.Builder
	for _, it := range o.Items {
		sb.WriteString(it.Name)
		sb.WriteString("\t\t")
		sb.WriteString(FormatPrice(it.Price))
		sb.WriteString("\n")
	}
	sb.WriteString("Total price:\t")
	sb.WriteString(FormatPrice(o.Total()))
	return sb.String()
}
