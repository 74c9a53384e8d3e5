package services

import (
	"fmt"
	"strings"
	"sync"

	"cafe-cli/models"
)

const noHistoryMessage = "No order history found."

// Ledger is the append-only history of orders for the current run.
type Ledger struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Record(o models.Order) {
	l.mu.Lock()
	l.orders = append(l.orders, o)
	l.mu.Unlock()
}

func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

// Orders returns the recorded orders in recording order.
func (l *Ledger) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *Ledger) RenderHistory() string {
	orders := l.Orders()
	if len(orders) == 0 {
		return noHistoryMessage
	}
	var sb strings.Builder
	sb.WriteString("Order history:\n")
	for i, o := range orders {
		fmt.Fprintf(&sb, "Order %d:\n", i+1)
		sb.WriteString(o.Summary())
		sb.WriteString("\n")
	}
	return sb.String()
}
