package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMenuItemString(t *testing.T) {
	item := NewMenuItem("Coffee", decimal.RequireFromString("2.5"))
	assert.Equal(t, "Coffee ($2.50)", item.String())
}

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name   string
		prices []string
		want   string
	}{
		{"empty", nil, "0"},
		{"single", []string{"1.75"}, "1.75"},
		{"no float drift", []string{"0.1", "0.2"}, "0.3"},
		{"several", []string{"2.50", "1.75", "3.00"}, "7.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Order
			for i, p := range tt.prices {
				o.Items = append(o.Items, NewMenuItem(string(rune('A'+i)), decimal.RequireFromString(p)))
			}
			assert.True(t, o.Total().Equal(decimal.RequireFromString(tt.want)), "total = %s, want %s", o.Total(), tt.want)
		})
	}
}

func TestOrderSummary(t *testing.T) {
	o := Order{Items: []MenuItem{
		NewMenuItem("Coffee", decimal.RequireFromString("2.50")),
		NewMenuItem("Tea", decimal.RequireFromString("1.75")),
	}}
	want := "Coffee\t\t$2.50\nTea\t\t$1.75\nTotal price:\t$4.25"
	assert.Equal(t, want, o.Summary())
}

func TestEmptyOrderSummary(t *testing.T) {
	assert.Equal(t, "Total price:\t$0.00", Order{}.Summary())
}
