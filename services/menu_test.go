package services

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"cafe-cli/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMenu = "Coffee,2.50\nTea,1.75\nCoffee,3.00"

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLoadMenuKeepsFileOrder(t *testing.T) {
	c, err := LoadMenu(strings.NewReader(sampleMenu))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	items := c.Items()
	assert.Equal(t, []string{"Coffee", "Tea", "Coffee"}, []string{items[0].Name, items[1].Name, items[2].Name})
	assert.True(t, items[2].Price.Equal(price("3")))
}

func TestLoadMenuSkipsBlankLines(t *testing.T) {
	c, err := LoadMenu(strings.NewReader("\nCoffee,2.50\r\n\n\nTea, 1.75 \n"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	tea, err := c.FindByName("Tea")
	require.NoError(t, err)
	assert.True(t, tea.Price.Equal(price("1.75")))
}

func TestLoadMenuNameBeforeFirstComma(t *testing.T) {
	c, err := LoadMenu(strings.NewReader("Latte,4.00,seasonal\n Mocha ,3.5"))
	require.NoError(t, err)
	items := c.Items()
	assert.Equal(t, "Latte", items[0].Name)
	assert.True(t, items[0].Price.Equal(price("4")))
	assert.Equal(t, " Mocha ", items[1].Name)
}

func TestLoadMenuMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"missing comma", "Coffee,2.50\nTea 1.75", 2},
		{"non-numeric price", "Coffee,two", 1},
		{"missing price", "Coffee,", 1},
		{"negative price", "Tea,1.75\n\nCoffee,-1", 3},
		{"only spaces", "Tea,1.75\n   \nCoffee,2.50", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMenu(strings.NewReader(tt.text))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestLoadMenuLongLines(t *testing.T) {
	long := strings.Repeat("x", 100*1024) + ",1.00"
	c, err := LoadMenu(strings.NewReader("Tea,1.75\n" + long + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	tooLong := strings.Repeat("x", maxMenuLineBytes+1) + ",1.00"
	_, err = LoadMenu(strings.NewReader("Tea,1.75\n" + tooLong + "\n"))
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrIO)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestLoadMenuLenientSkipsBadLines(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	c, err := LoadMenu(strings.NewReader("Coffee,2.50\nbroken\nTea,x\nCake,4"), Lenient(), WithLoadLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, strings.Count(logs.String(), "skipping malformed menu line"))
}

func TestLoadMenuReadError(t *testing.T) {
	_, err := LoadMenu(iotest.ErrReader(errors.New("disk gone")))
	assert.ErrorIs(t, err, ErrIO)
}

func TestLoadMenuFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleMenu+"\n"), 0o600))

	c, err := LoadMenuFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = LoadMenuFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestFindByNameFirstMatch(t *testing.T) {
	c, err := LoadMenu(strings.NewReader(sampleMenu))
	require.NoError(t, err)

	item, err := c.FindByName("Coffee")
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(price("2.50")))

	_, err = c.FindByName("coffee")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = c.FindByName("Soda")
	var nf *ItemNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Soda", nf.Name)
	assert.Equal(t, "Soda not found in the menu.", err.Error())
}

func TestFindByIndex(t *testing.T) {
	c := NewCatalog(
		models.NewMenuItem("Coffee", price("2.50")),
		models.NewMenuItem("Tea", price("1.75")),
	)
	tests := []struct {
		i       int
		want    string
		wantErr bool
	}{
		{1, "Coffee", false},
		{2, "Tea", false},
		{0, "", true},
		{-1, "", true},
		{3, "", true},
	}
	for _, tt := range tests {
		item, err := c.FindByIndex(tt.i)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", tt.i)
			continue
		}
		require.NoError(t, err, "index %d", tt.i)
		assert.Equal(t, tt.want, item.Name)
	}
}

func TestCatalogItemsIsACopy(t *testing.T) {
	c := NewCatalog(models.NewMenuItem("Coffee", price("2.50")))
	items := c.Items()
	items[0].Name = "Changed"

	again := c.Items()
	assert.Equal(t, "Coffee", again[0].Name)
	assert.Equal(t, c.Items(), again)
}

func TestCatalogString(t *testing.T) {
	c := NewCatalog(
		models.NewMenuItem("Coffee", price("2.5")),
		models.NewMenuItem("Tea", price("1.75")),
	)
	assert.Equal(t, "Coffee ($2.50)\nTea ($1.75)\n", c.String())
}
