package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cafe-cli/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Catalog is the ordered list of menu items, loaded once at startup.
// Names are not required to be unique; lookups return the first match.
type Catalog struct {
	items []models.MenuItem
}

func NewCatalog(items ...models.MenuItem) *Catalog {
	c := &Catalog{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

func (c *Catalog) Add(item models.MenuItem) {
	c.items = append(c.items, item)
}

func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of the menu in insertion order.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) FindByName(name string) (models.MenuItem, error) {
	for _, it := range c.items {
		if it.Name == name {
			return it, nil
		}
	}
	return models.MenuItem{}, &ItemNotFoundError{Name: name}
}

// FindByIndex resolves a 1-based menu position.
func (c *Catalog) FindByIndex(i int) (models.MenuItem, error) {
	if i < 1 || i > len(c.items) {
		return models.MenuItem{}, fmt.Errorf("%w: %d (menu has %d items)", ErrIndexOutOfRange, i, len(c.items))
	}
	return c.items[i-1], nil
}

func (c *Catalog) String() string {
	var sb strings.Builder
	for _, it := range c.items {
		sb.WriteString(it.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

type loadOptions struct {
	lenient bool
	logger  *slog.Logger
}

type LoadOption func(*loadOptions)

// Lenient makes the loader skip malformed lines (logging a warning)
// instead of failing the whole load.
func Lenient() LoadOption {
	return func(o *loadOptions) { o.lenient = true }
}

func WithLoadLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

const maxMenuLineBytes = 1 << 20

// LoadMenu parses "name,price" lines. Empty lines are skipped; a line of
// only spaces is malformed. The name is
// everything before the first comma; the price is the next field.
func LoadMenu(r io.Reader, opts ...LoadOption) (*Catalog, error) {
	o := loadOptions{logger: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	c := NewCatalog()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxMenuLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		item, err := parseMenuLine(lineNo, line)
		if err != nil {
			if o.lenient {
				o.logger.Warn("skipping malformed menu line", "line", lineNo, "error", err)
				continue
			}
			return nil, err
		}
		c.Add(item)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: lineNo + 1, Err: fmt.Errorf("line longer than %d bytes", maxMenuLineBytes)}
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	o.logger.Debug("menu loaded", "items", c.Len())
	return c, nil
}

// LoadMenuFile reads the menu from path. The file is closed before returning.
func LoadMenuFile(path string, opts ...LoadOption) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	return LoadMenu(f, opts...)
}

func parseMenuLine(lineNo int, line string) (models.MenuItem, error) {
	name, rest, ok := strings.Cut(line, ",")
	if !ok {
		return models.MenuItem{}, &ParseError{Line: lineNo, Text: line, Err: errors.New("missing comma")}
	}
	field, _, _ := strings.Cut(rest, ",")
	price, err := parsePrice(field)
	if err != nil {
		return models.MenuItem{}, &ParseError{Line: lineNo, Text: line, Err: err}
	}
	return models.NewMenuItem(name, price), nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.New("missing price")
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q", s)
	}
	if p.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative price %s", s)
	}
	return p, nil
}

// MenuDB is the subset of pgxpool.Pool used by the database menu source.
type MenuDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LoadMenuFromDB reads menu_items in id order.
func LoadMenuFromDB(ctx context.Context, db MenuDB) (*Catalog, error) {
	rows, err := db.Query(ctx, `
		SELECT name, price::text FROM menu_items
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer rows.Close()

	c := NewCatalog()
	row := 0
	for rows.Next() {
		row++
		var name, priceText string
		if err := rows.Scan(&name, &priceText); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		price, err := parsePrice(priceText)
		if err != nil {
			return nil, &ParseError{Line: row, Text: name + "," + priceText, Err: err}
		}
		c.Add(models.NewMenuItem(name, price))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return c, nil
}

// AddMenuItem inserts one item into menu_items and returns its id.
func AddMenuItem(ctx context.Context, db MenuDB, item models.MenuItem) (int64, error) {
	if item.Price.IsNegative() {
		return 0, fmt.Errorf("price must be >= 0")
	}
	rows, err := db.Query(ctx, `
		INSERT INTO menu_items (name, price) VALUES ($1, $2::numeric)
		RETURNING id`,
		item.Name, item.Price.String(),
	)
	if err != nil {
		return 0, err
	}
	id, err := pgx.CollectOneRow(rows, pgx.RowTo[int64])
	return id, err
}

// ImportMenu replaces the contents of menu_items with the catalog in a
// single transaction, keeping the catalog order.
func ImportMenu(ctx context.Context, db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}, c *Catalog) error {
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM menu_items`); err != nil {
			return fmt.Errorf("clear menu: %w", err)
		}
		for _, it := range c.Items() {
			if _, err := AddMenuItem(ctx, tx, it); err != nil {
				return fmt.Errorf("insert %q: %w", it.Name, err)
			}
		}
		return nil
	})
}
