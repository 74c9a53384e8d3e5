package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cafe-cli/config"
	"cafe-cli/db"
	"cafe-cli/models"
)

// Cafe owns the catalog (immutable after load) and the order ledger.
type Cafe struct {
	menu   *Catalog
	ledger *Ledger
	log    *slog.Logger
}

type CafeOption func(*Cafe)

func WithLogger(l *slog.Logger) CafeOption {
	return func(c *Cafe) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLedger lets callers share or inspect the ledger.
func WithLedger(l *Ledger) CafeOption {
	return func(c *Cafe) {
		if l != nil {
			c.ledger = l
		}
	}
}

func NewCafe(menu *Catalog, opts ...CafeOption) *Cafe {
	c := &Cafe{menu: menu, ledger: NewLedger(), log: discardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	if c.menu == nil {
		c.menu = NewCatalog()
	}
	return c
}

// Open loads the menu from the configured source and returns a ready Cafe.
// There is no degraded mode: any load failure is returned.
func Open(ctx context.Context, cfg *config.Config, opts ...CafeOption) (*Cafe, error) {
	c := NewCafe(nil, opts...)

	var (
		menu *Catalog
		err  error
	)
	switch cfg.Menu.Source {
	case config.MenuSourceFile, "":
		loadOpts := []LoadOption{WithLoadLogger(c.log)}
		if cfg.Menu.Lenient {
			loadOpts = append(loadOpts, Lenient())
		}
		menu, err = LoadMenuFile(cfg.Menu.File, loadOpts...)
	case config.MenuSourceDB:
		menu, err = loadMenuFromDatabase(ctx, cfg.DB)
	default:
		return nil, fmt.Errorf("unknown menu source %q", cfg.Menu.Source)
	}
	if err != nil {
		c.log.Error("menu load failed", "source", cfg.Menu.Source, "error", err)
		return nil, err
	}
	c.menu = menu
	c.log.Info("cafe ready", "source", cfg.Menu.Source, "items", menu.Len())
	return c, nil
}

func loadMenuFromDatabase(ctx context.Context, cfg config.DBConfig) (*Catalog, error) {
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer pool.Close()
	return LoadMenuFromDB(ctx, pool)
}

func (c *Cafe) Menu() *Catalog { return c.menu }

func (c *Cafe) ListMenu() []models.MenuItem {
	return c.menu.Items()
}

// PrepareOrder resolves every name against the menu without recording anything.
// The first unknown name fails the whole order.
func (c *Cafe) PrepareOrder(names []string) (models.Order, error) {
	b := NewOrderBuilder()
	for _, name := range names {
		if err := b.AddByName(c.menu, name); err != nil {
			c.log.Debug("order rejected", "item", name, "error", err)
			return models.Order{}, err
		}
	}
	return b.Build(), nil
}

// PlaceOrder builds the order and records it in the history right away.
func (c *Cafe) PlaceOrder(names []string) (models.Order, error) {
	o, err := c.PrepareOrder(names)
	if err != nil {
		return models.Order{}, err
	}
	c.Confirm(o)
	return o, nil
}

// Confirm records a prepared order.
func (c *Cafe) Confirm(o models.Order) {
	c.ledger.Record(o)
	c.log.Info("order recorded", "number", c.ledger.Count(), "items", len(o.Items), "total", o.Total().StringFixed(2))
}

func (c *Cafe) History() string {
	return c.ledger.RenderHistory()
}

func (c *Cafe) OrderCount() int {
	return c.ledger.Count()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
