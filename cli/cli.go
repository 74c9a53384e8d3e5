// Package cli is the interactive console front end of the café.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"cafe-cli/models"
	"cafe-cli/services"
)

const (
	choiceViewMenu    = 1
	choiceCreateOrder = 2
	choiceHistory     = 3
	choiceExit        = 4
)

type Session struct {
	cafe            *services.Cafe
	in              *bufio.Scanner
	lines           chan string
	out             io.Writer
	log             *slog.Logger
	recordOnConfirm bool
}

type Option func(*Session)

// RecordOnConfirm controls whether an order reaches the history only after
// the user confirms it (true) or as soon as it is created (false).
func RecordOnConfirm(v bool) Option {
	return func(s *Session) { s.recordOnConfirm = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func New(cafe *services.Cafe, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		cafe:            cafe,
		in:              bufio.NewScanner(in),
		out:             out,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		recordOnConfirm: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run drives the menu loop until the user picks Exit, input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.startReader(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMainMenu()
		line, ok := s.readLine(ctx)
		if !ok {
			s.send("")
			if err := ctx.Err(); err != nil {
				return err
			}
			s.log.Debug("input closed, leaving")
			return nil
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			choice = -1
		}
		switch choice {
		case choiceViewMenu:
			s.send("Menu:")
			s.send(s.menuText())
		case choiceCreateOrder:
			s.handleCreateOrder(ctx)
		case choiceHistory:
			s.send(s.cafe.History())
		case choiceExit:
			s.send("Thank you for visiting!")
			return nil
		default:
			s.send("Invalid choice.")
		}
		s.send("")
	}
}

func (s *Session) printMainMenu() {
	s.send("Welcome to the Cafe!")
	s.send("--------------------")
	s.send("1. View Menu")
	s.send("2. Create Order")
	s.send("3. View Order History")
	s.send("4. Exit")
	s.prompt("Enter your choice: ")
}

func (s *Session) menuText() string {
	var sb strings.Builder
	for i, it := range s.cafe.ListMenu() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, it)
	}
	return sb.String()
}

func (s *Session) handleCreateOrder(ctx context.Context) {
	s.send("Menu:")
	s.send(s.menuText())

	names, ok := s.readSelections(ctx)
	if !ok {
		return
	}
	if len(names) == 0 {
		s.send("No items selected.")
		return
	}

	var (
		order models.Order
		err   error
	)
	if s.recordOnConfirm {
		order, err = s.cafe.PrepareOrder(names)
	} else {
		order, err = s.cafe.PlaceOrder(names)
	}
	if err != nil {
		s.reportOrderError(err)
		return
	}

	s.send("Order created successfully.")
	s.send(order.Summary())
	s.prompt("Confirm order (y/n)? ")
	answer, ok := s.readLine(ctx)
	if ok && strings.EqualFold(strings.TrimSpace(answer), "y") {
		if s.recordOnConfirm {
			s.cafe.Confirm(order)
		}
		s.send("Order confirmed.")
		return
	}
	s.send("Order cancelled.")
}

// readSelections collects item names by 1-based menu number until 0 is entered.
// It reports false if input ended or ctx was cancelled before the list was finished.
func (s *Session) readSelections(ctx context.Context) ([]string, bool) {
	var names []string
	menu := s.cafe.Menu()
	for {
		s.prompt("Enter item number (Type 0 to finish order): ")
		line, ok := s.readLine(ctx)
		if !ok {
			return nil, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.send("Invalid item number.")
			continue
		}
		if n == 0 {
			return names, true
		}
		item, err := menu.FindByIndex(n)
		if err != nil {
			s.log.Debug("bad selection", "input", n, "error", err)
			s.send("Invalid item number.")
			continue
		}
		names = append(names, item.Name)
	}
}

func (s *Session) reportOrderError(err error) {
	var nf *services.ItemNotFoundError
	if errors.As(err, &nf) {
		s.send(nf.Error())
		return
	}
	s.log.Error("order failed", "error", err)
	s.send("Could not create order: " + err.Error())
}

// startReader feeds input lines to s.lines so prompts can also wait on ctx.
// The channel is closed when input ends.
func (s *Session) startReader(ctx context.Context) {
	if s.lines != nil {
		return
	}
	s.lines = make(chan string)
	go func() {
		defer close(s.lines)
		for s.in.Scan() {
			select {
			case s.lines <- s.in.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
}

// readLine returns false when input has ended or ctx is done.
func (s *Session) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		return line, ok
	}
}

func (s *Session) send(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Session) prompt(text string) {
	fmt.Fprint(s.out, text)
}
