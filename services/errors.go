package services

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound    = errors.New("item not found in the menu")
	ErrIndexOutOfRange = errors.New("item number out of range")
	ErrParse           = errors.New("malformed menu line")
	ErrIO              = errors.New("menu source unreadable")
)

// ItemNotFoundError names the menu item that could not be resolved.
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return e.Name + " not found in the menu."
}

func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// ParseError reports a malformed menu line. Line is 1-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("menu line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("menu line %d %q: malformed", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
