package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reuben-baek/relation-save/data"
)

var InvalidInputError = errors.New("invalid input")

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", InvalidInputError, reason)
}

// Strategy selects how a child known only by its identifier is attached to a new parent.
type Strategy string

const (
	// ReferenceStrategy attaches a managed reference. The child is read when the response is built.
	ReferenceStrategy Strategy = "reference"
	// PlaceholderStrategy attaches a detached stub carrying only the identifier. The child is never read.
	PlaceholderStrategy Strategy = "placeholder"
)

// ParseStrategy returns the empty Strategy for an empty string, which makes a
// service fall back to its default.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case ReferenceStrategy:
		return ReferenceStrategy, nil
	case PlaceholderStrategy:
		return PlaceholderStrategy, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", InvalidInputError, s)
	}
}

// validate accepts only the named strategies.
func (s Strategy) validate() error {
	switch s {
	case ReferenceStrategy, PlaceholderStrategy:
		return nil
	default:
		return fmt.Errorf("%w: unknown strategy %q", InvalidInputError, string(s))
	}
}

func (s Strategy) or(fallback Strategy) Strategy {
	if s == "" {
		return fallback
	}
	return s
}

// attach expects a validated strategy.
func attach[T any](ctx context.Context, strategy Strategy, references data.ReferenceRepository[T, uint], id uint) *data.Ref[T, uint] {
	switch strategy {
	case PlaceholderStrategy:
		return data.PlaceholderRef[T, uint](id)
	case ReferenceStrategy:
		return references.GetReference(ctx, id)
	default:
		panic(fmt.Sprintf("attach: unknown strategy %q", string(strategy)))
	}
}
