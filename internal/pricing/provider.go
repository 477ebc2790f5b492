// Package pricing fetches market prices for trading cards from external
// data sources.
package pricing

import (
	"context"
	"fmt"
	"time"
)

// CardQuery carries the fields providers need to look up a card's price.
type CardQuery struct {
	Name       string
	SetName    string
	CardNumber string
	Game       string
	Condition  string
}

// Quote is a successfully fetched market price.
type Quote struct {
	Source    string
	Price     float64
	Currency  string
	FetchedAt time.Time
}

// FetchError wraps a failed lookup with the card that caused it.
type FetchError struct {
	Query CardQuery
	Err   error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch price for %q (%s): %v", e.Query.Name, e.Query.Game, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// Provider fetches current market prices for cards.
type Provider interface {
	// Name returns the provider's display name (e.g., "JustTCG").
	Name() string

	// Supports returns true if this provider can price cards of the given game.
	Supports(game string) bool

	// FetchPrice fetches the current market price for a single card.
	FetchPrice(ctx context.Context, q CardQuery) (*Quote, error)
}
