// Package ledger models the hosting chain's reservable balance
// primitive. An account's balance is split into a free part and a
// reserved part; reserving moves balance from free to reserved without
// transferring it anywhere.
package ledger

import (
	"github.com/shenzhen-arrom/kitties/errors"
)

var (
	// ErrInsufficientBalance is returned when an account's free balance
	// cannot cover a reserve or transfer.
	ErrInsufficientBalance = errors.New("insufficient free balance")
	// ErrBelowMinimum is returned when a keep-alive transfer would drop
	// the paying account below the existential deposit.
	ErrBelowMinimum = errors.New("transfer would drop account below existential deposit")
)

// Ledger is the balance primitive consumed from the host. Unreserve is
// infallible once a matching Reserve has succeeded; amounts exceeding
// the reserved balance are clamped.
type Ledger interface {
	FreeBalance(account string) uint64
	ReservedBalance(account string) uint64
	ExistentialDeposit() uint64
	Reserve(account string, amount uint64) error
	Unreserve(account string, amount uint64)
	Transfer(from, to string, amount uint64, keepAlive bool) error
}
