package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds the current balance for a single user. It is the only
// mutable part of the ledger data model; balances change only inside a
// committed transaction holding the wallet's row lock.
type Wallet struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	UserID    string
	Balance   decimal.Decimal
}

// CanDebit reports whether the wallet holds at least amount.
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// ApplyDebit returns the balance after subtracting amount.
func (w *Wallet) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Sub(amount)
}

// ApplyCredit returns the balance after adding amount.
func (w *Wallet) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}
