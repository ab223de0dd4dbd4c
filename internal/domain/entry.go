package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType marks which half of a double-entry pair an entry is.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// LedgerEntry is one immutable half of a completed transaction's effect on a
// wallet. Every completed transaction has exactly two entries with equal
// amounts, one DEBIT on the source and one CREDIT on the destination, each
// carrying the wallet balance that resulted from applying it.
type LedgerEntry struct {
	CreatedAt     time.Time
	ID            string
	TransactionID string
	UserID        string
	Description   string
	Type          EntryType
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
}
