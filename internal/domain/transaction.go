package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus tracks a transaction through its lifecycle.
// A transaction moves from PENDING to exactly one of COMPLETED or FAILED;
// a COMPLETED transaction may later move exactly once to REVERSED.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusReversed  TransactionStatus = "REVERSED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusReversed, StatusFailed:
		return true
	}

	return false
}

// TransactionType classifies a transaction. Reversals are represented as a
// second TRANSFER-shaped transaction, not a distinct type.
type TransactionType string

const (
	TypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is a known type.
func (t TransactionType) Valid() bool {
	return t == TypeTransfer
}

// ReversalMetadata links a reversal transaction back to the transaction it
// undoes, together with the caller-supplied justification.
type ReversalMetadata struct {
	OriginalTransactionID string `json:"original_transaction_id"`
	Reason                string `json:"reason"`
	AdditionalInfo        string `json:"additional_info,omitempty"`
}

// Transaction represents a directed movement of funds between two users.
type Transaction struct {
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ReversalMetadata      *ReversalMetadata
	ReversedTransactionID *string
	ID                    string
	FromUserID            string
	ToUserID              string
	Description           string
	Type                  TransactionType
	Status                TransactionStatus
	Amount                decimal.Decimal
}

// Validate checks the invariants that hold for every transaction
// regardless of persistence state.
func (t *Transaction) Validate() error {
	if t.FromUserID == t.ToUserID {
		return ErrSelfTransfer
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// IsParticipant reports whether userID is the source or the destination.
func (t *Transaction) IsParticipant(userID string) bool {
	return t.FromUserID == userID || t.ToUserID == userID
}

// DirectionFor returns the entry direction of the transaction as seen by
// userID: CREDIT when the user received the funds, DEBIT when they sent them.
func (t *Transaction) DirectionFor(userID string) EntryType {
	if t.ToUserID == userID {
		return EntryCredit
	}

	return EntryDebit
}
