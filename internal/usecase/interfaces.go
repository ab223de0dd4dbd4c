package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	CreateTx(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	// GetByUserIDsForUpdate locks the wallet rows for the given user IDs.
	// Callers must pass the IDs already sorted; rows are locked in that
	// order so that overlapping operations never deadlock.
	GetByUserIDsForUpdate(ctx context.Context, tx Transaction, userIDs []string) ([]*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *domain.TransactionStatus
	Type      *domain.TransactionType
	UserID    string
	Limit     int
	Offset    int
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// GetByIDForUpdate locks the transaction row so that reversal checks
	// and the back-reference update happen against current state.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	// MarkReversed transitions the original transaction to REVERSED and sets
	// its back-reference to the reversal transaction.
	MarkReversed(ctx context.Context, tx Transaction, id, reversalID string, updatedAt time.Time) error
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, int64, error)
}

// LedgerEntryRepository defines data access for ledger entries.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a unit of work on transient storage conflicts. Permanent
// failures propagate on the first attempt; exhausting the retry budget
// surfaces domain.ErrRetriesExhausted wrapping the final conflict.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
