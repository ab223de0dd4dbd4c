package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// TransactionResponse represents a transaction in API responses. Direction
// is present when the transaction is rendered for a specific caller.
type TransactionResponse struct {
	ID                    string                   `json:"id"`
	FromUserID            string                   `json:"from_user_id"`
	ToUserID              string                   `json:"to_user_id"`
	Amount                decimal.Decimal          `json:"amount"`
	Type                  domain.TransactionType   `json:"type"`
	Status                domain.TransactionStatus `json:"status"`
	Description           string                   `json:"description,omitempty"`
	Direction             domain.EntryType         `json:"direction,omitempty"`
	ReversalMetadata      *domain.ReversalMetadata `json:"reversal_metadata,omitempty"`
	ReversedTransactionID *string                  `json:"reversed_transaction_id,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    t.ID,
		FromUserID:            t.FromUserID,
		ToUserID:              t.ToUserID,
		Amount:                t.Amount,
		Type:                  t.Type,
		Status:                t.Status,
		Description:           t.Description,
		ReversalMetadata:      t.ReversalMetadata,
		ReversedTransactionID: t.ReversedTransactionID,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string           `json:"id"`
	TransactionID string           `json:"transaction_id"`
	UserID        string           `json:"user_id"`
	Amount        decimal.Decimal  `json:"amount"`
	Type          domain.EntryType `json:"type"`
	BalanceAfter  decimal.Decimal  `json:"balance_after"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EntryFromDomain converts a domain ledger entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		UserID:        e.UserID,
		Amount:        e.Amount,
		Type:          e.Type,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain ledger entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransactionDetailResponse is a transaction together with its entries.
type TransactionDetailResponse struct {
	TransactionResponse
	Entries []*EntryResponse `json:"entries"`
}

// TransactionDetailFromUseCase converts a use case detail to a response.
func TransactionDetailFromUseCase(d *usecase.TransactionDetail) *TransactionDetailResponse {
	txn := TransactionFromDomain(d.Transaction)
	txn.Direction = d.Direction

	return &TransactionDetailResponse{
		TransactionResponse: *txn,
		Entries:             EntriesFromDomain(d.Entries),
	}
}

// TransactionListResponse is one page of transactions.
type TransactionListResponse struct {
	Data       []*TransactionResponse `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// TransactionListFromUseCase converts a use case page to a response.
func TransactionListFromUseCase(list *usecase.TransactionList) *TransactionListResponse {
	data := make([]*TransactionResponse, len(list.Data))
	for i, item := range list.Data {
		txn := TransactionFromDomain(item.Transaction)
		txn.Direction = item.Direction
		data[i] = txn
	}

	return &TransactionListResponse{
		Data:       data,
		Total:      list.Total,
		Page:       list.Page,
		Limit:      list.Limit,
		TotalPages: list.TotalPages,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
