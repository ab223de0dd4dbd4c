package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Filipelaw45/gowallet/internal/adapter/http/dto"
	"github.com/Filipelaw45/gowallet/internal/adapter/http/middleware"
	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/infrastructure/metrics"
	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// TransactionService is the part of the transaction use case the handler
// depends on.
type TransactionService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	Reverse(ctx context.Context, input usecase.ReverseInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id, userID string) (*usecase.TransactionDetail, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) (*usecase.TransactionList, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionService TransactionService
	metrics            *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService TransactionService, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, metrics: m}
}

// Create moves funds from the authenticated user to another user.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionService.Transfer(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		h.recordTransferError(err)
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())

		return
	}

	h.metrics.TransfersCreated.Inc()

	amount, _ := txn.Amount.Float64()
	h.metrics.TransferAmount.Observe(amount)

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Reverse inverts a completed transaction.
func (h *TransactionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Reason == "" {
		writeError(w, http.StatusBadRequest, "missing reason", "")
		return
	}

	reversal, err := h.transactionService.Reverse(r.Context(), req.ToUseCaseInput(transactionID, userID))
	if err != nil {
		h.recordTransferError(err)
		writeError(w, mapDomainError(err), "failed to reverse transaction", err.Error())

		return
	}

	h.metrics.TransfersReversed.Inc()

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(reversal))
}

// Get retrieves one of the authenticated user's transactions with its
// ledger entries.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	detail, err := h.transactionService.GetTransaction(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionDetailFromUseCase(detail))
}

// List lists the authenticated user's transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	input := usecase.ListTransactionsInput{
		UserID: userID,
		Page:   parseIntQuery(r, "page", 1),
		Limit:  parseIntQuery(r, "limit", 10),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TransactionStatus(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter", raw)
			return
		}
		input.Status = &status
	}

	if raw := r.URL.Query().Get("type"); raw != "" {
		txnType := domain.TransactionType(raw)
		if !txnType.Valid() {
			writeError(w, http.StatusBadRequest, "invalid type filter", raw)
			return
		}
		input.Type = &txnType
	}

	startDate, err := parseTimeQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}
	input.StartDate = startDate

	endDate, err := parseTimeQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}
	input.EndDate = endDate

	list, err := h.transactionService.ListTransactions(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionListFromUseCase(list))
}

func (h *TransactionHandler) recordTransferError(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrReversalInsufficientFunds):
		h.metrics.TransferErrors.WithLabelValues("insufficient_funds").Inc()
	case errors.Is(err, domain.ErrRetriesExhausted):
		h.metrics.RetryExhaustions.Inc()
		h.metrics.TransferErrors.WithLabelValues("retries_exhausted").Inc()
	case errors.Is(err, domain.ErrAlreadyReversed):
		h.metrics.TransferErrors.WithLabelValues("already_reversed").Inc()
	default:
		h.metrics.TransferErrors.WithLabelValues("other").Inc()
	}
}

// parseTimeQuery parses an RFC 3339 time query parameter.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
