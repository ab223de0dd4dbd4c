package handler

import (
	"context"
	"net/http"

	"github.com/Filipelaw45/gowallet/internal/adapter/http/dto"
	"github.com/Filipelaw45/gowallet/internal/adapter/http/middleware"
	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// WalletService is the part of the wallet use case the handler depends on.
type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	GetStatement(ctx context.Context, input usecase.GetStatementInput) ([]*domain.LedgerEntry, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletService WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Get returns the authenticated user's wallet.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	wallet, err := h.walletService.GetWallet(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Statement lists the ledger entries that touched the authenticated user's
// wallet, newest first.
func (h *WalletHandler) Statement(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries, err := h.walletService.GetStatement(r.Context(), usecase.GetStatementInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
