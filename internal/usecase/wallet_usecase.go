package usecase

import (
	"context"

	"github.com/Filipelaw45/gowallet/internal/domain"
)

// WalletUseCase handles wallet read operations.
type WalletUseCase struct {
	walletRepo WalletRepository
	entryRepo  LedgerEntryRepository
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(walletRepo WalletRepository, entryRepo LedgerEntryRepository) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
	}
}

// GetWallet retrieves a user's wallet.
func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByUserID(ctx, userID)
}

// GetStatementInput represents input for listing a wallet's ledger entries.
type GetStatementInput struct {
	UserID string
	Limit  int
	Offset int
}

// GetStatement lists the ledger entries that touched a user's wallet,
// newest first.
func (uc *WalletUseCase) GetStatement(ctx context.Context, input GetStatementInput) ([]*domain.LedgerEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.entryRepo.GetByUser(ctx, input.UserID, input.Limit, input.Offset)
}
