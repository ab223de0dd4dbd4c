package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/domain"
)

// TransactionUseCase handles transfer and reversal business logic.
type TransactionUseCase struct {
	txManager       TransactionManager
	retrier         Retrier
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	entryRepo       LedgerEntryRepository
	idGen           IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	retrier Retrier,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
	entryRepo LedgerEntryRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		retrier:         retrier,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		idGen:           idGen,
	}
}

// TransferInput represents input for creating a transfer.
type TransferInput struct {
	FromUserID  string
	ToUserID    string
	Description string
	Amount      decimal.Decimal
}

// Transfer moves funds between two wallets and records the matching
// double-entry ledger pair. The whole unit of work is retried on
// serialization conflicts; business-rule failures propagate immediately.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	// Fail fast before taking any lock.
	if input.FromUserID == input.ToUserID {
		return nil, domain.ErrSelfTransfer
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		created, err := uc.transferOnce(ctx, input)
		if err != nil {
			return err
		}

		txn = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *TransactionUseCase) transferOnce(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallets, err := uc.lockWallets(ctx, tx, input.FromUserID, input.ToUserID)
	if err != nil {
		return nil, err
	}

	from := wallets[input.FromUserID]
	to := wallets[input.ToUserID]

	if !from.CanDebit(input.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		FromUserID:  input.FromUserID,
		ToUserID:    input.ToUserID,
		Amount:      input.Amount,
		Type:        domain.TypeTransfer,
		Status:      domain.StatusPending,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The PENDING insert establishes the ID the ledger entries reference.
	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	err = uc.applyMovement(ctx, tx, txn, from, to,
		fmt.Sprintf("Transfer to %s", input.ToUserID),
		fmt.Sprintf("Transfer from %s", input.FromUserID),
		now,
	)
	if err != nil {
		// Record the terminal state before propagating so no transaction is
		// ever left PENDING within its unit of work.
		txn.Status = domain.StatusFailed
		_ = uc.transactionRepo.UpdateStatus(ctx, tx, txn.ID, domain.StatusFailed, now)

		return nil, err
	}

	txn.Status = domain.StatusCompleted
	if err := uc.transactionRepo.UpdateStatus(ctx, tx, txn.ID, domain.StatusCompleted, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// ReverseInput represents input for reversing a completed transaction.
type ReverseInput struct {
	TransactionID  string
	UserID         string
	Reason         string
	AdditionalInfo string
}

// Reverse creates a new transaction that exactly inverts a completed one.
// Only a participant of the original transaction may request a reversal, and
// each transaction can be reversed at most once.
func (uc *TransactionUseCase) Reverse(ctx context.Context, input ReverseInput) (*domain.Transaction, error) {
	var reversal *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		created, err := uc.reverseOnce(ctx, input)
		if err != nil {
			return err
		}

		reversal = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reversal, nil
}

func (uc *TransactionUseCase) reverseOnce(ctx context.Context, input ReverseInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the original row so the already-reversed check and the
	// back-reference update see current state.
	original, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if original.Status != domain.StatusCompleted {
		return nil, domain.ErrTransactionNotCompleted
	}

	if original.ReversedTransactionID != nil {
		return nil, domain.ErrAlreadyReversed
	}

	if !original.IsParticipant(input.UserID) {
		return nil, domain.ErrNotParticipant
	}

	// Direction is inverted: funds return from the original destination
	// to the original source.
	wallets, err := uc.lockWallets(ctx, tx, original.ToUserID, original.FromUserID)
	if err != nil {
		return nil, err
	}

	holder := wallets[original.ToUserID]
	origin := wallets[original.FromUserID]

	if !holder.CanDebit(original.Amount) {
		return nil, domain.ErrReversalInsufficientFunds
	}

	now := time.Now().UTC()

	reversal := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		FromUserID:  original.ToUserID,
		ToUserID:    original.FromUserID,
		Amount:      original.Amount,
		Type:        domain.TypeTransfer,
		Status:      domain.StatusPending,
		Description: fmt.Sprintf("Reversal: %s", input.Reason),
		ReversalMetadata: &domain.ReversalMetadata{
			OriginalTransactionID: original.ID,
			Reason:                input.Reason,
			AdditionalInfo:        input.AdditionalInfo,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, reversal); err != nil {
		return nil, err
	}

	err = uc.applyMovement(ctx, tx, reversal, holder, origin,
		"Transfer reversal", "Transfer reversal", now)
	if err != nil {
		reversal.Status = domain.StatusFailed
		_ = uc.transactionRepo.UpdateStatus(ctx, tx, reversal.ID, domain.StatusFailed, now)

		return nil, err
	}

	reversal.Status = domain.StatusCompleted
	if err := uc.transactionRepo.UpdateStatus(ctx, tx, reversal.ID, domain.StatusCompleted, now); err != nil {
		return nil, err
	}

	original.Status = domain.StatusReversed
	original.ReversedTransactionID = &reversal.ID
	if err := uc.transactionRepo.MarkReversed(ctx, tx, original.ID, reversal.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return reversal, nil
}

// lockWallets acquires row locks on both wallets in canonical user ID order
// so two operations touching an overlapping pair always request the same
// wallet first and never deadlock.
func (uc *TransactionUseCase) lockWallets(ctx context.Context, tx Transaction, fromUserID, toUserID string) (map[string]*domain.Wallet, error) {
	userIDs := []string{fromUserID, toUserID}
	sort.Strings(userIDs)

	wallets, err := uc.walletRepo.GetByUserIDsForUpdate(ctx, tx, userIDs)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*domain.Wallet, len(wallets))
	for _, w := range wallets {
		byUser[w.UserID] = w
	}

	if len(byUser) < 2 {
		if byUser[fromUserID] == nil {
			return nil, domain.ErrSourceWalletNotFound
		}

		return nil, domain.ErrDestinationWalletNotFound
	}

	return byUser, nil
}

// applyMovement mutates both balances and writes the DEBIT/CREDIT entry pair
// for txn. The from wallet has already been checked for sufficient funds.
func (uc *TransactionUseCase) applyMovement(
	ctx context.Context,
	tx Transaction,
	txn *domain.Transaction,
	from, to *domain.Wallet,
	fromDescription, toDescription string,
	now time.Time,
) error {
	fromAfter := from.ApplyDebit(txn.Amount)
	if err := uc.walletRepo.UpdateBalance(ctx, tx, from.ID, fromAfter, now); err != nil {
		return err
	}
	from.Balance = fromAfter

	toAfter := to.ApplyCredit(txn.Amount)
	if err := uc.walletRepo.UpdateBalance(ctx, tx, to.ID, toAfter, now); err != nil {
		return err
	}
	to.Balance = toAfter

	debit := &domain.LedgerEntry{
		ID:            uc.idGen.Generate(),
		TransactionID: txn.ID,
		UserID:        from.UserID,
		Amount:        txn.Amount,
		Type:          domain.EntryDebit,
		BalanceAfter:  fromAfter,
		Description:   fromDescription,
		CreatedAt:     now,
	}
	if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
		return err
	}

	credit := &domain.LedgerEntry{
		ID:            uc.idGen.Generate(),
		TransactionID: txn.ID,
		UserID:        to.UserID,
		Amount:        txn.Amount,
		Type:          domain.EntryCredit,
		BalanceAfter:  toAfter,
		Description:   toDescription,
		CreatedAt:     now,
	}

	return uc.entryRepo.Create(ctx, tx, credit)
}

// TransactionWithDirection pairs a transaction with the entry direction it
// has from the requesting user's point of view.
type TransactionWithDirection struct {
	*domain.Transaction
	Direction domain.EntryType
}

// TransactionDetail is a transaction together with its ledger entries.
type TransactionDetail struct {
	*domain.Transaction
	Entries   []*domain.LedgerEntry
	Direction domain.EntryType
}

// GetTransaction returns one transaction with its ledger entries. Only a
// participant may view it.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id, userID string) (*TransactionDetail, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !txn.IsParticipant(userID) {
		return nil, domain.ErrNotParticipant
	}

	entries, err := uc.entryRepo.GetByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TransactionDetail{
		Transaction: txn,
		Entries:     entries,
		Direction:   txn.DirectionFor(userID),
	}, nil
}

// ListTransactionsInput represents input for listing a user's transactions.
type ListTransactionsInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *domain.TransactionStatus
	Type      *domain.TransactionType
	UserID    string
	Page      int
	Limit     int
}

// TransactionList is one page of a user's transactions.
type TransactionList struct {
	Data       []TransactionWithDirection
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListTransactions lists transactions where the user is either party,
// newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) (*TransactionList, error) {
	page, limit := domain.ValidatePagination(input.Page, input.Limit)

	txns, total, err := uc.transactionRepo.List(ctx, TransactionFilter{
		UserID:    input.UserID,
		Status:    input.Status,
		Type:      input.Type,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]TransactionWithDirection, len(txns))
	for i, txn := range txns {
		data[i] = TransactionWithDirection{
			Transaction: txn,
			Direction:   txn.DirectionFor(input.UserID),
		}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &TransactionList{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
