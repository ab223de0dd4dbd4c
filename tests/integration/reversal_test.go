package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/usecase"
	"github.com/Filipelaw45/gowallet/tests/testutil"
)

func TestReversal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	srv := newTestServer(t, testDB)

	transfer := func(t *testing.T, fromID, toID string, amount decimal.Decimal) *domain.Transaction {
		t.Helper()

		txn, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
			FromUserID: fromID,
			ToUserID:   toID,
			Amount:     amount,
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		return txn
	}

	t.Run("reversal restores both balances", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.NewFromInt(200))

		original := transfer(t, alice.ID, bob.ID, decimal.RequireFromString("100.50"))

		reversal, err := srv.transactionUC.Reverse(ctx, usecase.ReverseInput{
			TransactionID: original.ID,
			UserID:        alice.ID,
			Reason:        "sent to wrong person",
		})
		if err != nil {
			t.Fatalf("reversal failed: %v", err)
		}

		if reversal.FromUserID != bob.ID || reversal.ToUserID != alice.ID {
			t.Errorf("reversal direction wrong: %s -> %s", reversal.FromUserID, reversal.ToUserID)
		}
		if !reversal.Amount.Equal(original.Amount) {
			t.Errorf("expected reversal amount %s, got %s", original.Amount, reversal.Amount)
		}
		if reversal.ReversalMetadata == nil {
			t.Fatal("expected reversal metadata")
		}
		if reversal.ReversalMetadata.OriginalTransactionID != original.ID {
			t.Errorf("metadata points at %s, want %s", reversal.ReversalMetadata.OriginalTransactionID, original.ID)
		}

		aliceWallet, _ := srv.walletRepo.GetByUserID(ctx, alice.ID)
		bobWallet, _ := srv.walletRepo.GetByUserID(ctx, bob.ID)

		if !aliceWallet.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected sender balance restored to 500, got %s", aliceWallet.Balance)
		}
		if !bobWallet.Balance.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected recipient balance restored to 200, got %s", bobWallet.Balance)
		}

		// Original transaction now carries the back-reference.
		detail, err := srv.transactionUC.GetTransaction(ctx, original.ID, alice.ID)
		if err != nil {
			t.Fatalf("failed to reload original: %v", err)
		}
		if detail.Status != domain.StatusReversed {
			t.Errorf("expected original status REVERSED, got %s", detail.Status)
		}
		if detail.ReversedTransactionID == nil || *detail.ReversedTransactionID != reversal.ID {
			t.Errorf("expected back-reference to %s, got %v", reversal.ID, detail.ReversedTransactionID)
		}
	})

	t.Run("second reversal is rejected", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.NewFromInt(200))

		original := transfer(t, alice.ID, bob.ID, decimal.NewFromInt(100))

		if _, err := srv.transactionUC.Reverse(ctx, usecase.ReverseInput{
			TransactionID: original.ID,
			UserID:        alice.ID,
			Reason:        "first",
		}); err != nil {
			t.Fatalf("first reversal failed: %v", err)
		}

		_, err := srv.transactionUC.Reverse(ctx, usecase.ReverseInput{
			TransactionID: original.ID,
			UserID:        bob.ID,
			Reason:        "second",
		})
		if !errors.Is(err, domain.ErrAlreadyReversed) {
			t.Errorf("expected ErrAlreadyReversed, got %v", err)
		}

		// Balances stayed at their restored values.
		aliceWallet, _ := srv.walletRepo.GetByUserID(ctx, alice.ID)
		if !aliceWallet.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected balance 500, got %s", aliceWallet.Balance)
		}
	})

	t.Run("non-participant cannot reverse", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.NewFromInt(200))
		mallory, _ := testDB.CreateTestUser(ctx, "mallory", decimal.Zero)

		original := transfer(t, alice.ID, bob.ID, decimal.NewFromInt(100))

		_, err := srv.transactionUC.Reverse(ctx, usecase.ReverseInput{
			TransactionID: original.ID,
			UserID:        mallory.ID,
			Reason:        "not mine",
		})
		if !errors.Is(err, domain.ErrNotParticipant) {
			t.Errorf("expected ErrNotParticipant, got %v", err)
		}
	})

	t.Run("reversal fails when recipient spent the funds", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.Zero)
		carol, _ := testDB.CreateTestUser(ctx, "carol", decimal.Zero)

		original := transfer(t, alice.ID, bob.ID, decimal.NewFromInt(100))

		// Bob moves the funds on before the reversal lands.
		transfer(t, bob.ID, carol.ID, decimal.NewFromInt(80))

		_, err := srv.transactionUC.Reverse(ctx, usecase.ReverseInput{
			TransactionID: original.ID,
			UserID:        alice.ID,
			Reason:        "refund",
		})
		if !errors.Is(err, domain.ErrReversalInsufficientFunds) {
			t.Errorf("expected ErrReversalInsufficientFunds, got %v", err)
		}

		// Original stays COMPLETED so a later retry can still succeed.
		detail, err := srv.transactionUC.GetTransaction(ctx, original.ID, alice.ID)
		if err != nil {
			t.Fatalf("failed to reload original: %v", err)
		}
		if detail.Status != domain.StatusCompleted {
			t.Errorf("expected original status COMPLETED, got %s", detail.Status)
		}
	})

	t.Run("pending transaction cannot be reversed", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.Zero)

		// Insert a PENDING transaction directly; the transfer path never
		// leaves one behind on success.
		txnID := testutil.GenerateID()
		_, err := testDB.Pool.Exec(ctx, `
			INSERT INTO transactions (id, from_user_id, to_user_id, amount, type, status)
			VALUES ($1, $2, $3, 100, 'TRANSFER', 'PENDING')
		`, txnID, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("failed to insert pending transaction: %v", err)
		}

		_, err = srv.transactionUC.Reverse(ctx, usecase.ReverseInput{
			TransactionID: txnID,
			UserID:        alice.ID,
			Reason:        "too soon",
		})
		if !errors.Is(err, domain.ErrTransactionNotCompleted) {
			t.Errorf("expected ErrTransactionNotCompleted, got %v", err)
		}
	})
}
