package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/usecase"
	"github.com/Filipelaw45/gowallet/tests/testutil"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	srv := newTestServer(t, testDB)

	t.Run("100 concurrent transfers from same wallet no overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// Balance allows exactly 100 transfers of 10.
		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(1000))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.Zero)

		numTransfers := 100
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
					FromUserID: alice.ID,
					ToUserID:   bob.ID,
					Amount:     amount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d (errors: %d)", numTransfers, successCount.Load(), errorCount.Load())
		}

		aliceWallet, _ := srv.walletRepo.GetByUserID(ctx, alice.ID)
		bobWallet, _ := srv.walletRepo.GetByUserID(ctx, bob.ID)

		if !aliceWallet.Balance.Equal(decimal.Zero) {
			t.Errorf("expected sender balance 0, got %s", aliceWallet.Balance)
		}
		if !bobWallet.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected recipient balance 1000, got %s", bobWallet.Balance)
		}
	})

	t.Run("concurrent transfers reject overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// Only 10 of the 20 attempts can be covered.
		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(100))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.Zero)

		numTransfers := 20
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
					FromUserID: alice.ID,
					ToUserID:   bob.ID,
					Amount:     amount,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 10 {
			t.Errorf("expected exactly 10 successful transfers, got %d", successCount.Load())
		}

		aliceWallet, _ := srv.walletRepo.GetByUserID(ctx, alice.ID)
		if !aliceWallet.Balance.Equal(decimal.Zero) {
			t.Errorf("expected sender balance 0, got %s", aliceWallet.Balance)
		}
	})

	t.Run("opposing transfers between the same pair do not deadlock", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(1000))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.NewFromInt(1000))

		numRounds := 50
		amount := decimal.NewFromInt(5)

		var wg sync.WaitGroup
		wg.Add(numRounds * 2)

		for range numRounds {
			go func() {
				defer wg.Done()
				_, _ = srv.transactionUC.Transfer(ctx, usecase.TransferInput{
					FromUserID: alice.ID,
					ToUserID:   bob.ID,
					Amount:     amount,
				})
			}()
			go func() {
				defer wg.Done()
				_, _ = srv.transactionUC.Transfer(ctx, usecase.TransferInput{
					FromUserID: bob.ID,
					ToUserID:   alice.ID,
					Amount:     amount,
				})
			}()
		}

		wg.Wait()

		// Funds are conserved no matter how the rounds interleave.
		aliceWallet, _ := srv.walletRepo.GetByUserID(ctx, alice.ID)
		bobWallet, _ := srv.walletRepo.GetByUserID(ctx, bob.ID)

		total := aliceWallet.Balance.Add(bobWallet.Balance)
		if !total.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected total balance 2000, got %s", total)
		}
	})
}
