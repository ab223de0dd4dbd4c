package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/adapter/http/dto"
	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/usecase"
	"github.com/Filipelaw45/gowallet/tests/testutil"
)

func TestUserAndWalletFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	srv := newTestServer(t, testDB)

	t.Run("register login and read wallet", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		registerReq := dto.RegisterRequest{
			Name:     "Dana",
			Email:    "dana@example.com",
			Password: "s3cret-password",
		}

		w := srv.do(t, http.MethodPost, "/api/v1/users", "", registerReq)
		if w.Code != http.StatusCreated {
			t.Fatalf("register: expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		loginReq := dto.LoginRequest{
			Email:    "dana@example.com",
			Password: "s3cret-password",
		}

		w = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", loginReq)
		if w.Code != http.StatusOK {
			t.Fatalf("login: expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var tokenResp dto.TokenResponse
		if err := json.Unmarshal(w.Body.Bytes(), &tokenResp); err != nil {
			t.Fatalf("failed to parse token response: %v", err)
		}
		if tokenResp.Token == "" {
			t.Fatal("expected a token")
		}

		w = srv.do(t, http.MethodGet, "/api/v1/wallet", tokenResp.Token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("wallet: expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var walletResp dto.WalletResponse
		if err := json.Unmarshal(w.Body.Bytes(), &walletResp); err != nil {
			t.Fatalf("failed to parse wallet response: %v", err)
		}
		if walletResp.UserID != tokenResp.User.ID {
			t.Errorf("wallet belongs to %s, want %s", walletResp.UserID, tokenResp.User.ID)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		req := dto.RegisterRequest{
			Name:     "Dana",
			Email:    "dana@example.com",
			Password: "s3cret-password",
		}

		if w := srv.do(t, http.MethodPost, "/api/v1/users", "", req); w.Code != http.StatusCreated {
			t.Fatalf("first register: expected status %d, got %d", http.StatusCreated, w.Code)
		}

		w := srv.do(t, http.MethodPost, "/api/v1/users", "", req)
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}
	})

	t.Run("statement lists entries newest first", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.Zero)

		for i := 1; i <= 3; i++ {
			_, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
				FromUserID: alice.ID,
				ToUserID:   bob.ID,
				Amount:     decimal.NewFromInt(int64(i * 10)),
			})
			if err != nil {
				t.Fatalf("transfer %d failed: %v", i, err)
			}
		}

		w := srv.do(t, http.MethodGet, "/api/v1/wallet/statement?limit=2", srv.tokenFor(t, alice), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var entries []*dto.EntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
			t.Fatalf("failed to parse statement: %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if !entries[0].Amount.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected newest entry amount 30, got %s", entries[0].Amount)
		}
		if entries[0].Type != domain.EntryDebit {
			t.Errorf("expected sender entries to be debits, got %s", entries[0].Type)
		}
	})

	t.Run("list transactions with direction and filters", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.NewFromInt(500))

		sent, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
			FromUserID: alice.ID,
			ToUserID:   bob.ID,
			Amount:     decimal.NewFromInt(25),
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		received, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
			FromUserID: bob.ID,
			ToUserID:   alice.ID,
			Amount:     decimal.NewFromInt(40),
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		w := srv.do(t, http.MethodGet, "/api/v1/transactions?status=COMPLETED", srv.tokenFor(t, alice), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.TransactionListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse list: %v", err)
		}

		if resp.Total != 2 {
			t.Fatalf("expected total 2, got %d", resp.Total)
		}

		directions := map[string]domain.EntryType{}
		for _, txn := range resp.Data {
			directions[txn.ID] = txn.Direction
		}
		if directions[sent.ID] != domain.EntryDebit {
			t.Errorf("expected sent transaction direction DEBIT, got %s", directions[sent.ID])
		}
		if directions[received.ID] != domain.EntryCredit {
			t.Errorf("expected received transaction direction CREDIT, got %s", directions[received.ID])
		}

		// An invalid status filter is rejected up front.
		w = srv.do(t, http.MethodGet, "/api/v1/transactions?status=BOGUS", srv.tokenFor(t, alice), nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d for invalid filter, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("get transaction detail hides it from outsiders", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		alice, _ := testDB.CreateTestUser(ctx, "alice", decimal.NewFromInt(500))
		bob, _ := testDB.CreateTestUser(ctx, "bob", decimal.Zero)
		mallory, _ := testDB.CreateTestUser(ctx, "mallory", decimal.Zero)

		txn, err := srv.transactionUC.Transfer(ctx, usecase.TransferInput{
			FromUserID: alice.ID,
			ToUserID:   bob.ID,
			Amount:     decimal.NewFromInt(75),
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		path := fmt.Sprintf("/api/v1/transactions/%s", txn.ID)

		w := srv.do(t, http.MethodGet, path, srv.tokenFor(t, bob), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var detail dto.TransactionDetailResponse
		if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
			t.Fatalf("failed to parse detail: %v", err)
		}
		if len(detail.Entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(detail.Entries))
		}
		if detail.Direction != domain.EntryCredit {
			t.Errorf("expected recipient direction CREDIT, got %s", detail.Direction)
		}

		w = srv.do(t, http.MethodGet, path, srv.tokenFor(t, mallory), nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected status %d for outsider, got %d", http.StatusForbidden, w.Code)
		}
	})
}
