package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestWallet_CanDebit(t *testing.T) {
	w := &Wallet{Balance: decimal.NewFromFloat(100.50)}

	if !w.CanDebit(decimal.NewFromFloat(100.50)) {
		t.Error("expected debit of entire balance to be allowed")
	}
	if w.CanDebit(decimal.NewFromFloat(100.51)) {
		t.Error("expected debit beyond balance to be rejected")
	}
}

func TestWallet_ApplyDeltas(t *testing.T) {
	w := &Wallet{Balance: decimal.NewFromInt(500)}

	after := w.ApplyDebit(decimal.NewFromFloat(100.50))
	if !after.Equal(decimal.NewFromFloat(399.50)) {
		t.Errorf("expected 399.50 after debit, got %s", after)
	}

	after = w.ApplyCredit(decimal.NewFromFloat(100.50))
	if !after.Equal(decimal.NewFromFloat(600.50)) {
		t.Errorf("expected 600.50 after credit, got %s", after)
	}
}
