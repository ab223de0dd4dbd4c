package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// InitialWalletBalance is the balance credited to every new wallet.
	InitialWalletBalance = "1000.00"
)
