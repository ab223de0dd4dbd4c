package domain

import "errors"

var (
	// Validation errors
	ErrSelfTransfer  = errors.New("cannot transfer to yourself")
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// Wallet errors
	ErrWalletNotFound            = errors.New("wallet not found")
	ErrSourceWalletNotFound      = errors.New("source wallet not found")
	ErrDestinationWalletNotFound = errors.New("destination wallet not found")
	ErrWalletAlreadyExists       = errors.New("user already has a wallet")
	ErrInsufficientFunds         = errors.New("insufficient funds")

	// Transaction errors
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrTransactionNotCompleted   = errors.New("only completed transactions can be reversed")
	ErrAlreadyReversed           = errors.New("transaction has already been reversed")
	ErrNotParticipant            = errors.New("user is not a participant of this transaction")
	ErrReversalInsufficientFunds = errors.New("recipient lacks funds to reverse")

	// Retry errors
	ErrRetriesExhausted = errors.New("transaction retries exhausted")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailInUse   = errors.New("email is already in use")
	ErrInactiveUser = errors.New("user account is inactive")

	// Authentication errors
	ErrUnauthorized = errors.New("invalid email or password")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
