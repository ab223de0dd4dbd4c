package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// TransferRequest represents a request to move funds to another user.
type TransferRequest struct {
	ToUserID    string          `json:"to_user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the authenticated sender.
func (r *TransferRequest) ToUseCaseInput(fromUserID string) usecase.TransferInput {
	return usecase.TransferInput{
		FromUserID:  fromUserID,
		ToUserID:    r.ToUserID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// ReverseRequest represents a request to reverse a completed transaction.
type ReverseRequest struct {
	Reason         string `json:"reason"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// ToUseCaseInput converts to use case input for the authenticated requester.
func (r *ReverseRequest) ToUseCaseInput(transactionID, userID string) usecase.ReverseInput {
	return usecase.ReverseInput{
		TransactionID:  transactionID,
		UserID:         userID,
		Reason:         r.Reason,
		AdditionalInfo: r.AdditionalInfo,
	}
}
