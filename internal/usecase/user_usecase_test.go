package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/usecase"
	"github.com/Filipelaw45/gowallet/internal/usecase/mocks"
)

func TestUserUseCase_Register(t *testing.T) {
	newUC := func() (*usecase.UserUseCase, *mocks.MockUserRepository, *mocks.MockWalletRepository) {
		userRepo := mocks.NewMockUserRepository()
		walletRepo := mocks.NewMockWalletRepository()
		uc := usecase.NewUserUseCase(
			mocks.NewMockTransactionManager(), userRepo, walletRepo,
			mocks.NewMockIDGenerator(),
		)

		return uc, userRepo, walletRepo
	}

	t.Run("creates user with seeded wallet", func(t *testing.T) {
		uc, _, walletRepo := newUC()

		user, err := uc.Register(context.Background(), usecase.RegisterInput{
			Name:     "Alice Smith",
			Email:    "alice@example.com",
			Password: "s3cret-password",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if user.HashedPassword != "" {
			t.Error("expected hashed password to be cleared in the result")
		}
		if !user.Active {
			t.Error("expected new users to be active")
		}

		wallet, err := walletRepo.GetByUserID(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("expected a wallet for the new user: %v", err)
		}
		if !wallet.Balance.Equal(decimal.RequireFromString(usecase.InitialWalletBalance)) {
			t.Errorf("expected initial balance %s, got %s", usecase.InitialWalletBalance, wallet.Balance)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		uc, userRepo, _ := newUC()
		userRepo.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: email}, nil
		}

		_, err := uc.Register(context.Background(), usecase.RegisterInput{
			Name:     "Alice Smith",
			Email:    "alice@example.com",
			Password: "s3cret-password",
		})
		if !errors.Is(err, domain.ErrEmailInUse) {
			t.Fatalf("expected ErrEmailInUse, got %v", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, _, _ := newUC()

		tests := []struct {
			name    string
			input   usecase.RegisterInput
			wantErr error
		}{
			{
				name:    "empty name",
				input:   usecase.RegisterInput{Email: "a@b.com", Password: "s3cret-password"},
				wantErr: domain.ErrInvalidName,
			},
			{
				name:    "bad email",
				input:   usecase.RegisterInput{Name: "Alice", Email: "not-an-email", Password: "s3cret-password"},
				wantErr: domain.ErrInvalidEmail,
			},
			{
				name:    "short password",
				input:   usecase.RegisterInput{Name: "Alice", Email: "a@b.com", Password: "short"},
				wantErr: domain.ErrPasswordTooWeak,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Register(context.Background(), tt.input)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("wallet creation failure rolls the user back", func(t *testing.T) {
		uc, userRepo, walletRepo := newUC()

		walletErr := errors.New("wallet insert failed")
		walletRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
			return walletErr
		}

		var createdID string
		userRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
			createdID = user.ID
			return nil
		}

		_, err := uc.Register(context.Background(), usecase.RegisterInput{
			Name:     "Alice Smith",
			Email:    "alice@example.com",
			Password: "s3cret-password",
		})
		if !errors.Is(err, walletErr) {
			t.Fatalf("expected wallet error to propagate, got %v", err)
		}
		if createdID == "" {
			t.Fatal("expected the user insert to have been attempted before the failure")
		}
	})
}

func TestUserUseCase_Authenticate(t *testing.T) {
	uc := usecase.NewUserUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockUserRepository(),
		mocks.NewMockWalletRepository(),
		mocks.NewMockIDGenerator(),
	)

	registered, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "alice@example.com",
			Password: "s3cret-password",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %s, got %s", registered.ID, user.ID)
		}
		if user.HashedPassword != "" {
			t.Error("expected hashed password to be cleared")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "nobody@example.com",
			Password: "s3cret-password",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}
