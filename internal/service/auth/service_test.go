package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wordwiseapp/wordwise-backend/internal/domain"
)

type accountRepoMock struct {
	GetByIDFunc    func(ctx context.Context, accountID int64) (domain.Account, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.Account, error)
	CreateFunc     func(ctx context.Context, account domain.Account) (domain.Account, error)
}

func (m *accountRepoMock) GetByID(ctx context.Context, accountID int64) (domain.Account, error) {
	return m.GetByIDFunc(ctx, accountID)
}

func (m *accountRepoMock) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *accountRepoMock) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	return m.CreateFunc(ctx, account)
}

type tokenIssuerMock struct {
	GenerateAccessTokenFunc func(accountID int64) (string, error)
}

func (m *tokenIssuerMock) GenerateAccessToken(accountID int64) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(accountID)
	}
	return "token", nil
}

func (m *tokenIssuerMock) AccessTTL() time.Duration { return 15 * time.Minute }

func newTestService(accounts accountRepo) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, accounts, &tokenIssuerMock{}, bcrypt.MinCost)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	var created domain.Account
	accounts := &accountRepoMock{
		CreateFunc: func(_ context.Context, account domain.Account) (domain.Account, error) {
			account.ID = 1
			created = account
			return account, nil
		},
	}
	svc := newTestService(accounts)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:       "  User@Example.COM ",
		Password:    "correct horse",
		DisplayName: "User",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("expected access token")
	}
	if result.Account.ID != 1 {
		t.Errorf("account id = %d, want 1", result.Account.ID)
	}
	if created.Email != "user@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.PasswordHash == "correct horse" || created.PasswordHash == "" {
		t.Error("password not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	t.Parallel()

	svc := newTestService(&accountRepoMock{})

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{Password: "correct horse"}},
		{"bad email", RegisterInput{Email: "nope", Password: "correct horse"}},
		{"short password", RegisterInput{Email: "a@b.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	accounts := &accountRepoMock{
		CreateFunc: func(context.Context, domain.Account) (domain.Account, error) {
			return domain.Account{}, domain.ErrAlreadyExists
		},
	}
	svc := newTestService(accounts)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "user@example.com",
		Password: "correct horse",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("got %v, want ErrAlreadyExists", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	accounts := &accountRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (domain.Account, error) {
			if email != "user@example.com" {
				t.Errorf("email not normalized: %q", email)
			}
			return domain.Account{ID: 1, Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestService(accounts)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    " User@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("expected access token")
	}
	if result.ExpiresIn != 15*time.Minute {
		t.Errorf("expires in = %v, want 15m", result.ExpiresIn)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	accounts := &accountRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (domain.Account, error) {
			return domain.Account{ID: 1, Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestService(accounts)

	_, err = svc.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	accounts := &accountRepoMock{
		GetByEmailFunc: func(context.Context, string) (domain.Account, error) {
			return domain.Account{}, domain.ErrNotFound
		},
	}
	svc := newTestService(accounts)

	// Unknown email reports the same error as a wrong password.
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}
