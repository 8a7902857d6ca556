package services

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/ports"
	"broker/internal/pkg/auth"
	"broker/internal/pkg/errs"
)

// ErrInvalidCredentials is returned on any login failure: unknown email,
// wrong password or a deactivated account. Callers get one indistinct error
// so responses do not leak which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is an issued access token with its expiry and the authenticated
// account's identity.
type Session struct {
	Token     string
	ExpiresAt time.Time
	AccountID string
	Role      string
}

// AuthService authenticates users and couriers against their stored
// credential hashes and issues signed access tokens.
type AuthService struct {
	uowFactory ports.UnitOfWorkFactory
	jwtSecret  string
	tokenTTL   time.Duration
}

// NewAuthService creates an AuthService.
func NewAuthService(uowFactory ports.UnitOfWorkFactory, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// Login verifies the credentials of an account with the given role and
// returns a fresh session on success.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (Session, error) {
	accountID, passwordHash, active, err := s.lookup(ctx, email, role)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if !active || !auth.VerifyPassword(passwordHash, password) {
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := auth.IssueToken(s.jwtSecret, accountID, role, s.tokenTTL)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		ExpiresAt: expiresAt,
		AccountID: accountID,
		Role:      role,
	}, nil
}

func (s *AuthService) lookup(ctx context.Context, email, role string) (accountID, passwordHash string, active bool, err error) {
	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", "", false, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	switch role {
	case auth.RoleUser:
		account, lookupErr := uow.UserRepository().GetByEmail(ctx, email)
		if lookupErr != nil {
			return "", "", false, lookupErr
		}
		accountID, passwordHash, active = account.ID().String(), account.PasswordHash(), account.Active()
	case auth.RoleCourier:
		account, lookupErr := uow.CourierRepository().GetByEmail(ctx, email)
		if lookupErr != nil {
			return "", "", false, lookupErr
		}
		accountID, passwordHash, active = account.ID().String(), account.PasswordHash(), account.Active()
	default:
		return "", "", false, ErrInvalidCredentials
	}

	if commitErr := uow.Commit(ctx); commitErr != nil {
		return "", "", false, commitErr
	}
	return accountID, passwordHash, active, nil
}
