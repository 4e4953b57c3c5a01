package session

import (
	"context"
	"errors"

	"school-service/internal/auth"
	"school-service/internal/crypto"
	"school-service/internal/events"
)

// ErrInvalidCredentials covers both an unknown email and a wrong
// password. The two are deliberately indistinguishable to the caller so
// the endpoint cannot be used to enumerate admin accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error)
}

type service struct {
	repo   Repository
	issuer auth.TokenIssuer
	events *events.Publisher
}

func NewService(repo Repository, issuer auth.TokenIssuer, publisher *events.Publisher) Service {
	return &service{
		repo:   repo,
		issuer: issuer,
		events: publisher,
	}
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error) {
	admin, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	cred := crypto.Credential{Salt: admin.PasswordSalt, Key: admin.PasswordHash}
	if !crypto.Verify(req.Senha, cred) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(admin.ID)
	if err != nil {
		return nil, err
	}

	s.events.SessionCreated(ctx, admin.ID)

	return &TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
