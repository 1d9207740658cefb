package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords, so responses never reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Register(ctx context.Context, email, password, businessName string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password, businessName string) (*User, error) {
	if password == "" {
		return nil, errors.New("service: password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}

	u := &User{
		Email:        email,
		BusinessName: businessName,
		PasswordHash: string(hash),
	}

	createdID, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create user in repository")
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	u.ID = createdID
	log.Info().Stringer("user_id", u.ID).Msg("service: user registered")

	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("service: failed to fetch user by email")
		return nil, fmt.Errorf("service: failed to authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("user_id", id).Msg("service: failed to fetch user by id")
		return nil, fmt.Errorf("service: failed to fetch user by id: %w", err)
	}

	return u, nil
}
