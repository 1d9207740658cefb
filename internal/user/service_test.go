package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brandforge/printshop/internal/user"
)

type mockRepository struct {
	createFunc     func(ctx context.Context, u *user.User) (uuid.UUID, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*user.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *mockRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	return m.createFunc(ctx, u)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func TestUserService_Register(t *testing.T) {
	t.Run("hashes_password_before_storing", func(t *testing.T) {
		var stored *user.User
		newID := uuid.Must(uuid.NewV4())
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u *user.User) (uuid.UUID, error) {
				stored = u
				return newID, nil
			},
		}
		svc := user.NewService(repo)

		u, err := svc.Register(context.Background(), "owner@acme.test", "s3cret", "Acme Print Co")
		require.NoError(t, err)

		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cret", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
		assert.Equal(t, newID, u.ID)
		assert.Equal(t, "Acme Print Co", u.BusinessName)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u *user.User) (uuid.UUID, error) {
				return uuid.Nil, user.ErrEmailExists
			},
		}
		svc := user.NewService(repo)

		_, err := svc.Register(context.Background(), "owner@acme.test", "s3cret", "Acme Print Co")
		assert.ErrorIs(t, err, user.ErrEmailExists)
	})

	t.Run("empty_password", func(t *testing.T) {
		svc := user.NewService(&mockRepository{})

		_, err := svc.Register(context.Background(), "owner@acme.test", "", "Acme Print Co")
		assert.Error(t, err)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := &user.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "owner@acme.test",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name     string
		email    string
		password string
		repoErr  error
		wantErr  error
	}{
		{
			name:     "success",
			email:    "owner@acme.test",
			password: "s3cret",
		},
		{
			name:     "wrong_password",
			email:    "owner@acme.test",
			password: "wrong",
			wantErr:  user.ErrInvalidCredentials,
		},
		{
			name:     "unknown_email",
			email:    "nobody@acme.test",
			password: "s3cret",
			repoErr:  user.ErrNotFound,
			wantErr:  user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				getByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return existing, nil
				},
			}
			svc := user.NewService(repo)

			u, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, existing.ID, u.ID)
		})
	}
}

func TestUserService_Authenticate_StoreFailure(t *testing.T) {
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := user.NewService(repo)

	_, err := svc.Authenticate(context.Background(), "owner@acme.test", "s3cret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrInvalidCredentials, "infrastructure failures are not credential failures")
}

func TestUserService_GetUserByID(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	t.Run("found", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, gotID uuid.UUID) (*user.User, error) {
				assert.Equal(t, id, gotID)
				return &user.User{ID: id, Email: "owner@acme.test"}, nil
			},
		}
		svc := user.NewService(repo)

		u, err := svc.GetUserByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "owner@acme.test", u.Email)
	})

	t.Run("not_found", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, gotID uuid.UUID) (*user.User, error) {
				return nil, user.ErrNotFound
			},
		}
		svc := user.NewService(repo)

		_, err := svc.GetUserByID(context.Background(), id)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
