package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"galleryapi/internal/auth"
	"galleryapi/internal/model"
	repoMocks "galleryapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testIssuer(t))

		mUsers.On("FindByEmail", ctx, "alice@example.com").Return(nil, sql.ErrNoRows)
		mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ID != "" && u.Email == "alice@example.com" && u.DisplayName == "Alice" &&
				u.PasswordHash != "" && u.PasswordHash != "s3cret"
		})).Return(&model.User{ID: "u1", Email: "alice@example.com"}, nil)

		user, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		mUsers.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testIssuer(t))

		mUsers.On("FindByEmail", ctx, "alice@example.com").Return(&model.User{ID: "u1"}, nil)

		_, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")
		assert.ErrorIs(t, err, ErrUserExists)
		mUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing email", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), testIssuer(t))
		_, err := svc.Register(ctx, "", "Alice", "s3cret")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("missing password", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), testIssuer(t))
		_, err := svc.Register(ctx, "alice@example.com", "Alice", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	stored := &model.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", PasswordHash: hash}

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		issuer := testIssuer(t)
		svc := NewAuthService(mUsers, issuer)

		mUsers.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil)

		token, user, err := svc.Login(ctx, "alice@example.com", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "Alice", claims.DisplayName)
	})

	t.Run("wrong password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testIssuer(t))

		mUsers.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same answer", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testIssuer(t))

		mUsers.On("FindByEmail", ctx, "nobody@example.com").Return(nil, errors.New("sql: no rows in result set"))

		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
