package service

import (
	"context"
	"testing"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key-for-signing"

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username: "Alice",
		Email:    "Alice@Example.com",
		FullName: "Alice Example",
		Password: "correct-horse-battery",
		Avatar:   "https://cdn/avatars/alice.png",
	}
}

func TestAuthRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration normalizes identity", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice" && u.Email == "alice@example.com" && u.PasswordHash != ""
		})).Return(primitive.NewObjectID(), nil).Once()

		user, err := svc.Register(ctx, validRegisterInput())

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Empty(t, user.PasswordHash)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate identity surfaces as conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		userRepo.On("Create", ctx, mock.Anything).
			Return(primitive.NilObjectID, repository.ErrDuplicate).Once()

		_, err := svc.Register(ctx, validRegisterInput())

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("avatar is required", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), testJWTSecret, 0, 0)
		in := validRegisterInput()
		in.Avatar = ""

		_, err := svc.Register(ctx, in)

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	password := "correct-horse-battery"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	stored := func() *domain.User {
		return &domain.User{
			ID:           primitive.NewObjectID(),
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: string(hash),
		}
	}

	t.Run("login by username", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		user := stored()
		userRepo.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
		userRepo.On("SetRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).Return(nil).Once()

		pair, loggedIn, err := svc.Login(ctx, "Alice", password)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Empty(t, loggedIn.PasswordHash)
		userRepo.AssertExpectations(t)
	})

	t.Run("login by email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		user := stored()
		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		userRepo.On("SetRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).Return(nil).Once()

		_, _, err := svc.Login(ctx, "alice@example.com", password)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		userRepo.On("GetByUsername", ctx, "alice").Return(stored(), nil).Once()

		_, _, err := svc.Login(ctx, "alice", "wrong")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("unknown identity reads the same as wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		userRepo.On("GetByUsername", ctx, "nobody").Return(nil, repository.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "nobody", password)

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestAuthRefresh(t *testing.T) {
	ctx := context.Background()
	password := "correct-horse-battery"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	login := func(t *testing.T, userRepo *MockUserRepo, svc AuthService) (*TokenPair, *domain.User) {
		t.Helper()
		user := &domain.User{
			ID:           primitive.NewObjectID(),
			Username:     "alice",
			PasswordHash: string(hash),
		}
		userRepo.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
		userRepo.On("SetRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				user.RefreshToken = args.String(2)
			}).Return(nil)
		pair, _, err := svc.Login(ctx, "alice", password)
		assert.NoError(t, err)
		return pair, user
	}

	t.Run("valid refresh rotates the pair", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		pair, user := login(t, userRepo, svc)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		rotated, err := svc.Refresh(ctx, pair.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, rotated.AccessToken)
		assert.NotEmpty(t, rotated.RefreshToken)
	})

	t.Run("refresh after logout is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, 0, 0)
		pair, user := login(t, userRepo, svc)

		user.RefreshToken = ""
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		_, err := svc.Refresh(ctx, pair.RefreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), testJWTSecret, 0, 0)

		_, err := svc.Refresh(ctx, "not.a.jwt")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
