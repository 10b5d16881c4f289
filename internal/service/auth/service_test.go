package auth

import (
	"context"
	"testing"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/auth"
	"github.com/caredomi/homecare-backend-go/internal/domain/employee"
	"github.com/caredomi/homecare-backend-go/internal/domain/user"
	"github.com/caredomi/homecare-backend-go/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[string]user.User // keyed by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User), nextID: 1}
}

func (f *fakeUserRepo) add(u user.User) user.User {
	if u.ID == "" {
		u.ID = string(rune('0' + f.nextID))
		f.nextID++
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return f.add(newUser), nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	for id, u := range f.users {
		if u.Email == email {
			provider := "google"
			u.OAuthProvider = &provider
			u.OAuthProviderID = &googleID
			f.users[id] = u
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = &passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) SetPasswordResetToken(ctx context.Context, userID, token string, sentAt time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordResetToken = &token
	u.PasswordResetSentAt = &sentAt
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) GetByPasswordResetToken(ctx context.Context, token string) (user.User, error) {
	for _, u := range f.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) ClearPasswordResetToken(ctx context.Context, userID string) error {
	u, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordResetToken = nil
	u.PasswordResetSentAt = nil
	f.users[userID] = u
	return nil
}

type fakeEmployeeRepo struct {
	byUserID map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	if e, ok := f.byUserID[userID]; ok {
		return e, nil
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error        { return nil }

type fakeEmailService struct {
	sent []string // recipient addresses
}

func (f *fakeEmailService) SendPasswordReset(to, resetLink, expiresAt string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(t *testing.T) (auth.AuthService, *fakeUserRepo, *fakeEmailService, jwt.Service) {
	t.Helper()

	userRepo := newFakeUserRepo()
	employeeRepo := &fakeEmployeeRepo{byUserID: make(map[string]*employee.Employee)}
	emailSvc := &fakeEmailService{}
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")

	svc := NewAuthService(userRepo, employeeRepo, jwtService, emailSvc, "http://localhost:3000")
	return svc, userRepo, emailSvc, jwtService
}

func hashFor(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleCoordinator,
		})

		tokens, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "coordinator@caredomi.lu",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Greater(t, tokens.AccessTokenExpiresIn, time.Now().Unix())
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleCoordinator,
		})

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "coordinator@caredomi.lu",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "nobody@caredomi.lu",
			Password: "password123",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("oauth-only account has no password", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		provider := "google"
		userRepo.add(user.User{
			Email:         "oauth@caredomi.lu",
			PasswordHash:  nil,
			Role:          user.RoleCaregiver,
			OAuthProvider: &provider,
		})

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "oauth@caredomi.lu",
			Password: "password123",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new caregiver account", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)

		tokens, err := svc.LoginWithGoogle(ctx, "new@caredomi.lu", "google-id-1")
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)

		created, err := userRepo.GetByEmail(ctx, "new@caredomi.lu")
		require.NoError(t, err)
		assert.Equal(t, user.RoleCaregiver, created.Role)
		assert.True(t, created.EmailVerified)
		require.NotNil(t, created.OAuthProvider)
		assert.Equal(t, "google", *created.OAuthProvider)
	})

	t.Run("links google to existing password account", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "existing@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleAdmin,
		})

		_, err := svc.LoginWithGoogle(ctx, "existing@caredomi.lu", "google-id-2")
		require.NoError(t, err)

		linked, err := userRepo.GetByEmail(ctx, "existing@caredomi.lu")
		require.NoError(t, err)
		require.NotNil(t, linked.OAuthProviderID)
		assert.Equal(t, "google-id-2", *linked.OAuthProviderID)
		assert.Equal(t, user.RoleAdmin, linked.Role)
	})
}

func TestLogoutAndRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh with valid token", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleCoordinator,
		})

		tokens, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "coordinator@caredomi.lu",
			Password: "password123",
		})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("refresh rejects access token", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleCoordinator,
		})

		tokens, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "coordinator@caredomi.lu",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("refresh after logout is revoked", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleCoordinator,
		})

		tokens, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "coordinator@caredomi.lu",
			Password: "password123",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

		_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	})

	t.Run("logout with empty token is a no-op", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		assert.NoError(t, svc.Logout(ctx, ""))
	})

	t.Run("refresh with garbage token", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("sends reset email and stores token", func(t *testing.T) {
		svc, userRepo, emailSvc, _ := newTestService(t)
		created := userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "password123"),
			Role:         user.RoleCoordinator,
		})

		err := svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "coordinator@caredomi.lu"})
		require.NoError(t, err)
		assert.Equal(t, []string{"coordinator@caredomi.lu"}, emailSvc.sent)

		stored, err := userRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PasswordResetToken)
		require.NotNil(t, stored.PasswordResetSentAt)
	})

	t.Run("unknown email does not leak", func(t *testing.T) {
		svc, _, emailSvc, _ := newTestService(t)

		err := svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "nobody@caredomi.lu"})
		require.NoError(t, err)
		assert.Empty(t, emailSvc.sent)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "old-password"),
			Role:         user.RoleCoordinator,
		})

		require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "coordinator@caredomi.lu"}))
		stored, err := userRepo.GetByEmail(ctx, "coordinator@caredomi.lu")
		require.NoError(t, err)
		require.NotNil(t, stored.PasswordResetToken)

		err = svc.ResetPassword(ctx, auth.ResetPasswordRequest{
			Token:           *stored.PasswordResetToken,
			Password:        "new-password-1",
			ConfirmPassword: "new-password-1",
		})
		require.NoError(t, err)

		// Token is single-use
		after, err := userRepo.GetByEmail(ctx, "coordinator@caredomi.lu")
		require.NoError(t, err)
		assert.Nil(t, after.PasswordResetToken)

		// New password works
		_, err = svc.Login(ctx, auth.LoginRequest{
			Email:    "coordinator@caredomi.lu",
			Password: "new-password-1",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{
			Token:           "no-such-token",
			Password:        "new-password-1",
			ConfirmPassword: "new-password-1",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		created := userRepo.add(user.User{
			Email:        "coordinator@caredomi.lu",
			PasswordHash: hashFor(t, "old-password"),
			Role:         user.RoleCoordinator,
		})

		sentAt := time.Now().Add(-2 * time.Hour)
		require.NoError(t, userRepo.SetPasswordResetToken(ctx, created.ID, "stale-token", sentAt))

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{
			Token:           "stale-token",
			Password:        "new-password-1",
			ConfirmPassword: "new-password-1",
		})
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})
}
