package services

import (
	"context"
	"errors"
	"testing"

	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/config"
	"nfc-coop/internal/core/domain"

	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret-for-auth-tests",
			RefreshSecret:    "test-refresh-secret-for-auth-tests",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func createTestUser(t *testing.T, svc *AuthService, username, role string) {
	t.Helper()

	if _, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: username,
		Password: "sufficiently-long",
		FullName: "Test Operator",
		Role:     role,
	}); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)
	createTestUser(t, svc, "clerk1", "STAFF")
	ctx := context.Background()

	resp, err := svc.Login(ctx, "clerk1", "sufficiently-long")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("login returned empty tokens")
	}
	if resp.User.LastLogin == nil {
		t.Error("last login was not stamped")
	}

	if _, err := svc.Login(ctx, "clerk1", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "sufficiently-long"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)
	createTestUser(t, svc, "clerk1", "STAFF")
	ctx := context.Background()

	first, err := svc.Login(ctx, "clerk1", "sufficiently-long")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	second, err := svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh did not rotate the token")
	}

	// the consumed token is dead
	if _, err := svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Errorf("replayed token: err = %v, want ErrTokenRevoked", err)
	}
	// the new one works
	if _, err := svc.Refresh(ctx, second.RefreshToken); err != nil {
		t.Errorf("rotated token: %v", err)
	}
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)
	createTestUser(t, svc, "clerk1", "STAFF")
	ctx := context.Background()

	resp, err := svc.Login(ctx, "clerk1", "sufficiently-long")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, resp.User.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Refresh(ctx, resp.RefreshToken); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Errorf("token after logout: err = %v, want ErrTokenRevoked", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &CreateUserInput{Username: "x", Password: "short"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("short password: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateUser(ctx, &CreateUserInput{Username: "x", Password: "long-enough", Role: "SUPERUSER"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown role: err = %v, want ErrInvalidInput", err)
	}

	createTestUser(t, svc, "clerk1", "")
	if _, err := svc.CreateUser(ctx, &CreateUserInput{Username: "clerk1", Password: "long-enough"}); !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("duplicate username: err = %v, want ErrUserAlreadyExists", err)
	}

	// empty role defaults to STAFF
	user, err := svc.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Role != string(domain.RoleStaff) {
		t.Errorf("default role = %q, want STAFF", user.Role)
	}
}
