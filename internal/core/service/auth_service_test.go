package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/infrastructure/db/memory"
)

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *stubRevoker) {
	t.Helper()
	revoker := newStubRevoker()
	svc := NewAuthService(memory.NewAccountRepository(), revoker, "secret", time.Hour)
	if err := svc.EnsureOwner(context.Background(), "admin@proelectric.com", "x"); err != nil {
		t.Fatalf("EnsureOwner: %v", err)
	}
	return svc, revoker
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	account, err := svc.Register(context.Background(), "erlan", "pass123", "Erlan", domain.RoleManager)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.PlatformID == "" || account.ID == 0 {
		t.Fatalf("expected ids to be assigned: %+v", account.User)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, " ", "pass", "", domain.RoleUser); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "pass", "", domain.Role("guest")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.Register(ctx, "admin@proelectric.com", "pass", "", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_EnsureOwner_Idempotent(t *testing.T) {
	svc, _ := newTestAuthService(t)
	if err := svc.EnsureOwner(context.Background(), "admin@proelectric.com", "other"); err != nil {
		t.Fatalf("second EnsureOwner: %v", err)
	}
}

func TestAuthService_Login_IssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	cred, err := svc.Login(ctx, "admin@proelectric.com", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if cred.Account.Role != domain.RoleOwner || cred.Account.ID != 1 {
		t.Fatalf("unexpected account: %+v", cred.Account.User)
	}

	claims, err := svc.Verify(ctx, cred.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 1 || claims.Role != domain.RoleOwner || claims.TokenID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Equal(cred.ExpiresAt.Truncate(time.Second)) {
		t.Fatalf("expiry mismatch: %v vs %v", claims.ExpiresAt, cred.ExpiresAt)
	}
}

func TestAuthService_Login_Rejects(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := [][2]string{
		{"admin@proelectric.com", "wrong"},
		{"ghost@proelectric.com", "x"},
		{"", "x"},
		{"admin@proelectric.com", ""},
	}
	for _, c := range cases {
		if _, err := svc.Login(ctx, c[0], c[1]); err != domain.ErrInvalidCredentials {
			t.Fatalf("%v: expected ErrInvalidCredentials, got %v", c, err)
		}
	}
}

func TestAuthService_Verify_RejectsForgedAndExpired(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"uid": 1, "role": "owner"})
	signed, _ := forged.SignedString([]byte("not-the-secret"))
	if _, err := svc.Verify(ctx, signed); err != domain.ErrInvalidCredentials {
		t.Fatalf("forged token: expected ErrInvalidCredentials, got %v", err)
	}

	cred, _ := svc.Login(ctx, "admin@proelectric.com", "x")
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Verify(ctx, cred.Token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expired token: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, revoker := newTestAuthService(t)
	ctx := context.Background()

	cred, _ := svc.Login(ctx, "admin@proelectric.com", "x")
	if err := svc.Logout(ctx, cred.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(revoker.revoked) != 1 {
		t.Fatalf("expected one revoked token, got %d", len(revoker.revoked))
	}
	if _, err := svc.Verify(ctx, cred.Token); !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	// A second logout with the same cookie is a no-op.
	if err := svc.Logout(ctx, cred.Token); err != nil {
		t.Fatalf("repeated Logout: %v", err)
	}
	if err := svc.Logout(ctx, "garbage"); err != nil {
		t.Fatalf("Logout with garbage token: %v", err)
	}
}

func TestAuthService_Verify_RevocationStoreDown(t *testing.T) {
	svc, revoker := newTestAuthService(t)
	ctx := context.Background()

	cred, _ := svc.Login(ctx, "admin@proelectric.com", "x")
	revoker.err = errors.New("connection refused")

	if _, err := svc.Verify(ctx, cred.Token); err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected an infrastructure error, got %v", err)
	}
}
