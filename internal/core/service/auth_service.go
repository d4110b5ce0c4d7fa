package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

// AuthService issues and checks the reference backend's session tokens.
type AuthService struct {
	repo      ports.AccountRepository
	revoker   ports.SessionRevoker
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

// sessionClaims is the JWT payload carried in the session cookie.
type sessionClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(repo ports.AccountRepository, revoker ports.SessionRevoker, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password, firstName string, role domain.Role) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, &domain.Account{
		User: domain.User{
			PlatformID: uuid.NewString(),
			FirstName:  firstName,
			Username:   username,
			Role:       role,
		},
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// EnsureOwner registers the bootstrap owner unless the username is taken.
func (s *AuthService) EnsureOwner(ctx context.Context, username, password string) error {
	_, err := s.Register(ctx, username, password, "Owner", domain.RoleOwner)
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

// Login checks the password and signs a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Credential, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	expires := s.now().Add(s.tokenTTL)
	token, err := s.generateToken(account, expires)
	if err != nil {
		return nil, err
	}
	return &ports.Credential{Token: token, ExpiresAt: expires, Account: account}, nil
}

// Verify parses token and rejects it when expired, forged or revoked.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Claims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}

	out := &domain.Claims{
		TokenID: claims.ID,
		UserID:  claims.UserID,
		Role:    domain.ParseRole(claims.Role),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Logout revokes the token until its natural expiry. An unparsable token is
// already useless and is ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.Verify(ctx, token)
	if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrSessionRevoked) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// CurrentAccount loads the account behind verified claims.
func (s *AuthService) CurrentAccount(ctx context.Context, claims *domain.Claims) (*domain.Account, error) {
	return s.repo.FindByID(ctx, claims.UserID)
}

func (s *AuthService) generateToken(account *domain.Account, expires time.Time) (string, error) {
	claims := sessionClaims{
		UserID: account.ID,
		Role:   string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   account.PlatformID,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
