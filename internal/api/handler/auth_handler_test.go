package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/api/middleware"
	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, username, password string) (*ports.Credential, error)
	logoutFn  func(ctx context.Context, token string) error
	accountFn func(ctx context.Context, claims *domain.Claims) (*domain.Account, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.Credential, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Verify(context.Context, string) (*domain.Claims, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) CurrentAccount(ctx context.Context, claims *domain.Claims) (*domain.Account, error) {
	return s.accountFn(ctx, claims)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.Credential, error) {
			if username != "admin@proelectric.com" || password != "x" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.Credential{
				Token:     "token123",
				ExpiresAt: time.Now().Add(time.Hour),
				Account:   &domain.Account{User: domain.User{ID: 1, Username: username, Role: domain.RoleOwner}},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"username":"admin@proelectric.com","password":"x"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["username"] != "admin@proelectric.com" || resp["role"] != "owner" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie || cookies[0].Value != "token123" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.Credential, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"username":"a@b.c","password":"bad"}`), rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected on failure")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.Credential, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"username":"a@b.c"}`), rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "password is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", "{"), rec)

	_ = handler.Login(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_RevokesAndClears(t *testing.T) {
	e := newEcho()
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return errors.New("redis down")
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop(), false)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tok"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("logout must not fail: %v", err)
	}
	if revoked != "tok" {
		t.Fatalf("expected token to be revoked, got %q", revoked)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		logoutFn: func(context.Context, string) error {
			t.Fatalf("nothing to revoke")
			return nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		accountFn: func(_ context.Context, claims *domain.Claims) (*domain.Account, error) {
			return &domain.Account{User: domain.User{ID: claims.UserID, PlatformID: "tg_7", FirstName: "Erlan", Role: claims.Role}}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), rec)
	c.Set(middleware.ClaimsKey, &domain.Claims{UserID: 7, Role: domain.RoleManager})

	if err := handler.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != float64(7) || resp["platform_id"] != "tg_7" || resp["first_name"] != "Erlan" || resp["role"] != "manager" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_CurrentUser_WithoutClaims(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, zerolog.Nop(), false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), rec)

	err := handler.CurrentUser(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
