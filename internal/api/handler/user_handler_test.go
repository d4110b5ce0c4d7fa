package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/proelectric/proadmin/internal/core/domain"
)

type stubUserService struct {
	listFn func(ctx context.Context) ([]domain.User, error)
	roleFn func(ctx context.Context, platformID string, role domain.Role) (*domain.User, error)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) ChangeRole(ctx context.Context, platformID string, role domain.Role) (*domain.User, error) {
	return s.roleFn(ctx, platformID, role)
}

func TestUserHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		listFn: func(context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: 1, PlatformID: "tg_1", FirstName: "Aidar", Role: domain.RoleOwner},
				{ID: 2, PlatformID: "tg_2", FirstName: "Erlan", Phone: "77001234567", Role: domain.RoleUser},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp) != 2 || resp[1]["platform_id"] != "tg_2" || resp[1]["phone"] != "77001234567" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_UpdateRole_UsesPlatformID(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		roleFn: func(_ context.Context, platformID string, role domain.Role) (*domain.User, error) {
			if platformID != "tg_2" || role != domain.RoleManager {
				t.Fatalf("unexpected args: %s %s", platformID, role)
			}
			return &domain.User{ID: 2, PlatformID: platformID, Role: role}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"role":"manager"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("tg_2")

	if err := handler.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["role"] != "manager" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_UpdateRole_RejectsOwner(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		roleFn: func(context.Context, string, domain.Role) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"role":"owner"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("tg_2")

	if err := handler.UpdateRole(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
