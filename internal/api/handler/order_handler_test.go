package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

type stubOrderService struct {
	createFn func(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error)
	listFn   func(ctx context.Context, filter ports.ListOrdersFilter) ([]domain.Order, error)
	getFn    func(ctx context.Context, id int64) (*domain.Order, error)
	statusFn func(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

func (s *stubOrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, input)
}

func (s *stubOrderService) ListOrders(ctx context.Context, filter ports.ListOrdersFilter) ([]domain.Order, error) {
	return s.listFn(ctx, filter)
}

func (s *stubOrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.getFn(ctx, id)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return s.statusFn(ctx, id, status)
}

func TestOrderHandler_List_PassesQuery(t *testing.T) {
	e := newEcho()
	stub := &stubOrderService{
		listFn: func(_ context.Context, f ports.ListOrdersFilter) ([]domain.Order, error) {
			if f.Status != "work" || f.Limit != 20 || f.Offset != 40 {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return []domain.Order{{ID: 3, ClientName: "Dana", Area: 75, Status: domain.StatusWork}}, nil
		},
	}
	handler := NewOrderHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/orders?limit=20&offset=40&status=work", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["client_name"] != "Dana" || resp[0]["area"] != float64(75) || resp[0]["status"] != "work" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestOrderHandler_List_BadLimit(t *testing.T) {
	e := newEcho()
	handler := NewOrderHandler(&stubOrderService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/orders?limit=ten", nil), rec)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOrderHandler_Get_DetailsKeepCamelCase(t *testing.T) {
	e := newEcho()
	stub := &stubOrderService{
		getFn: func(_ context.Context, id int64) (*domain.Order, error) {
			return &domain.Order{
				ID:     id,
				Status: domain.StatusNew,
				Details: domain.OrderDetails{
					BOM:        []domain.BOMItem{{Name: "Socket", Quantity: 14, Unit: "pcs"}},
					Financials: domain.Financials{FinalPrice: 150000, Expenses: []domain.Expense{}},
				},
				CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetPath("/api/orders/:id")
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		ID      int64 `json:"id"`
		Details struct {
			BOM        []map[string]any `json:"bom"`
			Financials map[string]any   `json:"financials"`
		} `json:"details"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 12 || len(resp.Details.BOM) != 1 || resp.Details.Financials["finalPrice"] != float64(150000) {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
	if resp.CreatedAt != "2026-03-01T09:00:00Z" {
		t.Fatalf("unexpected created_at: %s", resp.CreatedAt)
	}
}

func TestOrderHandler_Get_BadID(t *testing.T) {
	e := newEcho()
	handler := NewOrderHandler(&stubOrderService{})

	for _, id := range []string{"abc", "0", "-4"} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("id")
		c.SetParamValues(id)

		err := handler.Get(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %v", id, err)
		}
	}
}

func TestOrderHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubOrderService{
		createFn: func(_ context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
			if in.ClientName != "Dana" || in.Area != 75 || in.Rooms != 3 || in.WallType != domain.WallBrick || in.Status != domain.StatusNew {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Order{ID: 1, ClientName: in.ClientName, Area: in.Area, Rooms: in.Rooms, WallType: in.WallType, Status: domain.StatusNew}, nil
		},
	}
	handler := NewOrderHandler(stub)

	rec := httptest.NewRecorder()
	body := `{"client_name":"Dana","client_phone":"+77000000000","address":"Abay 10","area":75,"rooms":3,"wall_type":"brick","status":"new"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/orders", body), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubOrderService{
		createFn: func(context.Context, ports.CreateOrderInput) (*domain.Order, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewOrderHandler(stub)

	cases := map[string]string{
		`{"area":75}`:                            "client_name is required",
		`{"client_name":"D","wall_type":"wood"}`: "wall_type must be one of: concrete brick gasblock",
		`{"client_name":"D","status":"work"}`:    "status must be one of: new",
		`{"client_name":"D","rooms":-1}`:         "rooms must be at least 0",
	}
	for body, want := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/orders", body), rec)

		err := handler.Create(c)
		if !errors.Is(err, domain.ErrValidation) || err.Error() != want {
			t.Fatalf("%s: expected %q, got %v", body, want, err)
		}
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	e := newEcho()
	stub := &stubOrderService{
		statusFn: func(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
			if id != 7 || status != domain.StatusWork {
				t.Fatalf("unexpected args: %d %s", id, status)
			}
			return &domain.Order{ID: 7, Status: status}, nil
		},
	}
	handler := NewOrderHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"status":"work"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "work" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestOrderHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	e := newEcho()
	handler := NewOrderHandler(&stubOrderService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"status":"archived"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
