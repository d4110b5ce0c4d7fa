package gateway

import (
	"strconv"
	"strings"
	"time"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// --- Wire → application ---

// MapUserFromWire converts a backend user to the application shape. Missing
// fields map to zero values; an unknown role maps to domain.RoleUser.
func MapUserFromWire(w WireUser) domain.User {
	return domain.User{
		ID:         int64(w.ID),
		PlatformID: string(w.PlatformID),
		FirstName:  string(w.FirstName),
		Username:   string(w.Username),
		Phone:      string(w.Phone),
		Role:       domain.ParseRole(string(w.Role)),
	}
}

// MapOrderFromWire converts a backend order to the application shape.
// Numeric fields are already coerced by the wire types; an absent BOM maps
// to an empty list and absent financials to zeroed financials.
func MapOrderFromWire(w WireOrder) domain.Order {
	status := domain.OrderStatus(w.Status)
	if !status.Valid() {
		status = domain.StatusNew
	}
	wall := domain.WallType(w.WallType)
	if !wall.Valid() {
		wall = ""
	}

	o := domain.Order{
		ID:          int64(w.ID),
		ClientName:  string(w.ClientName),
		ClientPhone: string(w.ClientPhone),
		Address:     string(w.Address),
		Area:        float64(w.Area),
		Rooms:       int(w.Rooms),
		WallType:    wall,
		Status:      status,
		CreatedAt:   time.Time(w.CreatedAt),
		Details: domain.OrderDetails{
			BOM:        []domain.BOMItem{},
			Financials: domain.Financials{Expenses: []domain.Expense{}},
		},
	}

	if w.Details == nil {
		return o
	}
	if w.Details.BOM != nil {
		o.Details.BOM = toBOM(w.Details.BOM)
	}
	if f := w.Details.Financials; f != nil {
		o.Details.Financials = domain.Financials{
			FinalPrice:    float64(f.FinalPrice),
			TotalExpenses: float64(f.TotalExpenses),
			NetProfit:     float64(f.NetProfit),
			Expenses:      toExpenses(f.Expenses),
		}
	}
	return o
}

func toBOM(items []WireBOMItem) []domain.BOMItem {
	out := make([]domain.BOMItem, len(items))
	for i, it := range items {
		out[i] = domain.BOMItem{
			Name:     string(it.Name),
			Quantity: float64(it.Quantity),
			Unit:     string(it.Unit),
		}
	}
	return out
}

func toExpenses(items []WireExpense) []domain.Expense {
	out := make([]domain.Expense, len(items))
	for i, e := range items {
		out[i] = domain.Expense{
			ID:       string(e.ID),
			Amount:   float64(e.Amount),
			Category: string(e.Category),
			Comment:  string(e.Comment),
			Date:     time.Time(e.Date),
		}
	}
	return out
}

func userFromBody(raw []byte) domain.User {
	var w WireUser
	decodeObject(raw, &w)
	return MapUserFromWire(w)
}

func orderFromBody(raw []byte) domain.Order {
	var w WireOrder
	decodeObject(raw, &w)
	return MapOrderFromWire(w)
}

// --- Application → wire ---

func toCreateOrderRequest(f domain.OrderForm) createOrderRequest {
	return createOrderRequest{
		ClientName:  strings.TrimSpace(f.ClientName),
		ClientPhone: strings.TrimSpace(f.ClientPhone),
		Address:     strings.TrimSpace(f.Address),
		Area:        leadingInt(f.Area),
		Rooms:       leadingInt(f.Rooms),
		WallType:    string(f.WallType),
		Status:      string(domain.StatusNew),
	}
}

// leadingInt reads the integer at the start of s the way an operator
// means it: "75" → 75, "75.6" → 75, "80 m2" → 80, "" or "abc" → 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
