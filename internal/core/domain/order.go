package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusWork       OrderStatus = "work"
	StatusDone       OrderStatus = "done"
	StatusCancel     OrderStatus = "cancel"
)

// StatusAll is the list filter meaning "no status filter".
const StatusAll = "all"

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{StatusNew, StatusProcessing, StatusWork, StatusDone, StatusCancel}

// Valid reports whether s is one of the five known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusWork, StatusDone, StatusCancel:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Every status may move to every other one; done and cancel stay editable.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s.Valid() && next.Valid()
}

// WallType is the dominant wall material of the object being wired.
type WallType string

const (
	WallConcrete WallType = "concrete"
	WallBrick    WallType = "brick"
	WallGasBlock WallType = "gasblock"
)

// Valid reports whether w is a known wall type.
func (w WallType) Valid() bool {
	switch w {
	case WallConcrete, WallBrick, WallGasBlock:
		return true
	}
	return false
}

// BOMItem is one bill-of-materials line. Name is the edit key.
type BOMItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Expense is a single cost booked against an order.
type Expense struct {
	ID       string    `json:"id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// Financials is the money side of an order's detail payload.
type Financials struct {
	FinalPrice    float64   `json:"finalPrice"`
	TotalExpenses float64   `json:"totalExpenses"`
	NetProfit     float64   `json:"netProfit"`
	Expenses      []Expense `json:"expenses"`
}

// Recalculate derives TotalExpenses and NetProfit from FinalPrice and Expenses.
func (f *Financials) Recalculate() {
	var total float64
	for _, e := range f.Expenses {
		total += e.Amount
	}
	f.TotalExpenses = total
	f.NetProfit = f.FinalPrice - total
}

// OrderDetails is the free-form nested payload of an order.
type OrderDetails struct {
	BOM        []BOMItem  `json:"bom"`
	Financials Financials `json:"financials"`
}

// Order is the application-shape lead/job record.
type Order struct {
	ID          int64        `json:"id"`
	ClientName  string       `json:"clientName"`
	ClientPhone string       `json:"clientPhone"`
	Address     string       `json:"address"`
	Area        float64      `json:"area"`
	Rooms       int          `json:"rooms"`
	WallType    WallType     `json:"wallType"`
	Status      OrderStatus  `json:"status"`
	Details     OrderDetails `json:"details"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NormalizeBOM applies edit-by-name semantics: a later line with the same
// name replaces the earlier one in place. Blank names are dropped.
func NormalizeBOM(items []BOMItem) []BOMItem {
	out := make([]BOMItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		if i, ok := index[it.Name]; ok {
			out[i] = it
			continue
		}
		index[it.Name] = len(out)
		out = append(out, it)
	}
	return out
}

// OrderForm carries the data an operator enters to create a manual order.
// Numeric fields arrive as typed text and are coerced by the gateway.
type OrderForm struct {
	ClientName  string
	ClientPhone string
	Address     string
	Area        string
	Rooms       string
	WallType    WallType
}
