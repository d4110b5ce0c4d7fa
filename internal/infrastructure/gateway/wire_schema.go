package gateway

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Wire-shape records. Field names follow the backend exactly; nothing
// outside this package reads or writes these keys.
//
// The flex* types make decoding total: a value of the wrong JSON type
// decodes to the zero value instead of failing the whole record.

// flexNumber accepts a JSON number or a numeric string. Anything else,
// including NaN and infinities, decodes to 0.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Num
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err == nil {
			f = v
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	*n = flexNumber(f)
	return nil
}

// flexString accepts a JSON string, number or bool; null and containers
// decode to "".
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	switch r.Type {
	case gjson.String:
		*s = flexString(r.Str)
	case gjson.Number, gjson.True, gjson.False:
		*s = flexString(r.Raw)
	default:
		*s = ""
	}
	return nil
}

// flexTime accepts an RFC 3339 string; anything else is the zero time.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	*t = flexTime{}
	if r.Type != gjson.String {
		return nil
	}
	if v, err := time.Parse(time.RFC3339Nano, r.Str); err == nil {
		*t = flexTime(v)
	}
	return nil
}

// WireUser is a user as the backend sends it.
type WireUser struct {
	ID         flexNumber `json:"id"`
	PlatformID flexString `json:"platform_id"`
	FirstName  flexString `json:"first_name"`
	Username   flexString `json:"username"`
	Phone      flexString `json:"phone"`
	Role       flexString `json:"role"`
}

// WireBOMItem is one bill-of-materials line inside details.bom.
type WireBOMItem struct {
	Name     flexString `json:"name"`
	Quantity flexNumber `json:"quantity"`
	Unit     flexString `json:"unit"`
}

// WireExpense is one entry of details.financials.expenses.
type WireExpense struct {
	ID       flexString `json:"id"`
	Amount   flexNumber `json:"amount"`
	Category flexString `json:"category"`
	Comment  flexString `json:"comment"`
	Date     flexTime   `json:"date"`
}

// WireFinancials is details.financials. The details payload is written by
// the app itself, so its keys are the application's.
type WireFinancials struct {
	FinalPrice    flexNumber    `json:"finalPrice"`
	TotalExpenses flexNumber    `json:"totalExpenses"`
	NetProfit     flexNumber    `json:"netProfit"`
	Expenses      []WireExpense `json:"expenses"`
}

// WireDetails is the free-form details payload of an order.
type WireDetails struct {
	BOM        []WireBOMItem   `json:"bom"`
	Financials *WireFinancials `json:"financials"`
}

// UnmarshalJSON ignores a details value that is not an object, and a
// bom or financials member of the wrong shape. A details object stored as
// JSON text is unwrapped first.
func (d *WireDetails) UnmarshalJSON(b []byte) error {
	*d = WireDetails{}
	r := gjson.ParseBytes(b)
	if r.Type == gjson.String && gjson.Valid(r.Str) {
		r = gjson.Parse(r.Str)
	}
	if !r.IsObject() {
		return nil
	}
	if bom := r.Get("bom"); bom.IsArray() {
		for _, item := range bom.Array() {
			if !item.IsObject() {
				continue
			}
			var it WireBOMItem
			_ = json.Unmarshal([]byte(item.Raw), &it)
			d.BOM = append(d.BOM, it)
		}
		if d.BOM == nil {
			d.BOM = []WireBOMItem{}
		}
	}
	if fin := r.Get("financials"); fin.IsObject() {
		var f WireFinancials
		f.FinalPrice = numberOf(fin.Get("finalPrice"))
		f.TotalExpenses = numberOf(fin.Get("totalExpenses"))
		f.NetProfit = numberOf(fin.Get("netProfit"))
		if exp := fin.Get("expenses"); exp.IsArray() {
			for _, item := range exp.Array() {
				if !item.IsObject() {
					continue
				}
				var e WireExpense
				_ = json.Unmarshal([]byte(item.Raw), &e)
				f.Expenses = append(f.Expenses, e)
			}
		}
		d.Financials = &f
	}
	return nil
}

func numberOf(r gjson.Result) flexNumber {
	var n flexNumber
	if r.Exists() {
		_ = n.UnmarshalJSON([]byte(r.Raw))
	}
	return n
}

// WireOrder is an order as the backend sends it.
type WireOrder struct {
	ID          flexNumber   `json:"id"`
	ClientName  flexString   `json:"client_name"`
	ClientPhone flexString   `json:"client_phone"`
	Address     flexString   `json:"address"`
	Area        flexNumber   `json:"area"`
	Rooms       flexNumber   `json:"rooms"`
	WallType    flexString   `json:"wall_type"`
	Status      flexString   `json:"status"`
	Details     *WireDetails `json:"details"`
	CreatedAt   flexTime     `json:"created_at"`
}

// decodeObject fills dst from raw when raw is a JSON object and leaves it
// zero otherwise.
func decodeObject(raw []byte, dst any) {
	if !gjson.ParseBytes(raw).IsObject() {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// decodeList returns the raw elements of a JSON array body. Non-array
// bodies (such as the {} of an empty response) yield no elements.
func decodeList(raw []byte) [][]byte {
	r := gjson.ParseBytes(bytes.TrimSpace(raw))
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([][]byte, 0, len(items))
	for _, it := range items {
		out = append(out, []byte(it.Raw))
	}
	return out
}

// --- Outbound request bodies ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createOrderRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Address     string `json:"address"`
	Area        int    `json:"area"`
	Rooms       int    `json:"rooms"`
	WallType    string `json:"wall_type"`
	Status      string `json:"status"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type roleRequest struct {
	Role string `json:"role"`
}
