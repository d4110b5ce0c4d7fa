package handler

import (
	"time"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// --- Requests ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createOrderRequest struct {
	ClientName  string  `json:"client_name" validate:"required"`
	ClientPhone string  `json:"client_phone"`
	Address     string  `json:"address"`
	Area        float64 `json:"area" validate:"gte=0"`
	Rooms       int     `json:"rooms" validate:"gte=0"`
	WallType    string  `json:"wall_type" validate:"omitempty,oneof=concrete brick gasblock"`
	Status      string  `json:"status" validate:"omitempty,oneof=new"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=new processing work done cancel"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=user manager admin"`
}

// --- Responses ---

// userResponse is the wire shape of a user: snake_case, as the client's
// field mapper expects.
type userResponse struct {
	ID         int64  `json:"id"`
	PlatformID string `json:"platform_id"`
	FirstName  string `json:"first_name"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
}

// orderResponse is the wire shape of an order. The details payload keeps
// its camelCase keys; it is opaque to the backend.
type orderResponse struct {
	ID          int64               `json:"id"`
	ClientName  string              `json:"client_name"`
	ClientPhone string              `json:"client_phone"`
	Address     string              `json:"address"`
	Area        float64             `json:"area"`
	Rooms       int                 `json:"rooms"`
	WallType    string              `json:"wall_type"`
	Status      string              `json:"status"`
	Details     domain.OrderDetails `json:"details"`
	CreatedAt   time.Time           `json:"created_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		PlatformID: u.PlatformID,
		FirstName:  u.FirstName,
		Username:   u.Username,
		Phone:      u.Phone,
		Role:       string(u.Role),
	}
}

func toUserListResponse(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		Address:     o.Address,
		Area:        o.Area,
		Rooms:       o.Rooms,
		WallType:    string(o.WallType),
		Status:      string(o.Status),
		Details:     o.Details,
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderListResponse(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
