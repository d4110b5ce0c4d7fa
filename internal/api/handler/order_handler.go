package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

// OrderHandler handles HTTP requests for the order registry.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List returns one page of orders, newest first.
//
//	GET /api/orders?limit&offset[&status] -> [order]
func (h *OrderHandler) List(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.Request().Context(), ports.ListOrdersFilter{
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// Get returns a single order with its details payload.
//
//	GET /api/orders/:id -> order
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Create registers a manual order.
//
//	POST /api/orders {client_name, client_phone, address, area, rooms, wall_type, status} -> order
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Address:     req.Address,
		Area:        req.Area,
		Rooms:       req.Rooms,
		WallType:    domain.WallType(req.WallType),
		Status:      domain.OrderStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// UpdateStatus moves an order through the status machine.
//
//	PUT /api/orders/:id/status {status} -> order
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*order))
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}
