package http

import (
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
)

// ProfileResponse is the body of GET /api/v1/me.
type ProfileResponse struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
	IsSubAdmin  bool   `json:"is_sub_admin"`
	IsSoporte   bool   `json:"is_soporte"`
	CanDispatch bool   `json:"can_dispatch"`
}

type OrderResponse struct {
	ID              string     `json:"id"`
	Number          string     `json:"number"`
	Status          string     `json:"status"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerAddress string     `json:"customer_address"`
	RiderID         *string    `json:"rider_id"`
	RiderName       string     `json:"rider_name,omitempty"`
	TotalCents      int64      `json:"total_cents"`
	Urgent          bool       `json:"urgent"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	AssignedAt      *time.Time `json:"assigned_at"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	CancelledAt     *time.Time `json:"cancelled_at"`
}

type OrdersPageResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RiderResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	Vehicle      string            `json:"vehicle"`
	Status       string            `json:"status"`
	Active       bool              `json:"is_active"`
	Location     *LocationResponse `json:"location"`
	Deliveries   int               `json:"total_deliveries"`
	Rating       float64           `json:"rating"`
	ActiveOrders int               `json:"active_orders"`
}

type MetricsResponse struct {
	OrdersByStatus     map[string]int `json:"orders_by_status"`
	OrdersToday        int            `json:"orders_today"`
	DeliveredToday     int            `json:"delivered_today"`
	RevenueTodayCents  int64          `json:"revenue_today_cents"`
	RidersByStatus     map[string]int `json:"riders_by_status"`
	ActiveRiders       int            `json:"active_riders"`
	UrgentPendingCount int            `json:"urgent_pending"`
}

type AssignRequest struct {
	RiderID string `json:"rider_id"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func profileResponseOf(p queries.ProfileView) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID.String(),
		Role:        p.Role.String(),
		FullName:    p.FullName,
		Email:       p.Email,
		IsAdmin:     p.IsAdmin,
		IsSubAdmin:  p.IsSubAdmin,
		IsSoporte:   p.IsSoporte,
		CanDispatch: p.CanDispatch,
	}
}

func orderResponseOf(o queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:              o.ID.String(),
		Number:          o.Number,
		Status:          o.Status.String(),
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		RiderID:         optionalString(o.RiderID),
		RiderName:       o.RiderName,
		TotalCents:      o.TotalCents,
		Urgent:          o.Urgent,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		AssignedAt:      o.AssignedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
	}
}

func riderResponseOf(r queries.RiderView) RiderResponse {
	resp := RiderResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		Vehicle:      r.Vehicle,
		Status:       r.Status.String(),
		Active:       r.Active,
		Deliveries:   r.Deliveries,
		Rating:       r.Rating,
		ActiveOrders: r.ActiveOrders,
	}
	if r.Location != nil {
		resp.Location = &LocationResponse{Lat: r.Location.Lat(), Lng: r.Location.Lng()}
	}
	return resp
}

func ridersResponseOf(riders []queries.RiderView) []RiderResponse {
	response := make([]RiderResponse, len(riders))
	for i, r := range riders {
		response[i] = riderResponseOf(r)
	}
	return response
}

func metricsResponseOf(m queries.DashboardMetrics) MetricsResponse {
	resp := MetricsResponse{
		OrdersByStatus:     make(map[string]int, len(m.OrdersByStatus)),
		OrdersToday:        m.OrdersToday,
		DeliveredToday:     m.DeliveredToday,
		RevenueTodayCents:  m.RevenueTodayCents,
		RidersByStatus:     make(map[string]int, len(m.RidersByStatus)),
		ActiveRiders:       m.ActiveRiders,
		UrgentPendingCount: m.UrgentPendingCount,
	}
	for s, n := range m.OrdersByStatus {
		resp.OrdersByStatus[s.String()] = n
	}
	for s, n := range m.RidersByStatus {
		resp.RidersByStatus[s.String()] = n
	}
	return resp
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
