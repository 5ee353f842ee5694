package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ContactRequest is one delivery party in a creation request.
type ContactRequest struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. ManualTotal, when
// set, overrides calculated pricing with an operator-quoted final price.
type CreateOrderRequest struct {
	Sender       ContactRequest `json:"sender"`
	Receiver     ContactRequest `json:"receiver"`
	VehicleClass string         `json:"vehicle_class"`
	NightWindow  bool           `json:"night_window,omitempty"`
	ManualTotal  *int64         `json:"manual_total,omitempty"`
}

// OrderResponse is the operator-facing order view, price split included.
type OrderResponse struct {
	ID           string     `json:"id"`
	Number       int64      `json:"number"`
	Status       string     `json:"status"`
	VehicleClass string     `json:"vehicle_class"`
	DistanceKm   float64    `json:"distance_km"`
	Total        int64      `json:"total"`
	Commission   int64      `json:"commission"`
	Payout       int64      `json:"payout"`
	CourierID    *string    `json:"courier_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
}

func orderToResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID().String(),
		Number:       o.Number(),
		Status:       o.Status().String(),
		VehicleClass: o.VehicleClass().String(),
		DistanceKm:   o.DistanceKm(),
		Total:        o.Price().Total(),
		Commission:   o.Price().Commission(),
		Payout:       o.Price().Payout(),
		CreatedAt:    o.CreatedAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
	if id := o.Courier(); id != nil {
		s := id.String()
		resp.CourierID = &s
	}
	return resp
}

// PublicOrderResponse is the sender/receiver-facing view. No commission
// split and no courier identity, only an assignment flag.
type PublicOrderResponse struct {
	Number          int64      `json:"number"`
	Status          string     `json:"status"`
	VehicleClass    string     `json:"vehicle_class"`
	ReceiverAddress string     `json:"receiver_address"`
	DistanceKm      float64    `json:"distance_km"`
	Total           int64      `json:"total"`
	CourierAssigned bool       `json:"courier_assigned"`
	CreatedAt       time.Time  `json:"created_at"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}

func publicOrderToResponse(view queries.GetOrderByNumberQueryResponse) PublicOrderResponse {
	return PublicOrderResponse{
		Number:          view.Number,
		Status:          view.Status,
		VehicleClass:    view.VehicleClass,
		ReceiverAddress: view.ReceiverAddress,
		DistanceKm:      view.DistanceKm,
		Total:           view.TotalPrice,
		CourierAssigned: view.CourierAssigned,
		CreatedAt:       view.CreatedAt,
		DeliveredAt:     view.DeliveredAt,
	}
}

// ClaimableOrderResponse is one row of the courier's job board.
type ClaimableOrderResponse struct {
	ID            string    `json:"id"`
	Number        int64     `json:"number"`
	PickupAddress string    `json:"pickup_address"`
	DropAddress   string    `json:"drop_address"`
	DistanceKm    float64   `json:"distance_km"`
	Payout        int64     `json:"payout"`
	PublishedAt   time.Time `json:"published_at"`
}

// CourierActionRequest carries the acting courier for claim, pickup and
// deliver endpoints.
type CourierActionRequest struct {
	CourierID string `json:"courier_id"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Actor   string `json:"actor"`
	ActorID string `json:"actor_id,omitempty"`
	Note    string `json:"note,omitempty"`
}

// CreateCourierRequest is the body of POST /api/v1/couriers.
type CreateCourierRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleClass string `json:"vehicle_class"`
}

// SetBlockedRequest is the body of POST /api/v1/couriers/:id/blocked.
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// AdjustBalanceRequest is the body of POST /api/v1/couriers/:id/adjustments.
type AdjustBalanceRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

// CourierBalanceResponse is the courier earnings view.
type CourierBalanceResponse struct {
	CourierID       string `json:"courier_id"`
	Balance         int64  `json:"balance"`
	TotalDeliveries int64  `json:"total_deliveries"`
	TotalEarned     int64  `json:"total_earned"`
	PendingPayouts  int64  `json:"pending_payouts"`
}

// LedgerEntryResponse is one signed money movement.
type LedgerEntryResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Amount     int64     `json:"amount"`
	OrderID    *string   `json:"order_id,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// HistoryEntryResponse is one audit row of an order's lifecycle.
type HistoryEntryResponse struct {
	Status     string    `json:"status"`
	Actor      string    `json:"actor"`
	ActorID    *string   `json:"actor_id,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RequestPayoutRequest is the body of POST /api/v1/payouts.
type RequestPayoutRequest struct {
	CourierID string `json:"courier_id"`
	Amount    int64  `json:"amount"`
}

// PayoutResponse is the payout request view.
type PayoutResponse struct {
	ID          string     `json:"id"`
	CourierID   string     `json:"courier_id"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// ReconciliationResponse reports a balance check against the ledger.
type ReconciliationResponse struct {
	CourierID     string `json:"courier_id"`
	CachedBalance int64  `json:"cached_balance"`
	LedgerSum     int64  `json:"ledger_sum"`
	Consistent    bool   `json:"consistent"`
}
