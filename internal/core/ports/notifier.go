package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// OrderEvent is the plain state-change record emitted once per successful
// transition. Consumers (the WhatsApp/SMS notifier, dashboards) subscribe
// to these; the core never waits on them.
type OrderEvent struct {
	OrderID    string         `json:"order_id"`
	Number     int64          `json:"number"`
	FromStatus string         `json:"from_status"`
	ToStatus   string         `json:"to_status"`
	Actor      string         `json:"actor"`
	ActorID    *string        `json:"actor_id,omitempty"`
	CourierID  *string        `json:"courier_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewOrderEvent builds the event for a transition that just committed.
func NewOrderEvent(o *order.Order, from order.Status, actor order.ActorType, actorID *string) OrderEvent {
	event := OrderEvent{
		OrderID:    o.ID().String(),
		Number:     o.Number(),
		FromStatus: from.String(),
		ToStatus:   o.Status().String(),
		Actor:      actor.String(),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	if id := o.Courier(); id != nil {
		s := id.String()
		event.CourierID = &s
	}
	return event
}

// Notifier is the external message-delivery collaborator. Publishing is
// fire-and-forget: a failure is logged by the adapter and never rolls back
// the state transition it reports.
type Notifier interface {
	PublishOrderChanged(ctx context.Context, event OrderEvent) error
}
