package ports

import (
	"context"
	"time"
)

// CareEventKind classifies customer-care notifications.
type CareEventKind string

const (
	CareEventEscalated  CareEventKind = "order.escalated"
	CareEventUnassigned CareEventKind = "order.unassigned"
	CareEventOverride   CareEventKind = "order.override"
	CareEventReassigned CareEventKind = "order.reassigned"
)

// CareEvent is what customer care is told about an order.
type CareEvent struct {
	Kind            CareEventKind `json:"kind"`
	OrderID         string        `json:"order_id"`
	OrderNumber     string        `json:"order_number"`
	Status          string        `json:"status"`
	EscalationLevel int           `json:"escalation_level"`
	DistributorID   string        `json:"distributor_id,omitempty"`
	Actor           string        `json:"actor,omitempty"`
	Detail          string        `json:"detail,omitempty"`
	At              time.Time     `json:"at"`
}

// CareNotifier publishes customer-care events. Implementations bound to a
// unit of work deliver the event only if the transaction commits.
type CareNotifier interface {
	Notify(ctx context.Context, event CareEvent) error
}
