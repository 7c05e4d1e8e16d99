package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"medshop/internal/core/ports"

	"gorm.io/gorm"
)

// CareEventsChannel is the LISTEN/NOTIFY channel customer-care events are
// published on.
const CareEventsChannel = "order_care_events"

// PgCareNotifier publishes care events with pg_notify. Called on a
// transaction handle, postgres delivers the event only if that transaction
// commits.
type PgCareNotifier struct {
	db      *gorm.DB
	channel string
}

func NewPgCareNotifier(db *gorm.DB, channel string) *PgCareNotifier {
	return &PgCareNotifier{db: db, channel: channel}
}

func (n *PgCareNotifier) Notify(ctx context.Context, event ports.CareEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode care event %s: %w", event.Kind, err)
	}
	return n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", n.channel, string(payload)).Error
}
