// Package pgnotify consumes customer-care events published with pg_notify
// and hands them to the care desk: every event is logged, counted and,
// when a forwarder is configured, relayed to the message broker.
package pgnotify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"medshop/internal/core/ports"
	"medshop/internal/pkg/metrics"

	"github.com/lib/pq"
)

// Forwarder relays a care event to an external system.
type Forwarder interface {
	Publish(ctx context.Context, event ports.CareEvent) error
}

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// notificationSource is the part of *pq.Listener the loop needs.
type notificationSource interface {
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

type Listener struct {
	dsn       string
	channel   string
	forwarder Forwarder
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewListener builds a listener for channel. forwarder may be nil.
func NewListener(dsn, channel string, forwarder Forwarder, m *metrics.Metrics, logger *slog.Logger) *Listener {
	return &Listener{
		dsn:       dsn,
		channel:   channel,
		forwarder: forwarder,
		metrics:   m,
		logger:    logger.With("component", "care_listener", "channel", channel),
	}
}

// Run listens until ctx is cancelled. The pq listener reconnects on its own;
// events published while it is disconnected are not replayed.
func (l *Listener) Run(ctx context.Context) error {
	pl := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, l.reportEvent)
	if err := pl.Listen(l.channel); err != nil {
		_ = pl.Close()
		return err
	}
	l.logger.Info("Listening for care events")
	return l.consume(ctx, pl)
}

func (l *Listener) consume(ctx context.Context, src notificationSource) error {
	defer func() { _ = src.Close() }()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Care listener stopped")
			return nil
		case n, ok := <-src.NotificationChannel():
			if !ok {
				return nil
			}
			// A nil notification follows a reconnect.
			if n == nil {
				continue
			}
			l.handle(ctx, n.Extra)
		case <-ticker.C:
			if err := src.Ping(); err != nil {
				l.logger.Warn("Care listener ping failed", "error", err)
			}
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	var event ports.CareEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		l.logger.Error("Malformed care event", "error", err, "payload", payload)
		return
	}

	l.metrics.CareEvents.WithLabelValues(string(event.Kind)).Inc()
	l.logger.Warn("Customer care attention needed",
		"kind", event.Kind,
		"order_id", event.OrderID,
		"order_number", event.OrderNumber,
		"status", event.Status,
		"escalation_level", event.EscalationLevel,
		"distributor_id", event.DistributorID,
		"actor", event.Actor,
		"detail", event.Detail,
	)

	if l.forwarder == nil {
		return
	}
	if err := l.forwarder.Publish(ctx, event); err != nil {
		l.logger.Error("Failed to forward care event", "error", err, "order_number", event.OrderNumber)
	}
}

func (l *Listener) reportEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.logger.Debug("Care listener connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("Care listener disconnected", "error", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("Care listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("Care listener connection attempt failed", "error", err)
	}
}
