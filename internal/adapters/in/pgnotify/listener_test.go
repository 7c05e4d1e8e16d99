package pgnotify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"medshop/internal/core/ports"
	"medshop/internal/pkg/metrics"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ch     chan *pq.Notification
	closed bool
	mu     sync.Mutex
}

func (f *fakeSource) NotificationChannel() <-chan *pq.Notification { return f.ch }
func (f *fakeSource) Ping() error                                  { return nil }
func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type recordingForwarder struct {
	mu     sync.Mutex
	events []ports.CareEvent
	err    error
}

func (r *recordingForwarder) Publish(_ context.Context, event ports.CareEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingForwarder) received() []ports.CareEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.CareEvent(nil), r.events...)
}

func notification(t *testing.T, event ports.CareEvent) *pq.Notification {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return &pq.Notification{Channel: "order_care_events", Extra: string(payload)}
}

func TestConsume_ForwardsEventsAndSkipsGarbage(t *testing.T) {
	m := metrics.NewUnregistered()
	forwarder := &recordingForwarder{err: errors.New("broker down")}
	l := NewListener("", "order_care_events", forwarder, m, slog.New(slog.DiscardHandler))
	src := &fakeSource{ch: make(chan *pq.Notification, 4)}

	src.ch <- nil
	src.ch <- &pq.Notification{Extra: "{not json"}
	src.ch <- notification(t, ports.CareEvent{Kind: ports.CareEventEscalated, OrderNumber: "ORD-1", EscalationLevel: 1})
	src.ch <- notification(t, ports.CareEvent{Kind: ports.CareEventUnassigned, OrderNumber: "ORD-2"})
	close(src.ch)

	require.NoError(t, l.consume(t.Context(), src))

	got := forwarder.received()
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-1", got[0].OrderNumber)
	assert.Equal(t, ports.CareEventUnassigned, got[1].Kind)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CareEvents.WithLabelValues("order.escalated")), 0)
	assert.True(t, src.closed)
}

func TestConsume_StopsOnContextCancel(t *testing.T) {
	l := NewListener("", "order_care_events", nil, metrics.NewUnregistered(), slog.New(slog.DiscardHandler))
	src := &fakeSource{ch: make(chan *pq.Notification)}
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() { done <- l.consume(ctx, src) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consume did not stop after cancel")
	}
}
