package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

type mockStore struct {
	m         sync.Mutex
	events    []*domain.OrderEvent
	getErr    error
	markErr   error
	processed []string
}

func (m *mockStore) GetUnprocessedEvents(context.Context, int) ([]*domain.OrderEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var unprocessed []*domain.OrderEvent
	for _, ev := range m.events {
		if !ev.Processed {
			unprocessed = append(unprocessed, ev)
		}
	}
	return unprocessed, nil
}

func (m *mockStore) MarkEventAsProcessed(_ context.Context, eventID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	for _, ev := range m.events {
		if ev.ID == eventID {
			ev.Processed = true
		}
	}
	m.processed = append(m.processed, eventID)
	return nil
}

func (m *mockStore) processedCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.processed)
}

type mockWriter struct {
	messages []kafka.Message
	err      error
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func newTestPoller(store EventStore, writer Writer) *OutboxPoller {
	return &OutboxPoller{
		timeout:   time.Second,
		eventTick: 10 * time.Millisecond,
		store:     store,
		writer:    writer,
	}
}

func testEvent(id string) *domain.OrderEvent {
	return &domain.OrderEvent{
		ID:        id,
		OrderID:   1,
		UserID:    42,
		Total:     230,
		CreatedAt: time.Now().UTC(),
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	store := &mockStore{events: []*domain.OrderEvent{testEvent("ev-1"), testEvent("ev-2")}}
	writer := &mockWriter{}

	newTestPoller(store, writer).processUnpublishedEvents(context.Background())

	require.Len(t, writer.messages, 2)
	assert.Equal(t, []string{"ev-1", "ev-2"}, store.processed)

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, "ev-1", decoded.ID)
	assert.Equal(t, int64(42), decoded.UserID)
	assert.Equal(t, []byte("ev-1"), writer.messages[0].Key)
}

func TestProcessUnpublishedEvents_PublishFailure_LeavesEventUnprocessed(t *testing.T) {
	store := &mockStore{events: []*domain.OrderEvent{testEvent("ev-1")}}
	writer := &mockWriter{err: fmt.Errorf("broker unavailable")}

	newTestPoller(store, writer).processUnpublishedEvents(context.Background())

	assert.Empty(t, store.processed)
	assert.False(t, store.events[0].Processed)
}

func TestProcessUnpublishedEvents_MarkFailure_StillPublishesRest(t *testing.T) {
	store := &mockStore{
		events:  []*domain.OrderEvent{testEvent("ev-1"), testEvent("ev-2")},
		markErr: fmt.Errorf("database error"),
	}
	writer := &mockWriter{}

	newTestPoller(store, writer).processUnpublishedEvents(context.Background())

	assert.Len(t, writer.messages, 2)
	assert.Empty(t, store.processed)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	store := &mockStore{events: []*domain.OrderEvent{testEvent("ev-1")}}
	writer := &mockWriter{}
	poller := newTestPoller(store, writer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.processedCount() > 0
	}, time.Second, 10*time.Millisecond, "event was not published")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
