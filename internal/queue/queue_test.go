package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pinboard/internal/queue"
	"pinboard/internal/storage"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, msg)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
	storage.ImageStore
}

func (m *MockImageStore) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func TestDiscarder_PublishesJob(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", "", queue.ImageCleanupQueue, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var job queue.CleanupJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			return false
		}
		return job.Path == "pins/2024/03/07/a.jpg" && msg.DeliveryMode == amqp.Persistent
	})).Return(nil)

	err := queue.NewDiscarder(pub).Discard(context.Background(), "pins/2024/03/07/a.jpg")

	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestDiscarder_SkipsEmptyPath(t *testing.T) {
	pub := new(MockPublisher)

	err := queue.NewDiscarder(pub).Discard(context.Background(), "")

	assert.NoError(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCleanup(t *testing.T) {
	store := new(MockImageStore)
	store.On("Remove", mock.Anything, "pins/2024/03/07/a.jpg").Return(nil)

	err := queue.HandleCleanup(context.Background(), []byte(`{"path":"pins/2024/03/07/a.jpg"}`), store)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestHandleCleanup_BadBody(t *testing.T) {
	store := new(MockImageStore)

	err := queue.HandleCleanup(context.Background(), []byte(`not json`), store)

	assert.Error(t, err)
	store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

type MockAcknowledger struct {
	mock.Mock
}

func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	return m.Called(tag, multiple).Error(0)
}

func (m *MockAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	return m.Called(tag, multiple, requeue).Error(0)
}

func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return m.Called(tag, requeue).Error(0)
}

func delivery(ack amqp.Acknowledger, path string) amqp.Delivery {
	return amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  7,
		Body:         []byte(`{"path":"` + path + `"}`),
	}
}

func TestSettle_AcksDoneJob(t *testing.T) {
	ack := new(MockAcknowledger)
	store := new(MockImageStore)
	store.On("Remove", mock.Anything, "pins/a.jpg").Return(nil)
	ack.On("Ack", uint64(7), false).Return(nil)

	queue.Settle(context.Background(), delivery(ack, "pins/a.jpg"), store)

	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Nack", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettle_DropsFailedJob(t *testing.T) {
	ack := new(MockAcknowledger)
	store := new(MockImageStore)
	store.On("Remove", mock.Anything, "pins/a.jpg").Return(errors.New("access denied"))
	ack.On("Nack", uint64(7), false, false).Return(nil)

	queue.Settle(context.Background(), delivery(ack, "pins/a.jpg"), store)

	ack.AssertExpectations(t)
}

func TestSettle_RequeuesJobInterruptedByShutdown(t *testing.T) {
	ack := new(MockAcknowledger)
	store := new(MockImageStore)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store.On("Remove", mock.Anything, "pins/a.jpg").Return(context.Canceled)
	ack.On("Nack", uint64(7), false, true).Return(nil)

	queue.Settle(ctx, delivery(ack, "pins/a.jpg"), store)

	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}
