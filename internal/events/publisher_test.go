package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

type fakeChannel struct {
	block      bool
	declared   []string
	declareErr error
	publishErr error
	published  []amqp091.Publishing
	keys       []string
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testReceipt() *models.Receipt {
	return &models.Receipt{
		ID: "r-1",
		Balances: models.BalanceSheet{
			People: []string{"A", "B", "C"},
		},
		Transfers: []models.Transfer{
			{From: "B", To: "A", Amount: 1200},
			{From: "C", To: "A", Amount: 800},
		},
		TransactionCount: 1,
		Total:            3500,
	}
}

func TestPublishSettlement(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "settleup", "settlement.computed")
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, p.PublishSettlement(context.Background(), testReceipt()))

	assert.Equal(t, []string{"settleup:topic"}, ch.declared)
	assert.Equal(t, []string{"settleup/settlement.computed"}, ch.keys)
	require.Len(t, ch.published, 1)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)

	var event SettlementComputed
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, "r-1", event.ReceiptID)
	assert.Equal(t, 3, event.People)
	assert.Equal(t, "35.00", event.Total)
	assert.False(t, event.Settled)
	assert.Equal(t, []Transfer{{From: "B", To: "A", Amount: "12.00"}, {From: "C", To: "A", Amount: "8.00"}}, event.Transfers)
}

func TestPublishSettlementError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newPublisher(ch, "settleup", "settlement.computed")
	require.NoError(t, err)

	err = p.PublishSettlement(context.Background(), testReceipt())
	assert.ErrorContains(t, err, "publish message")
}

func TestNewPublisherDeclareFailure(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newPublisher(ch, "settleup", "settlement.computed")
	assert.ErrorContains(t, err, "declare exchange")
	assert.True(t, ch.closed)
}

func TestNewSettlementComputedSettled(t *testing.T) {
	r := &models.Receipt{Balances: models.BalanceSheet{People: []string{"A"}}}
	event := NewSettlementComputed(r, time.Now())
	assert.True(t, event.Settled)
	assert.Empty(t, event.Transfers)
	assert.Equal(t, "0.00", event.Total)
}

func TestPublishSettlementStalledBroker(t *testing.T) {
	ch := &fakeChannel{block: true}
	p, err := newPublisher(ch, "settleup", "settlement.computed")
	require.NoError(t, err)
	p.timeout = 20 * time.Millisecond

	start := time.Now()
	err = p.PublishSettlement(context.Background(), testReceipt())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewPublisherDefaultTimeout(t *testing.T) {
	p, err := newPublisher(&fakeChannel{}, "settleup", "settlement.computed")
	require.NoError(t, err)
	assert.Equal(t, DefaultPublishTimeout, p.timeout)
}
