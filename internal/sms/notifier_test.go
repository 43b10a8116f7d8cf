package sms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchcard-app/punchcard/internal/domain"
)

type fakeGateway struct {
	mu       sync.Mutex
	sent     []string
	accepted bool
	err      error
}

func (g *fakeGateway) Send(to, _ string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	g.sent = append(g.sent, to)
	return g.accepted, nil
}

func (g *fakeGateway) sentTo() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.sent...)
}

type fakeUserStore struct {
	err error
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: id, PhoneNumber: "+15550001234"}, nil
}

func TestNotifierDelivers(t *testing.T) {
	gateway := &fakeGateway{accepted: true}
	notifier := NewNotifier(gateway, &fakeUserStore{}, 2, 8)

	notifier.Notify(1, "you earned a reward")
	notifier.Notify(2, "you earned a reward")
	notifier.Close()

	require.Len(t, gateway.sentTo(), 2)
	assert.Equal(t, "+15550001234", gateway.sentTo()[0])
}

func TestNotifierSwallowsGatewayError(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("twilio unreachable")}
	notifier := NewNotifier(gateway, &fakeUserStore{}, 1, 8)

	// Must not panic or propagate; the reward is already durable.
	notifier.Notify(1, "you earned a reward")
	notifier.Close()

	assert.Empty(t, gateway.sentTo())
}

func TestNotifierSwallowsLookupError(t *testing.T) {
	gateway := &fakeGateway{accepted: true}
	notifier := NewNotifier(gateway, &fakeUserStore{err: domain.ErrNotFound}, 1, 8)

	notifier.Notify(1, "you earned a reward")
	notifier.Close()

	assert.Empty(t, gateway.sentTo())
}

func TestNotifierDropsWhenQueueFull(t *testing.T) {
	gateway := &fakeGateway{accepted: true}

	release := make(chan struct{})
	blocking := &blockingGateway{inner: gateway, release: release}
	notifier := NewNotifier(blocking, &fakeUserStore{}, 1, 1)

	notifier.Notify(1, "first")  // picked up by the worker
	notifier.Notify(2, "second") // fills the queue
	notifier.Notify(3, "third")  // dropped, must not block

	close(release)
	notifier.Close()

	assert.LessOrEqual(t, len(gateway.sentTo()), 2)
}

type blockingGateway struct {
	inner   Gateway
	release chan struct{}
}

func (g *blockingGateway) Send(to, body string) (bool, error) {
	<-g.release
	return g.inner.Send(to, body)
}
