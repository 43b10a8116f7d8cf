package sms

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// UserStore resolves the destination user for a delivery.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type message struct {
	userID int64
	body   string
}

// Notifier delivers SMS messages off the caller's path. Enqueue never blocks
// and delivery failures are logged, never surfaced: a failed SMS must not
// fail the request that earned the reward.
type Notifier struct {
	gateway Gateway
	users   UserStore
	queue   chan message
	group   *errgroup.Group
	cancel  context.CancelFunc
}

// NewNotifier creates a Notifier with the given queue size and starts
// workerCount delivery workers.
func NewNotifier(gateway Gateway, users UserStore, workerCount, queueSize int) *Notifier {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	n := &Notifier{
		gateway: gateway,
		users:   users,
		queue:   make(chan message, queueSize),
		group:   group,
		cancel:  cancel,
	}

	for i := 0; i < workerCount; i++ {
		group.Go(func() error {
			n.worker(ctx)
			return nil
		})
	}

	return n
}

// Notify queues one SMS for the user. If the queue is full the message is
// dropped with a log entry; the in-app notification is already durable.
func (n *Notifier) Notify(userID int64, body string) {
	select {
	case n.queue <- message{userID: userID, body: body}:
	default:
		slog.Warn("sms queue full, dropping message", "user_id", userID)
	}
}

// Close stops accepting work and waits for in-flight deliveries to finish.
func (n *Notifier) Close() {
	close(n.queue)
	_ = n.group.Wait()
	n.cancel()
}

func (n *Notifier) worker(ctx context.Context) {
	for msg := range n.queue {
		n.deliver(ctx, msg)
	}
}

func (n *Notifier) deliver(ctx context.Context, msg message) {
	lookupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	user, err := n.users.FindByID(lookupCtx, msg.userID)
	if err != nil {
		slog.Error("sms delivery failed: user lookup", "user_id", msg.userID, "error", err)
		return
	}

	accepted, err := n.gateway.Send(user.PhoneNumber, msg.body)
	if err != nil {
		slog.Error("sms delivery failed", "user_id", msg.userID, "error", err)
		return
	}
	if !accepted {
		slog.Warn("sms not accepted by gateway", "user_id", msg.userID)
		return
	}

	slog.Info("sms sent", "user_id", msg.userID)
}
