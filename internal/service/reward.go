package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// MealStore is the meal data access interface consumed by RewardService.
type MealStore interface {
	CountVerified(ctx context.Context, userID int64, since time.Time) (int, error)
}

// RewardStore is the reward data access interface consumed by RewardService.
type RewardStore interface {
	CountIssuedSince(ctx context.Context, userID int64, windowEndAfter time.Time) (int, error)
	Insert(ctx context.Context, reward domain.Reward) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Reward, error)
	Redeem(ctx context.Context, id int64, at time.Time) (*domain.Reward, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reward, error)
}

// NotificationStore is the notification insert interface consumed by RewardService.
type NotificationStore interface {
	Insert(ctx context.Context, n domain.Notification) (int64, error)
}

// Transactor runs a function inside a transaction serialized per user, so
// that the eligibility check and the reward insert are atomic relative to
// concurrent evaluations for the same user.
type Transactor interface {
	WithinUserTx(ctx context.Context, userID int64, fn func(ctx context.Context) error) error
}

// Notifier queues an SMS without blocking the caller.
type Notifier interface {
	Notify(userID int64, body string)
}

// RewardConfig holds the eligibility parameters.
type RewardConfig struct {
	// Threshold is the number of verified meals per reward.
	Threshold int
	// Window is the trailing period over which verified meals count.
	Window time.Duration
}

// rewardMessage is the congratulatory text stored in-app and sent by SMS.
const rewardMessage = "Congratulations! You've earned a free meal. Show this at the counter to redeem it."

// RewardService decides, on each meal-verification event, whether the user
// has newly crossed a verified-meal threshold, and if so issues exactly one
// reward and one notification.
type RewardService struct {
	meals   MealStore
	rewards RewardStore
	notes   NotificationStore
	tx      Transactor
	sms     Notifier
	cfg     RewardConfig
	now     func() time.Time
}

// NewRewardService creates a new RewardService. now may be nil, in which case
// the system clock is used.
func NewRewardService(meals MealStore, rewards RewardStore, notes NotificationStore, tx Transactor, sms Notifier, cfg RewardConfig, now func() time.Time) *RewardService {
	if now == nil {
		now = time.Now
	}
	return &RewardService{
		meals:   meals,
		rewards: rewards,
		notes:   notes,
		tx:      tx,
		sms:     sms,
		cfg:     cfg,
		now:     now,
	}
}

// EvaluateResult reports the outcome of an eligibility evaluation.
type EvaluateResult struct {
	Issued   bool  `json:"issued"`
	RewardID int64 `json:"reward_id,omitempty"`
}

// Evaluate recomputes the user's trailing-window eligibility and issues at
// most one new reward. It must be invoked once per pending -> verified
// transition; callers that batch confirmations invoke it once per meal so
// every crossing is caught.
//
// The whole check-and-insert runs inside a per-user transaction: concurrent
// evaluations for one user serialize, different users proceed in parallel.
// The SMS is dispatched after commit and never affects the result.
func (s *RewardService) Evaluate(ctx context.Context, userID int64) (EvaluateResult, error) {
	now := s.now().UTC()
	windowStart := now.Add(-s.cfg.Window)

	var result EvaluateResult
	err := s.tx.WithinUserTx(ctx, userID, func(ctx context.Context) error {
		verified, err := s.meals.CountVerified(ctx, userID, windowStart)
		if err != nil {
			return fmt.Errorf("count verified meals: %w", err)
		}

		deserved := verified / s.cfg.Threshold

		issued, err := s.rewards.CountIssuedSince(ctx, userID, windowStart)
		if err != nil {
			return fmt.Errorf("count issued rewards: %w", err)
		}

		if issued >= deserved {
			return nil
		}

		// One reward per invocation: each crossing is caught by its own
		// verification event.
		rewardID, err := s.rewards.Insert(ctx, domain.Reward{
			UserID:      userID,
			Status:      domain.RewardStatusEarned,
			EarnedAt:    now,
			WindowStart: windowStart,
			WindowEnd:   now,
		})
		if err != nil {
			return fmt.Errorf("insert reward: %w", err)
		}

		if _, err := s.notes.Insert(ctx, domain.Notification{
			UserID:  userID,
			Message: rewardMessage,
		}); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}

		result = EvaluateResult{Issued: true, RewardID: rewardID}
		return nil
	})
	if err != nil {
		return EvaluateResult{}, err
	}

	if result.Issued {
		slog.Info("reward issued",
			"user_id", userID,
			"reward_id", result.RewardID,
			"window_start", windowStart,
			"window_end", now,
		)
		s.sms.Notify(userID, rewardMessage)
	}

	return result, nil
}

// Redeem moves an earned reward to redeemed.
func (s *RewardService) Redeem(ctx context.Context, rewardID int64) (*domain.Reward, error) {
	return s.rewards.Redeem(ctx, rewardID, s.now().UTC())
}

// ListByUser returns the user's rewards, newest first.
func (s *RewardService) ListByUser(ctx context.Context, userID int64) ([]domain.Reward, error) {
	return s.rewards.ListByUser(ctx, userID)
}
