package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// RewardRepository handles reward data access operations.
type RewardRepository struct {
	db *sqlx.DB
}

// NewRewardRepository creates a new RewardRepository.
func NewRewardRepository(db *sqlx.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// Insert stores a new reward record and returns its generated ID.
func (r *RewardRepository) Insert(ctx context.Context, reward domain.Reward) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &id,
		`INSERT INTO rewards (user_id, status, earned_at, window_start, window_end)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		reward.UserID, reward.Status, reward.EarnedAt, reward.WindowStart, reward.WindowEnd)
	if err != nil {
		return 0, fmt.Errorf("insert reward: %w", err)
	}
	return id, nil
}

// CountIssuedSince counts the user's rewards whose stored window_end falls at
// or after windowEndAfter, i.e. rewards already attributed to a window
// overlapping the current trailing one.
func (r *RewardRepository) CountIssuedSince(ctx context.Context, userID int64, windowEndAfter time.Time) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count,
		`SELECT COUNT(*) FROM rewards
		 WHERE user_id = $1 AND window_end >= $2`,
		userID, windowEndAfter)
	if err != nil {
		return 0, fmt.Errorf("count rewards for user %d: %w", userID, err)
	}
	return count, nil
}

// FindByID retrieves a reward by its ID.
func (r *RewardRepository) FindByID(ctx context.Context, id int64) (*domain.Reward, error) {
	var reward domain.Reward
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &reward,
		`SELECT id, user_id, status, earned_at, redeemed_at, window_start, window_end, created_at
		 FROM rewards WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find reward by id %d: %w", id, err)
	}
	return &reward, nil
}

// Redeem moves an earned reward to redeemed and stamps redeemed_at.
// Returns domain.ErrConflict when the reward is not in the earned state.
func (r *RewardRepository) Redeem(ctx context.Context, id int64, at time.Time) (*domain.Reward, error) {
	var result domain.Reward
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &result,
		`UPDATE rewards SET status = 'redeemed', redeemed_at = $2
		 WHERE id = $1 AND status = 'earned'
		 RETURNING id, user_id, status, earned_at, redeemed_at, window_start, window_end, created_at`,
		id, at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("redeem reward %d: %w", id, err)
	}
	return &result, nil
}

// ListByUser returns the user's rewards, newest first.
func (r *RewardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reward, error) {
	rewards := []domain.Reward{}
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rewards,
		`SELECT id, user_id, status, earned_at, redeemed_at, window_start, window_end, created_at
		 FROM rewards WHERE user_id = $1 ORDER BY earned_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list rewards for user %d: %w", userID, err)
	}
	return rewards, nil
}
