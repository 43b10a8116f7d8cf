package domain

import "time"

// RewardStatus represents the lifecycle state of an earned reward.
type RewardStatus string

const (
	RewardStatusEarned   RewardStatus = "earned"
	RewardStatusRedeemed RewardStatus = "redeemed"
	RewardStatusExpired  RewardStatus = "expired"
)

// Reward represents one free meal earned by crossing the verified-meal
// threshold. WindowStart/WindowEnd record the trailing period over which
// eligibility was computed; RedeemedAt is set only on earned -> redeemed.
type Reward struct {
	ID          int64        `json:"id" db:"id"`
	UserID      int64        `json:"user_id" db:"user_id"`
	Status      RewardStatus `json:"status" db:"status"`
	EarnedAt    time.Time    `json:"earned_at" db:"earned_at"`
	RedeemedAt  *time.Time   `json:"redeemed_at,omitempty" db:"redeemed_at"`
	WindowStart time.Time    `json:"window_start" db:"window_start"`
	WindowEnd   time.Time    `json:"window_end" db:"window_end"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
