package domain

import "time"

// MealStatus represents the verification state of a submitted receipt.
type MealStatus string

const (
	MealStatusPending  MealStatus = "pending"
	MealStatusVerified MealStatus = "verified"
	MealStatusRejected MealStatus = "rejected"
)

// Meal represents one receipt submission. Status moves only from pending
// to verified or rejected; terminal states never transition again.
type Meal struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	Status     MealStatus `json:"status" db:"status"`
	ReceiptKey string     `json:"receipt_key" db:"receipt_key"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
