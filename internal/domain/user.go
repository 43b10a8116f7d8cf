package domain

import "time"

// User represents a loyalty program member.
type User struct {
	ID          int64     `json:"id" db:"id"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
