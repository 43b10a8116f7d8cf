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

// MealRepository handles meal data access operations.
type MealRepository struct {
	db *sqlx.DB
}

// NewMealRepository creates a new MealRepository.
func NewMealRepository(db *sqlx.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Insert stores a new meal record and returns it with generated fields.
func (r *MealRepository) Insert(ctx context.Context, meal domain.Meal) (*domain.Meal, error) {
	var result domain.Meal
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &result,
		`INSERT INTO meals (user_id, status, receipt_key)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, status, receipt_key, created_at, updated_at`,
		meal.UserID, meal.Status, meal.ReceiptKey)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	return &result, nil
}

// FindByID retrieves a meal by its ID.
func (r *MealRepository) FindByID(ctx context.Context, id int64) (*domain.Meal, error) {
	var meal domain.Meal
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &meal,
		`SELECT id, user_id, status, receipt_key, created_at, updated_at
		 FROM meals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find meal by id %d: %w", id, err)
	}
	return &meal, nil
}

// Transition moves a pending meal to the given terminal status. It returns
// domain.ErrConflict when the meal is no longer pending, which is what keeps
// a repeated confirmation from re-triggering reward evaluation, and
// domain.ErrNotFound when no such meal exists.
func (r *MealRepository) Transition(ctx context.Context, id int64, to domain.MealStatus) (*domain.Meal, error) {
	var result domain.Meal
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &result,
		`UPDATE meals SET status = $2, updated_at = NOW()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING id, user_id, status, receipt_key, created_at, updated_at`,
		id, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("transition meal %d to %s: %w", id, to, err)
	}
	return &result, nil
}

// CountVerified counts the user's verified meals created at or after since.
// The boundary is inclusive: a meal created exactly at since counts.
func (r *MealRepository) CountVerified(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count,
		`SELECT COUNT(*) FROM meals
		 WHERE user_id = $1 AND status = 'verified' AND created_at >= $2`,
		userID, since)
	if err != nil {
		return 0, fmt.Errorf("count verified meals for user %d: %w", userID, err)
	}
	return count, nil
}

// ListByUser returns the user's meals, newest first.
func (r *MealRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Meal, error) {
	meals := []domain.Meal{}
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &meals,
		`SELECT id, user_id, status, receipt_key, created_at, updated_at
		 FROM meals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list meals for user %d: %w", userID, err)
	}
	return meals, nil
}
