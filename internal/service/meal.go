package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// MealWriter is the meal data access interface consumed by MealService.
type MealWriter interface {
	Insert(ctx context.Context, meal domain.Meal) (*domain.Meal, error)
	Transition(ctx context.Context, id int64, to domain.MealStatus) (*domain.Meal, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Meal, error)
}

// Evaluator triggers reward eligibility evaluation for a user.
type Evaluator interface {
	Evaluate(ctx context.Context, userID int64) (EvaluateResult, error)
}

// MealService handles receipt submission and the pending -> verified /
// pending -> rejected transitions that gate reward evaluation.
type MealService struct {
	meals   MealWriter
	rewards Evaluator
}

// NewMealService creates a new MealService.
func NewMealService(meals MealWriter, rewards Evaluator) *MealService {
	return &MealService{meals: meals, rewards: rewards}
}

// SubmitResult is the outcome of a receipt submission.
type SubmitResult struct {
	Meal       *domain.Meal   `json:"meal"`
	Evaluation EvaluateResult `json:"evaluation"`
}

// Submit records a new receipt. When confident is true the extraction was
// unambiguous and the meal is recorded verified immediately, which counts as
// a verification event and triggers evaluation.
func (s *MealService) Submit(ctx context.Context, userID int64, confident bool) (*SubmitResult, error) {
	status := domain.MealStatusPending
	if confident {
		status = domain.MealStatusVerified
	}

	meal, err := s.meals.Insert(ctx, domain.Meal{
		UserID:     userID,
		Status:     status,
		ReceiptKey: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("submit meal: %w", err)
	}

	result := &SubmitResult{Meal: meal}
	if confident {
		eval, err := s.rewards.Evaluate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("evaluate rewards: %w", err)
		}
		result.Evaluation = eval
	}
	return result, nil
}

// Confirm moves a pending meal to verified and triggers reward evaluation.
// A meal already in a terminal state yields domain.ErrConflict and no
// evaluation, so repeated confirmations can never double-count.
func (s *MealService) Confirm(ctx context.Context, mealID int64) (*SubmitResult, error) {
	meal, err := s.meals.Transition(ctx, mealID, domain.MealStatusVerified)
	if err != nil {
		return nil, err
	}

	eval, err := s.rewards.Evaluate(ctx, meal.UserID)
	if err != nil {
		return nil, fmt.Errorf("evaluate rewards: %w", err)
	}

	return &SubmitResult{Meal: meal, Evaluation: eval}, nil
}

// Reject moves a pending meal to rejected. Rejected meals never count and
// never trigger evaluation.
func (s *MealService) Reject(ctx context.Context, mealID int64) (*domain.Meal, error) {
	return s.meals.Transition(ctx, mealID, domain.MealStatusRejected)
}

// ListByUser returns the user's meals, newest first.
func (s *MealService) ListByUser(ctx context.Context, userID int64) ([]domain.Meal, error) {
	return s.meals.ListByUser(ctx, userID)
}
