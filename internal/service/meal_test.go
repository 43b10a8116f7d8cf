package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchcard-app/punchcard/internal/domain"
)

type fakeMealWriter struct {
	nextID int64
	meals  map[int64]*domain.Meal
}

func newFakeMealWriter() *fakeMealWriter {
	return &fakeMealWriter{meals: map[int64]*domain.Meal{}}
}

func (f *fakeMealWriter) Insert(_ context.Context, meal domain.Meal) (*domain.Meal, error) {
	f.nextID++
	meal.ID = f.nextID
	f.meals[meal.ID] = &meal
	return &meal, nil
}

func (f *fakeMealWriter) Transition(_ context.Context, id int64, to domain.MealStatus) (*domain.Meal, error) {
	meal, ok := f.meals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if meal.Status != domain.MealStatusPending {
		return nil, domain.ErrConflict
	}
	meal.Status = to
	return meal, nil
}

func (f *fakeMealWriter) ListByUser(_ context.Context, userID int64) ([]domain.Meal, error) {
	out := []domain.Meal{}
	for _, m := range f.meals {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeEvaluator struct {
	calls  []int64
	result EvaluateResult
}

func (f *fakeEvaluator) Evaluate(_ context.Context, userID int64) (EvaluateResult, error) {
	f.calls = append(f.calls, userID)
	return f.result, nil
}

func TestSubmitPendingDoesNotEvaluate(t *testing.T) {
	meals := newFakeMealWriter()
	evaluator := &fakeEvaluator{}
	svc := NewMealService(meals, evaluator)

	result, err := svc.Submit(context.Background(), 7, false)
	require.NoError(t, err)
	assert.Equal(t, domain.MealStatusPending, result.Meal.Status)
	assert.NotEmpty(t, result.Meal.ReceiptKey)
	assert.Empty(t, evaluator.calls)
}

func TestSubmitConfidentEvaluatesImmediately(t *testing.T) {
	meals := newFakeMealWriter()
	evaluator := &fakeEvaluator{result: EvaluateResult{Issued: true, RewardID: 3}}
	svc := NewMealService(meals, evaluator)

	result, err := svc.Submit(context.Background(), 7, true)
	require.NoError(t, err)
	assert.Equal(t, domain.MealStatusVerified, result.Meal.Status)
	assert.Equal(t, []int64{7}, evaluator.calls)
	assert.True(t, result.Evaluation.Issued)
	assert.Equal(t, int64(3), result.Evaluation.RewardID)
}

func TestConfirmPendingMeal(t *testing.T) {
	meals := newFakeMealWriter()
	evaluator := &fakeEvaluator{}
	svc := NewMealService(meals, evaluator)

	submitted, err := svc.Submit(context.Background(), 7, false)
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background(), submitted.Meal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MealStatusVerified, result.Meal.Status)
	assert.Equal(t, []int64{7}, evaluator.calls)
}

func TestConfirmTerminalMealConflicts(t *testing.T) {
	meals := newFakeMealWriter()
	evaluator := &fakeEvaluator{}
	svc := NewMealService(meals, evaluator)

	submitted, err := svc.Submit(context.Background(), 7, false)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), submitted.Meal.ID)
	require.NoError(t, err)

	// A repeated confirmation is rejected and must not re-trigger
	// evaluation: already-counted meals never double-count.
	_, err = svc.Confirm(context.Background(), submitted.Meal.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, evaluator.calls, 1)
}

func TestRejectPendingMeal(t *testing.T) {
	meals := newFakeMealWriter()
	evaluator := &fakeEvaluator{}
	svc := NewMealService(meals, evaluator)

	submitted, err := svc.Submit(context.Background(), 7, false)
	require.NoError(t, err)

	meal, err := svc.Reject(context.Background(), submitted.Meal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MealStatusRejected, meal.Status)
	assert.Empty(t, evaluator.calls)

	// Rejected is terminal.
	_, err = svc.Confirm(context.Background(), submitted.Meal.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestConfirmMissingMeal(t *testing.T) {
	svc := NewMealService(newFakeMealWriter(), &fakeEvaluator{})

	_, err := svc.Confirm(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
