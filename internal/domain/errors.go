package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Account errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("username already taken")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrSessionExpired = errors.New("session expired or unknown")

	// Journal errors
	ErrHabitNotFound    = errors.New("habit not found")
	ErrBadHabitCategory = errors.New("habit category not in configured set")
	ErrBadDate          = errors.New("date must be YYYY-MM-DD")
	ErrTooManyFocus     = errors.New("at most 3 focus items per day")

	// Learning errors
	ErrLearningNotFound = errors.New("learning item not found")

	// Money errors
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryProtected = errors.New("default category cannot be deleted")
	ErrExpenseNotFound   = errors.New("shared expense not found")
	ErrNotPayer          = errors.New("only the payer can mark splits as paid")
	ErrNoParticipants    = errors.New("expense needs at least one participant")
	ErrBadAmount         = errors.New("amount must be positive")

	// Coach errors
	ErrCoachUnavailable = errors.New("coach backend unavailable")
	ErrUnknownCoachMode = errors.New("unknown coach mode")
)
