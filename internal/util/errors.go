package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrPermissionDenied = errors.New("permission denied")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuizSubmitted    = errors.New("quiz already submitted")
	ErrDeckNotFound     = errors.New("deck not found")
	ErrCardNotFound     = errors.New("flashcard not found")
	ErrSessionNotFound  = errors.New("doubt session not found")
	ErrPlanNotFound     = errors.New("study plan not found")
)
