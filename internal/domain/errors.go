package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizCompleted is returned when a session is driven past its terminal state.
	ErrQuizCompleted = errors.New("quiz already completed")
	// ErrNoSelection is returned when advancing before an answer was recorded.
	ErrNoSelection = errors.New("no answer selected for current question")
	// ErrOptionOutOfRange is returned when a selected option index is not valid
	// for the current question.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrBankUnavailable indicates the question bank could not be loaded.
	ErrBankUnavailable = errors.New("question bank unavailable")
	// ErrNotAuthenticated is returned when an operation needs a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
)
