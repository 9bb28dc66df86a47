package domain

import "time"

// Category is the closed set of coastal-threat topics a question belongs to.
type Category string

const (
	CategoryStormSurge   Category = "storm-surge"
	CategoryPollution    Category = "pollution"
	CategoryErosion      Category = "erosion"
	CategorySafety       Category = "safety"
	CategoryPreparedness Category = "preparedness"
)

// Categories lists all quiz categories in display order.
func Categories() []Category {
	return []Category{
		CategoryStormSurge,
		CategoryPollution,
		CategoryErosion,
		CategorySafety,
		CategoryPreparedness,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStormSurge, CategoryPollution, CategoryErosion, CategorySafety, CategoryPreparedness:
		return true
	}
	return false
}

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question models an MCQ question with exactly one correct option out of four.
// Questions are defined once at startup and never mutated.
type Question struct {
	ID            int        `json:"id"`
	Text          string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
}

// QuizResult summarizes a completed quiz attempt.
type QuizResult struct {
	Score          int              `json:"score"` // rounded percentage, 0..100
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	TimeTaken      int              `json:"timeTaken"` // whole seconds
	CategoryScores map[Category]int `json:"categoryScores"`
}

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSuccess NotificationType = "success"
)

// Priority orders notifications by urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notification is an alert record owned by the notification store.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	Priority  Priority         `json:"priority"`
}

// ThreatLevel is the severity label supplied by the remote backend.
// It is consumed, never computed, by this service.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "LOW"
	ThreatMedium ThreatLevel = "MEDIUM"
	ThreatHigh   ThreatLevel = "HIGH"
)

// UserProfile mirrors the profile shape returned by the auth backend.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Role     string `json:"role"`
}
