package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"coastal-quiz-service/internal/app"
	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/notify"
)

// Handler exposes the quiz, statistics and notification operations as
// plain JSON over HTTP. There is no push channel; clients poll.
type Handler struct {
	service *app.QuizService
	notices *notify.Store
}

func NewHandler(service *app.QuizService, notices *notify.Store) *Handler {
	return &Handler{service: service, notices: notices}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /quiz/sessions", h.startQuiz)
	mux.HandleFunc("GET /quiz/sessions/{id}/question", h.currentQuestion)
	mux.HandleFunc("POST /quiz/sessions/{id}/answer", h.selectAnswer)
	mux.HandleFunc("POST /quiz/sessions/{id}/advance", h.advance)
	mux.HandleFunc("DELETE /quiz/sessions/{id}", h.abandon)

	mux.HandleFunc("GET /stats", h.stats)
	mux.HandleFunc("GET /stats/{label}", h.statsForLabel)

	mux.HandleFunc("GET /notifications", h.listNotifications)
	mux.HandleFunc("POST /notifications", h.addNotification)
	mux.HandleFunc("POST /notifications/read-all", h.markAllRead)
	mux.HandleFunc("POST /notifications/{id}/read", h.markRead)
	mux.HandleFunc("DELETE /notifications/{id}", h.removeNotification)
	mux.HandleFunc("DELETE /notifications", h.clearNotifications)
}

type startQuizRequest struct {
	Category domain.Category `json:"category"`
}

func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	started, err := h.service.StartQuiz(r.Context(), req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, started)
}

func (h *Handler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.CurrentQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type answerRequest struct {
	Option int `json:"option"`
}

func (h *Handler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feedback, err := h.service.SelectAnswer(r.Context(), r.PathValue("id"), req.Option)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Advance(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) abandon(w http.ResponseWriter, r *http.Request) {
	h.service.Abandon(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

type statsResponse struct {
	AverageScore int `json:"averageScore"`
	BestScore    int `json:"bestScore"`
	TotalQuizzes int `json:"totalQuizzes"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	aggregator := h.service.Stats()
	writeJSON(w, http.StatusOK, struct {
		statsResponse
		Recent any `json:"recent"`
	}{
		statsResponse: statsResponse{
			AverageScore: aggregator.AverageScore(),
			BestScore:    aggregator.BestScore(),
			TotalQuizzes: aggregator.TotalQuizzes(),
		},
		Recent: aggregator.Recent(10),
	})
}

func (h *Handler) statsForLabel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats().StatsForLabel(r.PathValue("label")))
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Notifications []domain.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unreadCount"`
	}{
		Notifications: h.notices.All(),
		UnreadCount:   h.notices.UnreadCount(),
	})
}

func (h *Handler) addNotification(w http.ResponseWriter, r *http.Request) {
	var draft notify.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Title == "" || draft.Message == "" {
		writeError(w, http.StatusBadRequest, "title and message are required")
		return
	}
	writeJSON(w, http.StatusCreated, h.notices.Add(draft))
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	h.notices.MarkRead(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	h.notices.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeNotification(w http.ResponseWriter, r *http.Request) {
	h.notices.Remove(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearNotifications(w http.ResponseWriter, r *http.Request) {
	h.notices.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrOptionOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoSelection), errors.Is(err, domain.ErrQuizCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrBankUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
