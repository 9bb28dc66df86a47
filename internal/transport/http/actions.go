package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"coastal-quiz-service/internal/auth"
	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/gateway"
)

// ActionsHandler exposes the sign-in session and the user-triggered test
// actions that pass straight through to the remote backend. Mounted only
// when a gateway base URL is configured.
type ActionsHandler struct {
	backend *gateway.Client
	session *auth.Manager
}

func NewActionsHandler(backend *gateway.Client, session *auth.Manager) *ActionsHandler {
	return &ActionsHandler{backend: backend, session: session}
}

func (h *ActionsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /session/login", h.login)
	mux.HandleFunc("POST /session/logout", h.logout)
	mux.HandleFunc("GET /session/user", h.user)

	mux.HandleFunc("POST /actions/test-notification", h.testNotification)
	mux.HandleFunc("POST /actions/test-alert-system", h.testAlertSystem)
	mux.HandleFunc("POST /actions/test-sms", h.testSMS)
	mux.HandleFunc("POST /actions/trigger-evacuation", h.triggerEvacuation)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *ActionsHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.session.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ActionsHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.session.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *ActionsHandler) user(w http.ResponseWriter, r *http.Request) {
	user, ok := h.session.User()
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrNotAuthenticated.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ActionsHandler) testNotification(w http.ResponseWriter, r *http.Request) {
	var req gateway.TestNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.authenticated(w, r, func(token string) error {
		return h.backend.TestNotification(r.Context(), token, req)
	})
}

func (h *ActionsHandler) testAlertSystem(w http.ResponseWriter, r *http.Request) {
	h.authenticated(w, r, func(token string) error {
		return h.backend.TestAlertSystem(r.Context(), token)
	})
}

type testSMSRequest struct {
	Phone string `json:"phone"`
}

func (h *ActionsHandler) testSMS(w http.ResponseWriter, r *http.Request) {
	var req testSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.authenticated(w, r, func(token string) error {
		return h.backend.SendTestSMS(r.Context(), token, req.Phone)
	})
}

func (h *ActionsHandler) triggerEvacuation(w http.ResponseWriter, r *http.Request) {
	h.authenticated(w, r, func(token string) error {
		return h.backend.TriggerEvacuation(r.Context(), token)
	})
}

// authenticated runs the action with the signed-in user's token and maps
// failures to user-visible messages; backend errors are never swallowed.
func (h *ActionsHandler) authenticated(w http.ResponseWriter, r *http.Request, action func(token string) error) {
	token, err := h.session.AccessToken()
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := action(token); err != nil {
		writeGatewayError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeGatewayError(w http.ResponseWriter, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusBadGateway, apiErr.Error())
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}
