// Package gateway is a thin JSON-over-HTTP client for the remote coastal
// threat backend. The backend is an opaque collaborator: this client never
// interprets threat data beyond passing it through, and performs no retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coastal-quiz-service/internal/domain"
)

// Client talks to the backend API under a base URL such as
// http://localhost:8000/api/v1.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError carries the backend's status code and detail message so callers
// can surface it to the user verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// envelope is the response wrapper the backend uses for auth and alert
// endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegistrationRequest is the sign-up payload.
type RegistrationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// LoginResult bundles the profile and token pair returned on sign-in.
type LoginResult struct {
	User         domain.UserProfile `json:"user"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
}

// TestNotificationRequest triggers a manual threat notification.
type TestNotificationRequest struct {
	ThreatLevel        domain.ThreatLevel `json:"threat_level"`
	CycloneProbability float64            `json:"cyclone_probability"`
	StormSurgeLevel    string             `json:"storm_surge_level"`
	WaterLevel         float64            `json:"water_level"`
	TestEmail          string             `json:"test_email,omitempty"`
}

// ThreatAssessment is the slice of the threat-detection response this
// service inspects; everything else passes through untouched.
type ThreatAssessment struct {
	OverallThreat domain.ThreatLevel `json:"overall_threat"`
	Raw           json.RawMessage    `json:"-"`
}

func (c *Client) Register(ctx context.Context, req RegistrationRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/register", "", req)
	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	var result LoginResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	return result, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
	return err
}

// VerifyToken checks a stored access token and returns the profile it
// belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (domain.UserProfile, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/verify", token, nil)
	if err != nil {
		return domain.UserProfile{}, err
	}
	var profile domain.UserProfile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (c *Client) Profile(ctx context.Context, token string) (domain.UserProfile, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil)
	if err != nil {
		return domain.UserProfile{}, err
	}
	var profile domain.UserProfile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, profile domain.UserProfile) error {
	_, err := c.do(ctx, http.MethodPut, "/auth/profile", token, profile)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, token, current, replacement string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/change-password", token, map[string]string{
		"current_password": current,
		"new_password":     replacement,
	})
	return err
}

func (c *Client) TestNotification(ctx context.Context, token string, req TestNotificationRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/alerts/test-notification", token, req)
	return err
}

func (c *Client) TestAlertSystem(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/alerts/test-alert-system", token, nil)
	return err
}

func (c *Client) SendTestSMS(ctx context.Context, token, phone string) error {
	_, err := c.do(ctx, http.MethodPost, "/sms/test-sms", token, map[string]string{"phone": phone})
	return err
}

func (c *Client) TriggerEvacuation(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/evacuation/trigger-evacuation", token, nil)
	return err
}

// ThreatDetection fetches the backend's current overall threat assessment.
func (c *Client) ThreatDetection(ctx context.Context) (ThreatAssessment, error) {
	env, err := c.do(ctx, http.MethodGet, "/threat-detection", "", nil)
	if err != nil {
		return ThreatAssessment{}, err
	}
	var assessment ThreatAssessment
	if err := json.Unmarshal(env.Data, &assessment); err != nil {
		return ThreatAssessment{}, fmt.Errorf("decode threat assessment: %w", err)
	}
	assessment.Raw = env.Data
	return assessment, nil
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", "", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (envelope, error) {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return envelope{}, &APIError{StatusCode: resp.StatusCode, Detail: detail.Detail}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode response: %w", err)
	}
	return env, nil
}
