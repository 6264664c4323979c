package auth

import (
	"Recipe-Finder/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted identity provider's account endpoint. The
// application never handles credentials beyond forwarding them here.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

type (
	AuthService interface {
		SignUp(ctx context.Context, email, password string) (ProviderUser, error)
		SignIn(ctx context.Context, email, password string) (ProviderUser, error)
	}

	ProviderUser struct {
		UID     string
		Email   string
		IDToken string
	}

	authService struct {
		apiKey  string
		baseURL string
		client  *http.Client
	}
)

func NewAuthService(apiKey, baseURL string) AuthService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &authService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *authService) SignUp(ctx context.Context, email, password string) (ProviderUser, error) {
	return s.call(ctx, "accounts:signUp", email, password)
}

func (s *authService) SignIn(ctx context.Context, email, password string) (ProviderUser, error) {
	return s.call(ctx, "accounts:signInWithPassword", email, password)
}

func (s *authService) call(ctx context.Context, endpoint, email, password string) (ProviderUser, error) {
	url := fmt.Sprintf("%s/%s?key=%s", s.baseURL, endpoint, s.apiKey)

	payload, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return ProviderUser{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return ProviderUser{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return ProviderUser{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ProviderUser{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return ProviderUser{}, mapProviderError(body)
	}

	var result struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return ProviderUser{}, err
	}
	return ProviderUser{UID: result.LocalID, Email: result.Email, IDToken: result.IDToken}, nil
}

// mapProviderError translates the provider's error codes into the sentinel
// errors the handlers know how to present.
func mapProviderError(body []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	message := payload.Error.Message

	switch {
	case strings.Contains(message, "EMAIL_EXISTS"):
		return domain.ErrEmailExists
	case strings.Contains(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.Contains(message, "INVALID_PASSWORD"),
		strings.Contains(message, "EMAIL_NOT_FOUND"):
		return domain.ErrInvalidCredentials
	case strings.Contains(message, "WEAK_PASSWORD"):
		return domain.ErrWeakPassword
	case strings.Contains(message, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return domain.ErrTooManyAttempts
	}
	if message == "" {
		message = "identity provider request failed"
	}
	return fmt.Errorf("identity provider: %s", message)
}
