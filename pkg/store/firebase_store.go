package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// firebaseStore talks to a hosted realtime database over its REST surface:
// GET/PUT/POST/DELETE on <base>/<path>.json. A GET on an empty path returns
// the JSON literal null.
type firebaseStore struct {
	baseURL    string
	authSecret string
	client     *http.Client
}

func NewFirebaseStore(databaseURL, authSecret string) Store {
	return &firebaseStore{
		baseURL:    strings.TrimRight(databaseURL, "/"),
		authSecret: authSecret,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *firebaseStore) pathURL(segments []string) (string, error) {
	path, err := joinPath(segments)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/%s.json", s.baseURL, path)
	if s.authSecret != "" {
		url += "?auth=" + s.authSecret
	}
	return url, nil
}

func (s *firebaseStore) do(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s", ErrStoreUnavailable, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func isNull(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func (s *firebaseStore) Get(ctx context.Context, out any, segments ...string) (bool, error) {
	url, err := s.pathURL(segments)
	if err != nil {
		return false, err
	}
	data, err := s.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	if isNull(data) {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *firebaseStore) GetAll(ctx context.Context, segments ...string) (map[string]json.RawMessage, error) {
	url, err := s.pathURL(segments)
	if err != nil {
		return nil, err
	}
	data, err := s.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return map[string]json.RawMessage{}, nil
	}
	var children map[string]json.RawMessage
	if err := json.Unmarshal(data, &children); err != nil {
		return nil, err
	}
	return children, nil
}

func (s *firebaseStore) Set(ctx context.Context, value any, segments ...string) error {
	url, err := s.pathURL(segments)
	if err != nil {
		return err
	}
	_, err = s.do(ctx, http.MethodPut, url, value)
	return err
}

func (s *firebaseStore) Push(ctx context.Context, value any, segments ...string) (string, error) {
	url, err := s.pathURL(segments)
	if err != nil {
		return "", err
	}
	data, err := s.do(ctx, http.MethodPost, url, value)
	if err != nil {
		return "", err
	}
	var result struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", err
	}
	if result.Name == "" {
		return "", fmt.Errorf("%w: push returned no key", ErrStoreUnavailable)
	}
	return result.Name, nil
}

func (s *firebaseStore) Remove(ctx context.Context, segments ...string) error {
	url, err := s.pathURL(segments)
	if err != nil {
		return err
	}
	_, err = s.do(ctx, http.MethodDelete, url, nil)
	return err
}
