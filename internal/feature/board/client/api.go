// Package client keeps an in-memory mirror of a user's board and syncs it with the API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kanban_backend/internal/feature/board/transport/http/dto"
)

// APIError is a non-2xx response from the board API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("board api: %d %s", e.Status, e.Message)
}

// api performs authenticated JSON requests against the /api routes.
type api struct {
	baseURL string
	token   string
	hc      *http.Client
}

func (a *api) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(a.baseURL, "/")+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg dto.MessageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

func (a *api) listColumns(ctx context.Context) ([]dto.ColumnRes, error) {
	var out []dto.ColumnRes
	err := a.do(ctx, http.MethodGet, "/columns", nil, &out)
	return out, err
}

func (a *api) listTasks(ctx context.Context) ([]dto.TaskRes, error) {
	var out []dto.TaskRes
	err := a.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}
