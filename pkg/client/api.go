package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"

	"notesync/pkg/view"
)

// APIError is a non-2xx response decoded from the server's {"error": msg}
// body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// APIClient talks to the sync server over HTTP. The cookie jar carries the
// session cookie, so one client instance is one signed-in browser tab.
type APIClient struct {
	BaseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &APIClient{
		BaseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Auth surface.

type SessionInfo struct {
	Authenticated bool      `json:"authenticated"`
	UserId        uuid.UUID `json:"userId"`
	Username      string    `json:"username"`
}

func (c *APIClient) Register(ctx context.Context, username, pin string) (*SessionInfo, error) {
	var res SessionInfo
	err := c.do(ctx, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"pin":      pin,
	}, &res)
	if err != nil {
		return nil, err
	}
	res.Authenticated = true
	return &res, nil
}

func (c *APIClient) Login(ctx context.Context, username, pin string) (*SessionInfo, error) {
	var res SessionInfo
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"pin":      pin,
	}, &res)
	if err != nil {
		return nil, err
	}
	res.Authenticated = true
	return &res, nil
}

func (c *APIClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *APIClient) CheckSession(ctx context.Context) (*SessionInfo, error) {
	var res SessionInfo
	if err := c.do(ctx, http.MethodGet, "/api/check-session", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PushTicket mints a short-lived ticket for the websocket authenticate frame.
func (c *APIClient) PushTicket(ctx context.Context) (string, error) {
	var res struct {
		Ticket string `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/push-ticket", nil, &res); err != nil {
		return "", err
	}
	return res.Ticket, nil
}

// Fetcher implementation.

func (c *APIClient) FetchNotebooks(ctx context.Context, section view.Section) ([]view.Notebook, error) {
	var res []view.Notebook
	if err := c.do(ctx, http.MethodGet, "/api/notebooks/"+string(section), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *APIClient) FetchNotes(ctx context.Context, key view.Key) ([]view.Note, error) {
	path := "/api/notes/" + string(key.Section)
	if key.NotebookId != uuid.Nil {
		path += "/" + key.NotebookId.String()
	}
	var res []view.Note
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *APIClient) CreateNotebook(ctx context.Context, name string, section view.Section) error {
	return c.do(ctx, http.MethodPost, "/api/notebooks", map[string]string{
		"name":    name,
		"section": string(section),
	}, nil)
}

func (c *APIClient) DeleteNotebook(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/notebooks/"+id.String(), nil, nil)
}

func (c *APIClient) CreateNote(ctx context.Context, draft NoteDraft) error {
	body := map[string]any{
		"content":   draft.Content,
		"section":   string(draft.Section),
		"isChecked": draft.IsChecked,
		"isLocked":  draft.IsLocked,
	}
	if draft.NotebookId != nil {
		body["notebookId"] = draft.NotebookId.String()
	}
	return c.do(ctx, http.MethodPost, "/api/notes", body, nil)
}

func (c *APIClient) UpdateNote(ctx context.Context, id uuid.UUID, patch NotePatch) error {
	body := map[string]any{}
	if patch.Content != nil {
		body["content"] = *patch.Content
	}
	if patch.IsChecked != nil {
		body["isChecked"] = *patch.IsChecked
	}
	if patch.IsFavorite != nil {
		body["isFavorite"] = *patch.IsFavorite
	}
	if patch.IsLocked != nil {
		body["isLocked"] = *patch.IsLocked
	}
	return c.do(ctx, http.MethodPut, "/api/notes/"+id.String(), body, nil)
}

func (c *APIClient) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id.String(), nil, nil)
}

func (c *APIClient) ToggleFavorite(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/api/notes/"+id.String()+"/favorite", nil, nil)
}

func (c *APIClient) SetLockPassword(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodPost, "/api/set-lock-password", map[string]string{
		"password": password,
	}, nil)
}

func (c *APIClient) VerifyLockPassword(ctx context.Context, password string) (bool, error) {
	var res struct {
		Success bool `json:"success"`
	}
	err := c.do(ctx, http.MethodPost, "/api/verify-lock-password", map[string]string{
		"password": password,
	}, &res)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

func (c *APIClient) CheckLockSetup(ctx context.Context) (bool, error) {
	var res struct {
		HasPassword bool `json:"hasPassword"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/check-lock-setup", nil, &res); err != nil {
		return false, err
	}
	return res.HasPassword, nil
}

var _ Fetcher = (*APIClient)(nil)
