package api

import (
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/journal"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const authCookieName = "auth_token"

// Client - HTTP-клиент сервера MoodKeeper. Реализует repo.Identity и repo.RecordStore.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  repo.TokenStore
}

var (
	_ repo.Identity    = (*Client)(nil)
	_ repo.RecordStore = (*Client)(nil)
)

func NewClient(baseURL string, tokens repo.TokenStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Tokens:  tokens,
	}
}

// do отправляет запрос с auth cookie (если токен есть) и возвращает ответ с прочитанным телом.
// Статусы >= 400 превращаются в *APIError.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return resp, data, decodeError(resp.StatusCode, data)
	}
	return resp, data, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Tokens == nil {
		return
	}
	if tok, err := c.Tokens.Load(); err == nil && tok != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: tok})
	}
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Code == "" && status == http.StatusUnauthorized {
		apiErr.Code = "unauthenticated"
	}
	return apiErr
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в TokenStore.
func (c *Client) PersistAuthFromResponse(resp *http.Response) error {
	for _, ck := range resp.Cookies() {
		if ck.Name == authCookieName && ck.Value != "" {
			return c.Tokens.Save(ck.Value)
		}
	}
	return ErrNoAuthCookie
}

type credentials struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

func (c *Client) Register(ctx context.Context, login, password, displayName string) (repo.User, error) {
	return c.signIn(ctx, "/api/user/register", credentials{Login: login, Password: password, DisplayName: displayName})
}

func (c *Client) Login(ctx context.Context, login, password string) (repo.User, error) {
	return c.signIn(ctx, "/api/user/login", credentials{Login: login, Password: password})
}

func (c *Client) signIn(ctx context.Context, path string, cred credentials) (repo.User, error) {
	resp, body, err := c.do(ctx, http.MethodPost, path, cred)
	if err != nil {
		return repo.User{}, err
	}
	if err := c.PersistAuthFromResponse(resp); err != nil {
		return repo.User{}, fmt.Errorf("saving auth: %w", err)
	}
	var u repo.User
	if err := json.Unmarshal(body, &u); err != nil {
		return repo.User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}

// Logout стирает локальный токен даже если сервер недоступен.
func (c *Client) Logout(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodPost, "/api/user/logout", nil)
	if cerr := c.Tokens.Clear(); cerr != nil {
		return cerr
	}
	return err
}

func (c *Client) Current(ctx context.Context) (repo.User, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/api/user", nil)
	if err != nil {
		return repo.User{}, err
	}
	var u repo.User
	if err := json.Unmarshal(body, &u); err != nil {
		return repo.User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/api/user", nil)
	return err
}

// Schema загружает реестр категорий с сервера.
func (c *Client) Schema(ctx context.Context) ([]journal.CategorySchema, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/api/schema", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Categories []journal.CategorySchema `json:"categories"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return out.Categories, nil
}

func (c *Client) Create(ctx context.Context, draft journal.Draft) (journal.Record, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/api/records", draft)
	if err != nil {
		return journal.Record{}, err
	}
	var rec journal.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return journal.Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func (c *Client) List(ctx context.Context, window journal.Window) ([]journal.Record, error) {
	q := url.Values{}
	q.Set("window", windowParam(window))
	_, body, err := c.do(ctx, http.MethodGet, "/api/records?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var recs []journal.Record
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return recs, nil
}

func windowParam(w journal.Window) string {
	if w <= journal.WindowAll {
		return "all"
	}
	return fmt.Sprintf("%d", int(w))
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("empty record id")
	}
	_, _, err := c.do(ctx, http.MethodDelete, "/api/records/"+url.PathEscape(id), nil)
	return err
}

// Insights - сводка, посчитанная сервером.
func (c *Client) Insights(ctx context.Context) (journal.Summary, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/api/insights", nil)
	if err != nil {
		return journal.Summary{}, err
	}
	var sum journal.Summary
	if err := json.Unmarshal(body, &sum); err != nil {
		return journal.Summary{}, fmt.Errorf("decode insights: %w", err)
	}
	return sum, nil
}
