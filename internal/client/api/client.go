package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/futbol/internal/client/storage"
	"github.com/iudanet/futbol/pkg/api"
)

// ErrUnauthorized matches any 401 response.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound matches any 404 response.
var ErrNotFound = errors.New("not found")

// TokenSource отдает сохраненный токен для заголовка Authorization
type TokenSource interface {
	GetAuth(ctx context.Context) (*storage.AuthData, error)
}

type bearerKey struct{}

// WithBearer makes requests issued with ctx carry token instead of the one
// from the TokenSource. An empty token sends no Authorization header, so only
// the cookie channel is used.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the token set by WithBearer.
func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok
}

// Error is a non-2xx response from the server.
type Error struct {
	Message    string
	Errors     []api.ValidationError
	StatusCode int
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, v := range e.Errors {
			parts = append(parts, v.Description)
		}
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, strings.Join(parts, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client представляет HTTP клиент для взаимодействия с сервером.
// Сессия передается двумя каналами: cookie (через cookie jar) и
// заголовком Bearer с токеном из TokenSource.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithTokenSource включает отправку Bearer заголовка на защищенные пути
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithHTTPClient заменяет http.Client (например, без cookie jar)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	// cookiejar.New с nil опциями не возвращает ошибку
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", false, req, nil); err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	return nil
}

// Login выполняет аутентификацию пользователя. Cookie сохраняется в jar,
// токен из тела ответа возвращается вызывающему.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", false, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает пользователя, которому принадлежит текущая сессия
func (c *Client) Me(ctx context.Context) (*api.MeResponse, error) {
	var resp api.MeResponse
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", true, nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// Logout просит сервер удалить cookie
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", true, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// ClearCookies забывает cookie, полученные от сервера
func (c *Client) ClearCookies() {
	if c.httpClient.Jar == nil {
		return
	}
	if jar, err := cookiejar.New(nil); err == nil {
		c.httpClient.Jar = jar
	}
}

func (c *Client) ListMatches(ctx context.Context) ([]api.MatchResponse, error) {
	var resp []api.MatchResponse
	if err := c.doRequest(ctx, http.MethodGet, "/matches", true, nil, &resp); err != nil {
		return nil, fmt.Errorf("list matches failed: %w", err)
	}
	return resp, nil
}

func (c *Client) GetMatch(ctx context.Context, id string) (*api.MatchResponse, error) {
	var resp api.MatchResponse
	if err := c.doRequest(ctx, http.MethodGet, "/matches/"+url.PathEscape(id), true, nil, &resp); err != nil {
		return nil, fmt.Errorf("get match failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) CreateMatch(ctx context.Context, req api.MatchRequest) (*api.MatchResponse, error) {
	var resp api.MatchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/matches", true, req, &resp); err != nil {
		return nil, fmt.Errorf("create match failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) UpdateMatch(ctx context.Context, id string, req api.MatchRequest) (*api.MatchResponse, error) {
	var resp api.MatchResponse
	if err := c.doRequest(ctx, http.MethodPut, "/matches/"+url.PathEscape(id), true, req, &resp); err != nil {
		return nil, fmt.Errorf("update match failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) DeleteMatch(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/matches/"+url.PathEscape(id), true, nil, nil); err != nil {
		return fmt.Errorf("delete match failed: %w", err)
	}
	return nil
}

func (c *Client) Summary(ctx context.Context) (*api.SummaryResponse, error) {
	var resp api.SummaryResponse
	if err := c.doRequest(ctx, http.MethodGet, "/matches/summary", true, nil, &resp); err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос. Для защищенных путей добавляется
// Bearer заголовок, если токен сохранен; cookie из jar уходят всегда.
func (c *Client) doRequest(ctx context.Context, method, path string, protected bool, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if protected {
		c.attachBearer(ctx, req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
			if apiErr.Message == "" {
				apiErr.Message = errResp.Error
			}
			apiErr.Errors = errResp.Errors
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) attachBearer(ctx context.Context, req *http.Request) {
	if token, ok := BearerFromContext(ctx); ok {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return
	}
	if c.tokens == nil {
		return
	}
	auth, err := c.tokens.GetAuth(ctx)
	if err != nil || auth == nil || auth.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+auth.Token)
}
