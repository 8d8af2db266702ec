package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	loginPath = "/auth/login"

	// DefaultTimeout bounds every request; a timed-out request surfaces
	// as a network-kind APIError.
	DefaultTimeout = 10 * time.Second
)

// Config collects the knobs for constructing a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenStore
	Debug   bool
}

// Client is the HTTP transport shared by both front ends. It injects the
// bearer token from the token store on every request, normalizes failures
// into APIError and reports any non-login 401 to the session layer.
type Client struct {
	http           *resty.Client
	tokens         TokenStore
	onUnauthorized func()
}

// New constructs a Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Tokens == nil {
		cfg.Tokens = NewMemoryTokenStore()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Debug {
		httpClient.SetDebug(true)
	}

	c := &Client{http: httpClient, tokens: cfg.Tokens}

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if strings.HasSuffix(req.URL, loginPath) {
			return nil
		}
		if token, err := c.tokens.Load(); err == nil && token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	return c, nil
}

// Tokens exposes the persisted token store the client reads from.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// SetOnUnauthorized registers the hook invoked when any request other
// than login is rejected with 401. SessionGate uses it to force logout.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Login exchanges credentials for a bearer token. It does not persist the
// token; that is the session layer's decision.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(loginPath)
	if err != nil {
		return "", &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return "", c.responseError(resp)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil || result.Token == "" {
		return "", &APIError{Kind: KindMalformed, Message: "login response missing token"}
	}
	return result.Token, nil
}

// Logout revokes the current token server side. A failure is returned but
// callers typically proceed with the local logout regardless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Post("/auth/logout")
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return c.responseError(resp)
	}
	return nil
}

// Products returns the products resource (facet: category id). Product
// grids render 9 cards per page.
func (c *Client) Products() *Resource[Product] {
	return &Resource[Product]{c: c, path: "/products", facetKey: "category", defaultSize: 9}
}

// Categories returns the categories resource.
func (c *Client) Categories() *Resource[Category] {
	return &Resource[Category]{c: c, path: "/categories"}
}

// News returns the news resource (facet: article type). News lists render
// 9 entries per page.
func (c *Client) News() *Resource[Article] {
	return &Resource[Article]{c: c, path: "/news", facetKey: "type", defaultSize: 9}
}

// Messages returns the contact-lead resource (facet: read status).
func (c *Client) Messages() *Resource[Message] {
	return &Resource[Message]{c: c, path: "/messages", facetKey: "status"}
}

// Contact fetches the singleton contact configuration.
func (c *Client) Contact(ctx context.Context) (ContactInfo, error) {
	var info ContactInfo
	err := c.getJSON(ctx, "/system/config/contact", &info)
	return info, err
}

// SaveContact replaces the singleton contact configuration.
func (c *Client) SaveContact(ctx context.Context, info ContactInfo) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(info).Put("/system/config/contact")
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return c.responseError(resp)
	}
	return nil
}

// AboutUs fetches the singleton about-us document.
func (c *Client) AboutUs(ctx context.Context) (AboutUs, error) {
	var about AboutUs
	err := c.getJSON(ctx, "/about-us", &about)
	return about, err
}

// SaveAboutUs replaces the singleton about-us document.
func (c *Client) SaveAboutUs(ctx context.Context, about AboutUs) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(about).Post("/about-us")
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return c.responseError(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return c.responseError(resp)
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return &APIError{Kind: KindMalformed, Message: err.Error()}
	}
	return nil
}

// responseError converts an HTTP error response into an APIError, firing
// the unauthorized hook for any non-login 401.
func (c *Client) responseError(resp *resty.Response) error {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(resp.Body(), &problem)
	message := problem.Detail
	if message == "" {
		message = problem.Title
	}
	if message == "" {
		message = resp.Status()
	}

	status := resp.StatusCode()
	if status == 401 && !strings.HasSuffix(resp.Request.URL, loginPath) && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return &APIError{Kind: kindForStatus(status), Status: status, Message: message}
}
