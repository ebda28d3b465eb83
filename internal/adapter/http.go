package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/utils"
	"github.com/MKhiriev/go-item-keeper/models"
	"github.com/go-resty/resty/v2"
)

const apiPrefix = "/api/v1"

// Config configures an [APIClient].
type Config struct {
	// Address is the server address, with or without a scheme.
	Address string
	// Timeout bounds a single request. Zero means no bound.
	Timeout time.Duration
	// RetryCount is the number of retries on 503 and transport errors.
	RetryCount int
}

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs an HTTP implementation of [APIClient].
//
// Returns an error if cfg.Address is empty or cannot be parsed as a URL.
func NewHTTPAPIClient(cfg Config, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL + apiPrefix).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return resp != nil && resp.StatusCode() == http.StatusServiceUnavailable
		})

	return &httpAPIClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpAPIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpAPIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *httpAPIClient) Signup(ctx context.Context, in models.UserCreate) (models.User, error) {
	var user models.User
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&user).
		Post("/users/signup")
	if err != nil {
		return models.User{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login posts an OAuth2-style password form to /login/access-token.
func (c *httpAPIClient) Login(ctx context.Context, email, password string) (models.AccessToken, error) {
	var token models.AccessToken
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(&token).
		Post("/login/access-token")
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessToken{}, err
	}

	c.SetToken(token.AccessToken)
	c.logger.Debug().Str("func", "*httpAPIClient.Login").Msg("logged in")
	return token, nil
}

func (c *httpAPIClient) Me(ctx context.Context) (models.User, error) {
	var user models.User
	resp, err := c.authedRequest(ctx).SetResult(&user).Get("/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *httpAPIClient) UpdatePassword(ctx context.Context, in models.PasswordUpdate) error {
	resp, err := c.authedRequest(ctx).SetBody(in).Patch("/users/me/password")
	if err != nil {
		return fmt.Errorf("update password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *httpAPIClient) ListItems(ctx context.Context, page models.Page) (models.ItemList, error) {
	req := c.authedRequest(ctx)
	if page.Skip > 0 {
		req.SetQueryParam("skip", strconv.FormatUint(page.Skip, 10))
	}
	if page.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(page.Limit, 10))
	}

	var items models.ItemList
	resp, err := req.SetResult(&items).Get("/items/")
	if err != nil {
		return models.ItemList{}, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ItemList{}, err
	}
	return items, nil
}

func (c *httpAPIClient) GetItem(ctx context.Context, id int64) (models.Item, error) {
	var item models.Item
	resp, err := c.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&item).
		Get("/items/{id}")
	if err != nil {
		return models.Item{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (c *httpAPIClient) CreateItem(ctx context.Context, in models.ItemCreate) (models.Item, error) {
	var item models.Item
	resp, err := c.authedRequest(ctx).SetBody(in).SetResult(&item).Post("/items/")
	if err != nil {
		return models.Item{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (c *httpAPIClient) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error) {
	var item models.Item
	resp, err := c.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(patch).
		SetResult(&item).
		Patch("/items/{id}")
	if err != nil {
		return models.Item{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (c *httpAPIClient) DeleteItem(ctx context.Context, id int64) error {
	resp, err := c.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/items/{id}")
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *httpAPIClient) Version(ctx context.Context) (models.VersionInfo, error) {
	var info models.VersionInfo
	resp, err := c.client.R().SetContext(ctx).SetResult(&info).Get("/version")
	if err != nil {
		return models.VersionInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionInfo{}, err
	}
	return info, nil
}

func (c *httpAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
