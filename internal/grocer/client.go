// Package grocer is the client for the grocery application's remote API. It
// owns the HTTP calls, bearer-token injection and response-envelope
// normalization, plus the category domain model and the pure hierarchy
// reconstruction that the admin views are built on. Nothing here renders
// anything; higher layers consume normalized values and typed errors.
package grocer

import (
	"context"

	"github.com/go-resty/resty/v2"
)

const ApiBaseUrl = "https://api.grocerhub.app/api"

type ClientOpts struct {
	BaseURL string
	Token   string
}

// Client talks to the grocery API. Methods are safe for concurrent use as
// long as SetToken is not called concurrently with requests.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	token      string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{baseURL: ApiBaseUrl}
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}
	c.token = opts.Token
	c.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(c.baseURL).
		SetHeaders(
			map[string]string{
				"Accept":     "application/json",
				"User-Agent": "grocer-admin/1.0",
			},
		)

	return &c
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the bearer token, e.g. after a successful login.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) req(ctx context.Context) *resty.Request {
	request := c.httpClient.
		NewRequest().
		SetContext(ctx)

	if c.token != "" {
		request.SetHeader("Authorization", "Bearer "+c.token)
	}

	return request
}
