package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"

	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

const (
	contentTypeJSON  = "application/json"
	contentTypeBytes = "application/vnd.iota.serializer-v1"

	defaultMaxBodySize = 32 << 20
	maxErrorBodySize   = 512
)

var (
	_ nodeapi.Client = (*Client)(nil)

	errBodyTooLarge = errors.New("response body too large")
)

// Client is the HTTP implementation of nodeapi.Client.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
}

type Option func(*Client)

// WithHTTPClient replaces the default pooled client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithUserAgent(ua string) Option {
	return func(client *Client) {
		client.userAgent = ua
	}
}

func WithMaxBodySize(n int64) Option {
	return func(client *Client) {
		client.maxBodySize = n
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient:  cleanhttp.DefaultPooledClient(),
		userAgent:   "nodepool",
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Get(ctx context.Context, n node.Node, timeout time.Duration) (*nodeapi.Response, error) {
	return c.do(ctx, n, timeout, http.MethodGet, contentTypeJSON, "", nil)
}

func (c *Client) GetBytes(ctx context.Context, n node.Node, timeout time.Duration) (*nodeapi.Response, error) {
	return c.do(ctx, n, timeout, http.MethodGet, contentTypeBytes, "", nil)
}

func (c *Client) PostBytes(ctx context.Context, n node.Node, timeout time.Duration, body []byte) (*nodeapi.Response, error) {
	return c.do(ctx, n, timeout, http.MethodPost, contentTypeJSON, contentTypeBytes, body)
}

func (c *Client) PostJSON(ctx context.Context, n node.Node, timeout time.Duration, body interface{}) (*nodeapi.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	return c.do(ctx, n, timeout, http.MethodPost, contentTypeJSON, contentTypeJSON, data)
}

func (c *Client) newRequest(ctx context.Context, n node.Node, method, accept, contentType string, body []byte) (*http.Request, error) {
	u := n.URL
	u.User = nil

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Bearer token takes precedence over basic auth, both use the same header.
	if token := n.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if user := n.URL.User; user != nil {
		password, _ := user.Password()
		req.SetBasicAuth(user.Username(), password)
	}

	return req, nil
}

func (c *Client) do(
	ctx context.Context,
	n node.Node,
	timeout time.Duration,
	method, accept, contentType string,
	body []byte,
) (*nodeapi.Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	nodeURL := n.String()

	req, err := c.newRequest(ctx, n, method, accept, contentType, body)
	if err != nil {
		return nil, &nodeapi.TransportError{URL: nodeURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &nodeapi.TransportError{URL: nodeURL, Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

		return nil, &nodeapi.TransportError{
			URL:        nodeURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(msg))),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, &nodeapi.TransportError{URL: nodeURL, StatusCode: resp.StatusCode, Err: err}
	}

	if int64(len(data)) > c.maxBodySize {
		return nil, &nodeapi.TransportError{URL: nodeURL, StatusCode: resp.StatusCode, Err: errBodyTooLarge}
	}

	return &nodeapi.Response{
		URL:        nodeURL,
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
