package client

import (
	"github.com/maxpoletaev/nodepool/nodeapi"
)

type Option func(*Client)

// WithTransport replaces the HTTP transport used to talk to the nodes.
func WithTransport(t nodeapi.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithUserAgent sets the User-Agent of the default HTTP transport.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}
