package nodeapi

//go:generate mockgen -destination=mock/client_mock.go -package=mock github.com/maxpoletaev/nodepool/nodeapi Client

import (
	"context"
	"time"

	"github.com/maxpoletaev/nodepool/node"
)

// Client performs a single request against a single node. The node URL is
// expected to be already materialized with the request path and query.
// Every call must give up once the timeout expires, which is reported as a
// transport error like any other.
type Client interface {
	Get(ctx context.Context, n node.Node, timeout time.Duration) (*Response, error)
	GetBytes(ctx context.Context, n node.Node, timeout time.Duration) (*Response, error)
	PostBytes(ctx context.Context, n node.Node, timeout time.Duration, body []byte) (*Response, error)
	PostJSON(ctx context.Context, n node.Node, timeout time.Duration, body interface{}) (*Response, error)
}
