package api

import (
	"context"

	"github.com/maxpoletaev/nodepool/health"
	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

// Pool is the part of the node pool client exposed over HTTP.
type Pool interface {
	Nodes() []node.Node
	HealthyNodes() []health.Entry
	HealthCheckEnabled() bool
	SetNodeDisabled(rawURL string, disabled bool) error
	NodeInfo(ctx context.Context) (*nodeapi.NodeInfoWrapper, error)
	RequestJSON(ctx context.Context, path, query string, needQuorum, preferPermanode bool, out interface{}) error
	RequestBytes(ctx context.Context, path, query string) ([]byte, error)
}
