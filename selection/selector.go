package selection

import (
	"errors"

	"github.com/maxpoletaev/nodepool/health"
	"github.com/maxpoletaev/nodepool/internal/set"
	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

var (
	ErrNoHealthyNodes   = errors.New("no healthy node available")
	ErrNoPowCapableNode = errors.New("no node available for remote proof of work")
)

// Registry provides the configured nodes.
type Registry interface {
	Primary() (node.Node, bool)
	PrimaryPow() (node.Node, bool)
	Nodes() []node.Node
	Permanodes() []node.Node
	IsDisabled(n node.Node) bool
}

// HealthSource provides the last known healthy nodes.
type HealthSource interface {
	Snapshot() health.Snapshot
	IsDisabled() bool
}

// Selector builds the ordered list of nodes a request should be sent to.
type Selector struct {
	registry Registry
	health   HealthSource
}

func New(registry Registry, health HealthSource) *Selector {
	return &Selector{
		registry: registry,
		health:   health,
	}
}

// candidates is an ordered list of nodes, unique by identity.
type candidates struct {
	nodes []node.Node
	seen  set.Set[string]
}

func (c *candidates) add(nodes ...node.Node) {
	for _, n := range nodes {
		if c.seen.Insert(n.Key()) {
			c.nodes = append(c.nodes, n)
		}
	}
}

// Select returns the nodes to try for the given request, highest priority
// first. The returned nodes have their URLs set to the request path and query.
func (s *Selector) Select(path, query string, needPow, preferPermanode bool) ([]node.Node, error) {
	list := &candidates{seen: set.New[string]()}

	// Block lookups by query are served from permanodes first, since ordinary
	// nodes may have pruned the data already.
	if preferPermanode || (nodeapi.SamePath(path, nodeapi.BlocksPath) && query != "") {
		list.add(s.registry.Permanodes()...)
	}

	if needPow {
		if pow, ok := s.registry.PrimaryPow(); ok {
			list.add(pow)
		}
	}

	if primary, ok := s.registry.Primary(); ok {
		list.add(primary)
	}

	if !s.health.IsDisabled() {
		// Map iteration order is random, which spreads the load between nodes.
		for _, entry := range s.health.Snapshot() {
			if needPow && !entry.Info.HasFeature(nodeapi.PowFeature) {
				continue
			}

			list.add(entry.Node)
		}
	} else {
		list.add(s.registry.Nodes()...)
	}

	selected := make([]node.Node, 0, len(list.nodes))

	for _, n := range list.nodes {
		// Snapshot entries carry their own copy of the node, the registry
		// holds the current flag.
		if n.Disabled || s.registry.IsDisabled(n) {
			continue
		}

		req, err := n.WithRequest(path, query)
		if err != nil {
			return nil, err
		}

		selected = append(selected, req)
	}

	if len(selected) == 0 {
		if needPow {
			return nil, ErrNoPowCapableNode
		}

		return nil, ErrNoHealthyNodes
	}

	return selected, nil
}
