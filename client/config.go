package client

import (
	"errors"
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"

	"github.com/maxpoletaev/nodepool/internal/multierror"
	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/registry"
)

type Config struct {
	Logger kitlog.Logger `json:"-"`

	PrimaryNode    *node.Config  `json:"primaryNode,omitempty"`
	PrimaryPowNode *node.Config  `json:"primaryPowNode,omitempty"`
	Nodes          []node.Config `json:"nodes,omitempty"`
	Permanodes     []node.Config `json:"permanodes,omitempty"`

	// IgnoreNodeHealth disables the health sync. All configured nodes are
	// then used regardless of their state.
	IgnoreNodeHealth bool `json:"ignoreNodeHealth,omitempty"`

	Quorum           bool          `json:"quorum,omitempty"`
	MinQuorumSize    int           `json:"minQuorumSize,omitempty"`
	QuorumThreshold  int           `json:"quorumThreshold,omitempty"`
	NodeSyncInterval time.Duration `json:"nodeSyncInterval,omitempty"`

	APITimeout       time.Duration `json:"apiTimeout,omitempty"`
	RemotePowTimeout time.Duration `json:"remotePowTimeout,omitempty"`

	// NetworkName restricts healthy nodes to the given network. When empty,
	// the network reported by most nodes is used.
	NetworkName string `json:"networkName,omitempty"`

	// RequestsPerSecond limits the rate of outgoing requests. Zero means no limit.
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty"`

	// Concurrent allows sending quorum requests in parallel.
	Concurrent bool `json:"concurrent,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Logger:           kitlog.NewNopLogger(),
		MinQuorumSize:    3,
		QuorumThreshold:  66,
		NodeSyncInterval: 60 * time.Second,
		APITimeout:       15 * time.Second,
		RemotePowTimeout: 100 * time.Second,
		Concurrent:       true,
	}
}

var (
	errNotPositive   = errors.New("must be greater than zero")
	errOutOfRange    = errors.New("must be between 0 and 100")
	errNegative      = errors.New("must not be negative")
	errNoNodesConfig = errors.New("at least one node is required")
)

func parseNodes(errs *multierror.Error[string], field string, configs []node.Config) []node.Node {
	nodes := make([]node.Node, 0, len(configs))

	for i, c := range configs {
		n, err := c.Build()
		if err != nil {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), err)
			continue
		}

		nodes = append(nodes, n)
	}

	return nodes
}

func parseNode(errs *multierror.Error[string], field string, c *node.Config) *node.Node {
	if c == nil {
		return nil
	}

	n, err := c.Build()
	if err != nil {
		errs.Add(field, err)
		return nil
	}

	return &n
}

// registryConfig validates the configuration and parses the node URLs. All
// problems are reported at once.
func (c Config) registryConfig() (registry.Config, error) {
	errs := multierror.New[string]()

	conf := registry.Config{
		PrimaryNode:    parseNode(errs, "primaryNode", c.PrimaryNode),
		PrimaryPowNode: parseNode(errs, "primaryPowNode", c.PrimaryPowNode),
		Nodes:          parseNodes(errs, "nodes", c.Nodes),
		Permanodes:     parseNodes(errs, "permanodes", c.Permanodes),
	}

	if c.PrimaryNode == nil && c.PrimaryPowNode == nil && len(c.Nodes) == 0 && len(c.Permanodes) == 0 {
		errs.Add("nodes", errNoNodesConfig)
	}

	if c.MinQuorumSize <= 0 {
		errs.Add("minQuorumSize", errNotPositive)
	}

	if c.QuorumThreshold < 0 || c.QuorumThreshold > 100 {
		errs.Add("quorumThreshold", errOutOfRange)
	}

	if !c.IgnoreNodeHealth && c.NodeSyncInterval <= 0 {
		errs.Add("nodeSyncInterval", errNotPositive)
	}

	if c.APITimeout <= 0 {
		errs.Add("apiTimeout", errNotPositive)
	}

	if c.RemotePowTimeout <= 0 {
		errs.Add("remotePowTimeout", errNotPositive)
	}

	if c.RequestsPerSecond < 0 {
		errs.Add("requestsPerSecond", errNegative)
	}

	if err := errs.Combined(); err != nil {
		return registry.Config{}, fmt.Errorf("invalid client config: %w", err)
	}

	return conf, nil
}
