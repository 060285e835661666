package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/time/rate"

	"github.com/maxpoletaev/nodepool/health"
	"github.com/maxpoletaev/nodepool/internal/generic"
	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
	"github.com/maxpoletaev/nodepool/nodeapi/rest"
	"github.com/maxpoletaev/nodepool/quorum"
	"github.com/maxpoletaev/nodepool/registry"
	"github.com/maxpoletaev/nodepool/selection"
)

var ErrUnknownNode = errors.New("unknown node")

// Client sends requests to a pool of ledger nodes. It keeps track of which
// nodes are healthy and compares the responses of several nodes when a
// quorum is requested.
type Client struct {
	logger     kitlog.Logger
	registry   *registry.Registry
	tracker    *health.Tracker
	syncer     *health.Syncer
	dispatcher *quorum.Dispatcher
	limiter    *rate.Limiter
	transport  nodeapi.Client
	userAgent  string
	apiTimeout time.Duration
	powTimeout time.Duration

	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func New(conf Config, opts ...Option) (*Client, error) {
	regConf, err := conf.registryConfig()
	if err != nil {
		return nil, err
	}

	logger := conf.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	c := &Client{
		logger:     logger,
		registry:   registry.New(regConf),
		tracker:    health.NewTracker(conf.IgnoreNodeHealth),
		apiTimeout: conf.APITimeout,
		powTimeout: conf.RemotePowTimeout,
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}

	if conf.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(conf.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		var restOpts []rest.Option
		if c.userAgent != "" {
			restOpts = append(restOpts, rest.WithUserAgent(c.userAgent))
		}

		c.transport = rest.New(restOpts...)
	}

	c.syncer = health.NewSyncer(c.tracker, c.registry, c.transport, health.Config{
		Logger:      kitlog.With(logger, "component", "health"),
		Interval:    conf.NodeSyncInterval,
		Timeout:     conf.APITimeout,
		NetworkName: conf.NetworkName,
	})

	selector := selection.New(c.registry, c.tracker)

	c.dispatcher = quorum.New(selector, c.transport, quorum.Config{
		Logger:           kitlog.With(logger, "component", "quorum"),
		Enabled:          conf.Quorum,
		MinSize:          conf.MinQuorumSize,
		ThresholdPercent: conf.QuorumThreshold,
		Concurrent:       conf.Concurrent,
	})

	return c, nil
}

// Start runs the first health sync and keeps the node health up to date in
// the background until Close is called. Returns the number of healthy nodes
// after the first sync.
func (c *Client) Start(ctx context.Context) int {
	if c.tracker.IsDisabled() {
		return 0
	}

	var healthy int

	c.startOnce.Do(func() {
		healthy = c.syncer.Sync(ctx)

		loopCtx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel

		c.wg.Add(1)

		go func() {
			defer c.wg.Done()
			c.syncer.Watch(loopCtx)
		}()
	})

	return healthy
}

// Close stops the background health sync.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}

	c.wg.Wait()
}

// SyncNodes checks the health of all nodes right away.
func (c *Client) SyncNodes(ctx context.Context) int {
	if c.tracker.IsDisabled() {
		return 0
	}

	return c.syncer.Sync(ctx)
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	return nil
}

// RequestJSON sends a GET request and decodes the JSON response into out.
func (c *Client) RequestJSON(ctx context.Context, path, query string, needQuorum, preferPermanode bool, out interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	return c.dispatcher.GetJSON(ctx, path, query, c.apiTimeout, needQuorum, preferPermanode, out)
}

// RequestBytes sends a GET request for the binary form of a resource.
func (c *Client) RequestBytes(ctx context.Context, path, query string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	return c.dispatcher.GetBytes(ctx, path, query, c.apiTimeout)
}

func (c *Client) submitTimeout(localPow bool) time.Duration {
	if localPow {
		return c.apiTimeout
	}

	return c.powTimeout
}

// SubmitBytes posts a binary payload. Unless localPow is set, the payload is
// sent to a node that does the proof of work.
func (c *Client) SubmitBytes(ctx context.Context, path string, body []byte, localPow bool, out interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	return c.dispatcher.PostBytes(ctx, path, c.submitTimeout(localPow), body, localPow, out)
}

// SubmitJSON posts a JSON payload. Unless localPow is set, the payload is
// sent to a node that does the proof of work.
func (c *Client) SubmitJSON(ctx context.Context, path string, body interface{}, localPow bool, out interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	return c.dispatcher.PostJSON(ctx, path, c.submitTimeout(localPow), body, localPow, out)
}

// NodeInfo returns the info of the first node that answers, along with its URL.
func (c *Client) NodeInfo(ctx context.Context) (*nodeapi.NodeInfoWrapper, error) {
	var info nodeapi.NodeInfoWrapper

	if err := c.RequestJSON(ctx, nodeapi.InfoPath, "", false, false, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// HealthyNodes returns the nodes that passed the last health check, ordered by URL.
func (c *Client) HealthyNodes() []health.Entry {
	return generic.SortedValues(c.tracker.Snapshot())
}

// Nodes returns every configured node.
func (c *Client) Nodes() []node.Node {
	return c.registry.All()
}

// HealthCheckEnabled reports whether node health is synced.
func (c *Client) HealthCheckEnabled() bool {
	return !c.tracker.IsDisabled()
}

// SetNodeDisabled enables or disables a configured node. A disabled node is
// never selected, even if it is healthy.
func (c *Client) SetNodeDisabled(rawURL string, disabled bool) error {
	target, err := node.Parse(rawURL)
	if err != nil {
		return err
	}

	if !c.registry.SetDisabled(target, disabled) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, target)
	}

	// The snapshot holds its own copy of the node. Enabled nodes come back
	// with the next sync.
	if disabled {
		c.tracker.Remove(target.Key())
	}

	level.Info(c.logger).Log("msg", "node state changed", "node", target, "disabled", disabled)

	return nil
}
