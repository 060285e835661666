package health

import (
	"context"
	"sort"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/maxpoletaev/nodepool/internal/set"
	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

// NodeSource provides the nodes that should be checked.
type NodeSource interface {
	Primary() (node.Node, bool)
	PrimaryPow() (node.Node, bool)
	Nodes() []node.Node
	IsDisabled(n node.Node) bool
}

type Config struct {
	Logger      kitlog.Logger
	Interval    time.Duration
	Timeout     time.Duration
	NetworkName string
}

func DefaultConfig() Config {
	return Config{
		Logger:   kitlog.NewNopLogger(),
		Interval: 60 * time.Second,
		Timeout:  15 * time.Second,
	}
}

// Syncer periodically queries the info endpoint of every known node and
// stores the healthy ones in the tracker.
type Syncer struct {
	tracker     *Tracker
	nodes       NodeSource
	client      nodeapi.Client
	logger      kitlog.Logger
	interval    time.Duration
	timeout     time.Duration
	networkName string
}

func NewSyncer(tracker *Tracker, nodes NodeSource, client nodeapi.Client, conf Config) *Syncer {
	return &Syncer{
		tracker:     tracker,
		nodes:       nodes,
		client:      client,
		logger:      conf.Logger,
		interval:    conf.Interval,
		timeout:     conf.Timeout,
		networkName: conf.NetworkName,
	}
}

func (s *Syncer) targets() []node.Node {
	var (
		seen    = set.New[string]()
		targets []node.Node
	)

	add := func(n node.Node) {
		if !n.Disabled && seen.Insert(n.Key()) {
			targets = append(targets, n)
		}
	}

	if primary, ok := s.nodes.Primary(); ok {
		add(primary)
	}

	if pow, ok := s.nodes.PrimaryPow(); ok {
		add(pow)
	}

	for _, n := range s.nodes.Nodes() {
		add(n)
	}

	return targets
}

func (s *Syncer) fetchInfo(ctx context.Context, n node.Node) (nodeapi.InfoResponse, error) {
	var info nodeapi.InfoResponse

	req, err := n.WithRequest(nodeapi.InfoPath, "")
	if err != nil {
		return info, err
	}

	resp, err := s.client.Get(ctx, req, s.timeout)
	if err != nil {
		return info, err
	}

	if err := resp.IntoJSON(&info); err != nil {
		return info, err
	}

	return info, nil
}

// pickNetwork returns the network the healthy snapshot should be built from:
// the configured one, or else the one most nodes agree on.
func (s *Syncer) pickNetwork(byNetwork map[string][]Entry) string {
	if s.networkName != "" {
		return s.networkName
	}

	names := make([]string, 0, len(byNetwork))
	for name := range byNetwork {
		names = append(names, name)
	}

	sort.Strings(names)

	var best string
	for _, name := range names {
		if len(byNetwork[name]) > len(byNetwork[best]) {
			best = name
		}
	}

	return best
}

// Sync checks all nodes once and replaces the tracker snapshot. Returns the
// number of healthy nodes found.
func (s *Syncer) Sync(ctx context.Context) int {
	var (
		mut       sync.Mutex
		errg      errgroup.Group
		byNetwork = make(map[string][]Entry)
	)

	for _, n := range s.targets() {
		n := n

		errg.Go(func() error {
			info, err := s.fetchInfo(ctx, n)
			if err != nil {
				level.Debug(s.logger).Log("msg", "node info request failed", "node", n, "err", err)
				return nil
			}

			if !info.Status.IsHealthy {
				level.Debug(s.logger).Log("msg", "node reports unhealthy", "node", n)
				return nil
			}

			mut.Lock()
			network := info.Protocol.NetworkName
			byNetwork[network] = append(byNetwork[network], Entry{Node: n, Info: info})
			mut.Unlock()

			return nil
		})
	}

	_ = errg.Wait()

	network := s.pickNetwork(byNetwork)
	snapshot := make(Snapshot)

	for name, entries := range byNetwork {
		if name != network {
			for _, entry := range entries {
				level.Warn(s.logger).Log(
					"msg", "ignoring node from another network",
					"node", entry.Node,
					"network", name,
					"expected", network,
				)
			}

			continue
		}

		for _, entry := range entries {
			// The node may have been disabled while its info was in flight.
			if s.nodes.IsDisabled(entry.Node) {
				continue
			}

			snapshot[entry.Node.Key()] = entry
		}
	}

	if s.tracker.Replace(snapshot) {
		level.Info(s.logger).Log("msg", "healthy nodes changed", "count", len(snapshot), "network", network)
	}

	if len(snapshot) == 0 {
		level.Warn(s.logger).Log("msg", "no healthy nodes found")
	}

	return len(snapshot)
}

// RunLoop syncs immediately and then on every interval until the context is
// done. It returns right away if health checking is disabled.
func (s *Syncer) RunLoop(ctx context.Context) {
	if s.tracker.IsDisabled() {
		return
	}

	s.Sync(ctx)
	s.Watch(ctx)
}

// Watch syncs on every interval until the context is done, without the
// initial sync.
func (s *Syncer) Watch(ctx context.Context) {
	if s.tracker.IsDisabled() {
		return
	}

	level.Info(s.logger).Log("msg", "node sync loop started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sync(ctx)
		case <-ctx.Done():
			return
		}
	}
}
