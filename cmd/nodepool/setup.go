package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/nodepool/api"
	"github.com/maxpoletaev/nodepool/client"
	"github.com/maxpoletaev/nodepool/node"
)

type shutdownFunc func(ctx context.Context) error

var noopShutdown = func(ctx context.Context) error { return nil }

func setupLogger() (kitlog.Logger, shutdownFunc) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if !opts.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return logger, noopShutdown
}

func nodeConfigs(urls string) []node.Config {
	list := parseList(urls)
	configs := make([]node.Config, len(list))

	for i, u := range list {
		configs[i] = node.Config{URL: u}
	}

	return configs
}

// nodesFile holds node definitions only. Every other setting comes from the
// command line, so unknown keys are rejected instead of being overwritten.
type nodesFile struct {
	PrimaryNode    *node.Config  `json:"primaryNode"`
	PrimaryPowNode *node.Config  `json:"primaryPowNode"`
	Nodes          []node.Config `json:"nodes"`
	Permanodes     []node.Config `json:"permanodes"`
}

func readNodesFile(path string) (*nodesFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nodes file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var nf nodesFile
	if err := dec.Decode(&nf); err != nil {
		return nil, fmt.Errorf("failed to parse nodes file %s: %w", path, err)
	}

	return &nf, nil
}

// clientConfig builds the client config from the nodes file and the command
// line. Nodes from both sources are combined, the primary nodes given on the
// command line take precedence.
func clientConfig(logger kitlog.Logger) (client.Config, error) {
	conf := client.DefaultConfig()

	if opts.Nodes.File != "" {
		nf, err := readNodesFile(opts.Nodes.File)
		if err != nil {
			return conf, err
		}

		conf.PrimaryNode = nf.PrimaryNode
		conf.PrimaryPowNode = nf.PrimaryPowNode
		conf.Nodes = nf.Nodes
		conf.Permanodes = nf.Permanodes
	}

	if opts.Nodes.Primary != "" {
		conf.PrimaryNode = &node.Config{URL: opts.Nodes.Primary}
	}

	if opts.Nodes.PrimaryPow != "" {
		conf.PrimaryPowNode = &node.Config{URL: opts.Nodes.PrimaryPow}
	}

	conf.Nodes = append(conf.Nodes, nodeConfigs(opts.Nodes.URLs)...)
	conf.Permanodes = append(conf.Permanodes, nodeConfigs(opts.Nodes.Permanodes)...)

	conf.Logger = logger
	conf.NetworkName = opts.Nodes.NetworkName
	conf.IgnoreNodeHealth = opts.Nodes.IgnoreHealth
	conf.NodeSyncInterval = opts.Nodes.SyncInterval
	conf.Quorum = opts.Quorum.Enabled
	conf.MinQuorumSize = opts.Quorum.MinSize
	conf.QuorumThreshold = opts.Quorum.Threshold
	conf.Concurrent = !opts.Quorum.Sequential
	conf.APITimeout = opts.Requests.Timeout
	conf.RemotePowTimeout = opts.Requests.PowTimeout
	conf.RequestsPerSecond = opts.Requests.RateLimit

	return conf, nil
}

func setupClient(logger kitlog.Logger) (*client.Client, shutdownFunc) {
	conf, err := clientConfig(logger)
	if err != nil {
		panic(err)
	}

	pool, err := client.New(conf, client.WithUserAgent(opts.Requests.UserAgent))
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.APITimeout)
	defer cancel()

	healthy := pool.Start(ctx)

	level.Info(logger).Log(
		"msg", "node pool started",
		"nodes", len(pool.Nodes()),
		"healthy", healthy,
		"health_check", pool.HealthCheckEnabled(),
	)

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "stopping node sync")
		pool.Close()

		return nil
	}

	return pool, shutdown
}

func setupAPIServer(wg *sync.WaitGroup, pool api.Pool, logger kitlog.Logger) (*http.Server, shutdownFunc) {
	restAPI := &http.Server{
		Addr:              opts.RestAPI.BindAddr,
		Handler:           api.CreateRouter(pool),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		level.Info(logger).Log("msg", "starting REST API server", "addr", opts.RestAPI.BindAddr)

		if err := restAPI.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				panic(fmt.Sprintf("failed to start REST API server: %v", err))
			}
		}
	}()

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "shutting down REST API server")

		if err := restAPI.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown REST API server: %w", err)
		}

		return nil
	}

	return restAPI, shutdown
}
