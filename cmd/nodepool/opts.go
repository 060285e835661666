package main

import (
	"strings"
	"time"
)

var opts struct {
	Config string `long:"config" env:"NODEPOOL_CONFIG" description:"path to ini config file"`

	Nodes struct {
		File         string        `long:"file" env:"FILE" description:"json file with node definitions and their auth (primaryNode, primaryPowNode, nodes, permanodes)"`
		Primary      string        `long:"primary" env:"PRIMARY" description:"primary node url"`
		PrimaryPow   string        `long:"primary-pow" env:"PRIMARY_POW" description:"node url preferred for remote proof of work"`
		URLs         string        `long:"urls" env:"URLS" description:"comma-separated list of node urls"`
		Permanodes   string        `long:"permanodes" env:"PERMANODES" description:"comma-separated list of permanode urls"`
		NetworkName  string        `long:"network" env:"NETWORK" description:"expected network name, picked by majority if empty"`
		IgnoreHealth bool          `long:"ignore-health" env:"IGNORE_HEALTH" description:"use all nodes without health checks"`
		SyncInterval time.Duration `long:"sync-interval" env:"SYNC_INTERVAL" default:"60s" description:"health sync interval"`
	} `group:"nodes" namespace:"nodes" env-namespace:"NODES"`

	Quorum struct {
		Enabled    bool `long:"enabled" env:"ENABLED" description:"compare responses of several nodes"`
		MinSize    int  `long:"min-size" env:"MIN_SIZE" default:"3" description:"number of nodes to query"`
		Threshold  int  `long:"threshold" env:"THRESHOLD" default:"66" description:"percentage of nodes that must agree"`
		Sequential bool `long:"sequential" env:"SEQUENTIAL" description:"query quorum nodes one by one"`
	} `group:"quorum" namespace:"quorum" env-namespace:"QUORUM"`

	Requests struct {
		Timeout    time.Duration `long:"timeout" env:"TIMEOUT" default:"15s" description:"node request timeout"`
		PowTimeout time.Duration `long:"pow-timeout" env:"POW_TIMEOUT" default:"100s" description:"timeout of submissions with remote proof of work"`
		RateLimit  float64       `long:"rate-limit" env:"RATE_LIMIT" default:"0" description:"max requests per second, 0 for no limit"`
		UserAgent  string        `long:"user-agent" env:"USER_AGENT" default:"nodepool" description:"user agent sent to the nodes"`
	} `group:"requests" namespace:"requests" env-namespace:"REQUESTS"`

	RestAPI struct {
		Enabled  bool   `long:"enabled" env:"ENABLED" description:"enable rest api"`
		BindAddr string `long:"bind-addr" env:"BIND_ADDR" default:":8000" description:"address to bind rest api server"`
	} `group:"restapi" namespace:"restapi" env-namespace:"RESTAPI"`

	Verbose bool `long:"verbose" env:"VERBOSE" description:"verbose mode"`
}

func parseList(list string) []string {
	sl := strings.Split(list, ",")
	res := make([]string, 0, len(sl))

	for _, item := range sl {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}

	return res
}
