package quorum

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
)

var (
	errNoResponse  = errors.New("no node returned a response")
	errInvalidJSON = errors.New("response is not valid json")
)

// Selector returns the ordered list of nodes for a request.
type Selector interface {
	Select(path, query string, needPow, preferPermanode bool) ([]node.Node, error)
}

type Config struct {
	Logger kitlog.Logger

	// Enabled turns the quorum check on for requests that ask for it.
	Enabled bool

	// MinSize is the number of nodes queried for a quorum request.
	MinSize int

	// ThresholdPercent is the share of MinSize (0-100) that must return the
	// same response for it to be accepted.
	ThresholdPercent int

	// Concurrent allows querying the quorum nodes in parallel. When false, the
	// nodes are queried one by one with the same acceptance rules.
	Concurrent bool
}

func DefaultConfig() Config {
	return Config{
		Logger:           kitlog.NewNopLogger(),
		MinSize:          3,
		ThresholdPercent: 66,
		Concurrent:       true,
	}
}

// Dispatcher sends requests to the nodes chosen by the selector and decides
// which response to trust.
type Dispatcher struct {
	selector   Selector
	client     nodeapi.Client
	logger     kitlog.Logger
	enabled    bool
	minSize    int
	threshold  int
	concurrent bool
}

func New(selector Selector, client nodeapi.Client, conf Config) *Dispatcher {
	return &Dispatcher{
		selector:   selector,
		client:     client,
		logger:     conf.Logger,
		enabled:    conf.Enabled,
		minSize:    conf.MinSize,
		threshold:  conf.ThresholdPercent,
		concurrent: conf.Concurrent,
	}
}

func (d *Dispatcher) thresholdReached(count int) bool {
	return float64(count) >= float64(d.minSize)*(float64(d.threshold)/100.0)
}

func (d *Dispatcher) logFailure(n node.Node, err error) {
	level.Debug(d.logger).Log("msg", "node request failed", "node", n, "err", err)
}

// GetJSON sends a GET request and decodes the accepted response into out.
// With needQuorum set and quorum enabled, the same response must be returned
// by enough nodes. Requests with a query are answered by a single node, since
// nodes may keep a different amount of history, but still need a large enough
// pool.
func (d *Dispatcher) GetJSON(
	ctx context.Context,
	path, query string,
	timeout time.Duration,
	needQuorum, preferPermanode bool,
	out interface{},
) error {
	// The primary pow node is only used for submissions with remote pow.
	nodes, err := d.selector.Select(path, query, false, preferPermanode)
	if err != nil {
		return err
	}

	if d.enabled && needQuorum && len(nodes) < d.minSize {
		return &QuorumPoolSizeError{
			Available: len(nodes),
			Required:  d.minSize,
		}
	}

	withQuorum := d.enabled && needQuorum && query == ""

	var (
		votes   *tally
		lastErr error
	)

	switch {
	case withQuorum && d.concurrent:
		votes, lastErr = d.fanOut(ctx, nodes[:d.minSize], timeout)
	case nodeapi.SamePath(path, nodeapi.InfoPath):
		return d.getInfo(ctx, nodes, timeout, out)
	case withQuorum:
		votes, lastErr = d.collect(ctx, nodes, timeout)
	default:
		return d.getFirst(ctx, nodes, timeout, out)
	}

	if votes.empty() {
		if lastErr == nil {
			lastErr = errNoResponse
		}

		return lastErr
	}

	body, count := votes.winner()

	if !d.thresholdReached(count) {
		level.Warn(d.logger).Log(
			"msg", "quorum threshold not reached",
			"path", path,
			"agreed", count,
			"responses", votes.total,
			"required", d.minSize,
		)

		return &QuorumThresholdError{
			Achieved: count,
			Required: d.minSize,
		}
	}

	return decodeInto(body, votes.origin(body), out)
}

// getFirst returns the first response that decodes into out.
func (d *Dispatcher) getFirst(ctx context.Context, nodes []node.Node, timeout time.Duration, out interface{}) error {
	lastErr := errNoResponse

	for _, n := range nodes {
		resp, err := d.client.Get(ctx, n, timeout)
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		if err := decodeFresh(resp, out); err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		return nil
	}

	return lastErr
}

// getInfo returns the info of the first node that answers, along with the
// URL of that node.
func (d *Dispatcher) getInfo(ctx context.Context, nodes []node.Node, timeout time.Duration, out interface{}) error {
	lastErr := errNoResponse

	for _, n := range nodes {
		resp, err := d.client.Get(ctx, n, timeout)
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		var info nodeapi.InfoResponse
		if err := resp.IntoJSON(&info); err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		wrapper := nodeapi.NodeInfoWrapper{
			NodeInfo: info,
			URL:      n.Origin(),
		}

		return convert(wrapper, out)
	}

	return lastErr
}

// collect queries the nodes one by one until MinSize of them responded.
func (d *Dispatcher) collect(ctx context.Context, nodes []node.Node, timeout time.Duration) (*tally, error) {
	var (
		votes   = newTally()
		lastErr error
	)

	for _, n := range nodes {
		resp, err := d.client.Get(ctx, n, timeout)
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		text, err := resp.IntoText()
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		body, err := canonicalJSON(text)
		if err != nil {
			d.logFailure(n, err)
			lastErr = &nodeapi.DecodeError{URL: resp.URL, Err: err}

			continue
		}

		votes.add(body, resp.URL)

		if votes.total >= d.minSize {
			break
		}
	}

	return votes, lastErr
}

// fanOut queries all nodes in parallel and waits for every one of them. A
// failed or slow node never cancels the others. Votes are counted in the
// order of the nodes, so ties go to the higher priority node.
func (d *Dispatcher) fanOut(ctx context.Context, nodes []node.Node, timeout time.Duration) (*tally, error) {
	type result struct {
		resp *nodeapi.Response
		err  error
	}

	var (
		errg    errgroup.Group
		results = make([]result, len(nodes))
	)

	for i := range nodes {
		i := i

		errg.Go(func() error {
			resp, err := d.client.Get(ctx, nodes[i], timeout)
			results[i] = result{resp: resp, err: err}

			return nil
		})
	}

	_ = errg.Wait()

	var (
		votes     = newTally()
		lastErr   error
		decodeErr error
	)

	for i, res := range results {
		if res.err != nil {
			d.logFailure(nodes[i], res.err)
			lastErr = res.err

			continue
		}

		text, err := res.resp.IntoText()
		if err != nil {
			level.Warn(d.logger).Log("msg", "could not convert node response to text", "node", nodes[i], "err", err)
			decodeErr = err

			continue
		}

		// Non-JSON bodies still vote with their raw text. Decoding the
		// winner will fail later if it is not JSON.
		if body, err := canonicalJSON(text); err == nil {
			text = body
		}

		votes.add(text, res.resp.URL)
	}

	if lastErr == nil {
		lastErr = decodeErr
	}

	return votes, lastErr
}

// GetBytes sends a GET request for the binary representation of a resource and
// returns the first successful response. Quorum is never applied.
func (d *Dispatcher) GetBytes(ctx context.Context, path, query string, timeout time.Duration) ([]byte, error) {
	nodes, err := d.selector.Select(path, query, false, false)
	if err != nil {
		return nil, err
	}

	var lastErr error

	for _, n := range nodes {
		resp, err := d.client.GetBytes(ctx, n, timeout)
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		data, err := resp.IntoBytes()
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		return data, nil
	}

	return nil, lastErr
}

// PostBytes submits a binary body. Without local pow, the nodes able to do
// remote proof of work are selected.
func (d *Dispatcher) PostBytes(
	ctx context.Context,
	path string,
	timeout time.Duration,
	body []byte,
	localPow bool,
	out interface{},
) error {
	return d.post(ctx, path, localPow, out, func(n node.Node) (*nodeapi.Response, error) {
		return d.client.PostBytes(ctx, n, timeout, body)
	})
}

// PostJSON submits a JSON body. Without local pow, the nodes able to do remote
// proof of work are selected.
func (d *Dispatcher) PostJSON(
	ctx context.Context,
	path string,
	timeout time.Duration,
	body interface{},
	localPow bool,
	out interface{},
) error {
	return d.post(ctx, path, localPow, out, func(n node.Node) (*nodeapi.Response, error) {
		return d.client.PostJSON(ctx, n, timeout, body)
	})
}

func (d *Dispatcher) post(
	ctx context.Context,
	path string,
	localPow bool,
	out interface{},
	send func(node.Node) (*nodeapi.Response, error),
) error {
	nodes, err := d.selector.Select(path, "", !localPow, false)
	if err != nil {
		return err
	}

	var lastErr error

	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := send(n)
		if err != nil {
			d.logFailure(n, err)
			lastErr = err

			continue
		}

		if out != nil {
			if err := resp.IntoJSON(out); err != nil {
				d.logFailure(n, err)
				lastErr = err

				continue
			}
		}

		return nil
	}

	return lastErr
}

func decodeInto(body, url string, out interface{}) error {
	if out == nil {
		return nil
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return &nodeapi.DecodeError{URL: url, Err: err}
	}

	return nil
}

// decodeFresh decodes the response into a new value of the type out points to
// and stores it in out only on success, so a failed attempt leaves out as it
// was. With a nil out the body only has to be valid JSON.
func decodeFresh(resp *nodeapi.Response, out interface{}) error {
	text, err := resp.IntoText()
	if err != nil {
		return err
	}

	if out == nil {
		if !json.Valid([]byte(text)) {
			return &nodeapi.DecodeError{URL: resp.URL, Err: errInvalidJSON}
		}

		return nil
	}

	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return resp.IntoJSON(out)
	}

	fresh := reflect.New(target.Elem().Type())
	if err := resp.IntoJSON(fresh.Interface()); err != nil {
		return err
	}

	target.Elem().Set(fresh.Elem())

	return nil
}

func convert(value interface{}, out interface{}) error {
	if out == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return decodeInto(string(data), "", out)
}
