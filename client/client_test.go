package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
	"github.com/maxpoletaev/nodepool/nodeapi/mock"
)

type nodeIs string

func (m nodeIs) Matches(x interface{}) bool {
	n, ok := x.(node.Node)
	return ok && n.Key() == string(m)
}

func (m nodeIs) String() string {
	return "node " + string(m)
}

func infoResponse(t *testing.T, network string, features ...string) *nodeapi.Response {
	t.Helper()

	data, err := json.Marshal(nodeapi.InfoResponse{
		Name:     "hornet",
		Status:   nodeapi.StatusResponse{IsHealthy: true},
		Protocol: nodeapi.ProtocolParameters{NetworkName: network},
		Features: features,
	})
	require.NoError(t, err)

	return nodeapi.NewResponse("", data)
}

func newTestClient(t *testing.T, modify func(*Config)) (*Client, *mock.MockClient) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockClient(ctrl)

	conf := DefaultConfig()
	conf.Nodes = []node.Config{
		{URL: "http://node1:14265"},
		{URL: "http://node2:14265"},
	}

	if modify != nil {
		modify(&conf)
	}

	c, err := New(conf, WithTransport(transport))
	require.NoError(t, err)

	t.Cleanup(c.Close)

	return c, transport
}

func TestNew_InvalidConfig(t *testing.T) {
	conf := DefaultConfig()
	conf.Nodes = []node.Config{{URL: "http://node1"}, {URL: "ftp://node2"}}
	conf.MinQuorumSize = 0
	conf.QuorumThreshold = 150
	conf.APITimeout = 0

	_, err := New(conf)
	require.Error(t, err)

	assert.ErrorIs(t, err, node.ErrInvalidURL)
	assert.Contains(t, err.Error(), "nodes[1]")
	assert.Contains(t, err.Error(), "minQuorumSize")
	assert.Contains(t, err.Error(), "quorumThreshold")
	assert.Contains(t, err.Error(), "apiTimeout")
}

func TestNew_NoNodes(t *testing.T) {
	_, err := New(DefaultConfig())
	assert.ErrorIs(t, err, errNoNodesConfig)
}

func TestClient_RequestJSONWithoutHealthCheck(t *testing.T) {
	c, transport := newTestClient(t, func(conf *Config) {
		conf.IgnoreNodeHealth = true
	})

	assert.Equal(t, 0, c.Start(context.Background()))

	gomock.InOrder(
		transport.EXPECT().Get(gomock.Any(), nodeIs("http://node1:14265"), 15*time.Second).
			Return(nil, errors.New("down")),
		transport.EXPECT().Get(gomock.Any(), nodeIs("http://node2:14265"), 15*time.Second).
			Return(nodeapi.NewResponse("", []byte(`{"tips":["0x1"]}`)), nil),
	)

	var out struct {
		Tips []string `json:"tips"`
	}

	require.NoError(t, c.RequestJSON(context.Background(), "api/core/v2/tips", "", false, false, &out))
	assert.Equal(t, []string{"0x1"}, out.Tips)
}

func TestClient_StartSyncsHealth(t *testing.T) {
	c, transport := newTestClient(t, nil)

	transport.EXPECT().Get(gomock.Any(), nodeIs("http://node1:14265"), gomock.Any()).
		Return(infoResponse(t, "mainnet"), nil)
	transport.EXPECT().Get(gomock.Any(), nodeIs("http://node2:14265"), gomock.Any()).
		Return(nil, errors.New("down"))

	require.Equal(t, 1, c.Start(context.Background()))

	healthy := c.HealthyNodes()
	require.Len(t, healthy, 1)
	assert.Equal(t, "http://node1:14265", healthy[0].Node.Key())

	// Only the healthy node is asked for the info.
	transport.EXPECT().Get(gomock.Any(), nodeIs("http://node1:14265"), gomock.Any()).
		Return(infoResponse(t, "mainnet"), nil)

	info, err := c.NodeInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://node1:14265", info.URL)
	assert.Equal(t, "mainnet", info.NodeInfo.Protocol.NetworkName)
}

func TestClient_SubmitJSONRemotePow(t *testing.T) {
	c, transport := newTestClient(t, func(conf *Config) {
		conf.IgnoreNodeHealth = true
		conf.PrimaryPowNode = &node.Config{URL: "http://pow:14265"}
	})

	body := map[string]string{"protocolVersion": "2"}

	transport.EXPECT().PostJSON(gomock.Any(), nodeIs("http://pow:14265"), 100*time.Second, body).
		Return(nodeapi.NewResponse("", []byte(`{"blockId":"0xabc"}`)), nil)

	var out map[string]string
	require.NoError(t, c.SubmitJSON(context.Background(), nodeapi.BlocksPath, body, false, &out))
	assert.Equal(t, "0xabc", out["blockId"])
}

func TestClient_SubmitBytesLocalPow(t *testing.T) {
	c, transport := newTestClient(t, func(conf *Config) {
		conf.IgnoreNodeHealth = true
		conf.PrimaryPowNode = &node.Config{URL: "http://pow:14265"}
	})

	body := []byte{0x02, 0x01}

	// The pow node is not preferred when the proof of work is done locally.
	transport.EXPECT().PostBytes(gomock.Any(), nodeIs("http://node1:14265"), 15*time.Second, body).
		Return(nodeapi.NewResponse("", []byte(`{}`)), nil)

	require.NoError(t, c.SubmitBytes(context.Background(), nodeapi.BlocksPath, body, true, nil))
}

func TestClient_SetNodeDisabled(t *testing.T) {
	c, transport := newTestClient(t, func(conf *Config) {
		conf.IgnoreNodeHealth = true
	})

	require.NoError(t, c.SetNodeDisabled("http://node1:14265", true))

	transport.EXPECT().GetBytes(gomock.Any(), nodeIs("http://node2:14265"), gomock.Any()).
		Return(nodeapi.NewResponse("", []byte{0x01}), nil)

	data, err := c.RequestBytes(context.Background(), "api/core/v2/blocks/0x1", "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, data)

	err = c.SetNodeDisabled("http://unknown:14265", true)
	assert.ErrorIs(t, err, ErrUnknownNode)

	err = c.SetNodeDisabled("not a url", true)
	assert.ErrorIs(t, err, node.ErrInvalidURL)
}

func TestClient_SetNodeDisabledRemovesHealthyNode(t *testing.T) {
	c, transport := newTestClient(t, nil)

	transport.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(infoResponse(t, "mainnet"), nil).Times(2)

	require.Equal(t, 2, c.Start(context.Background()))
	require.NoError(t, c.SetNodeDisabled("http://node2:14265", true))

	healthy := c.HealthyNodes()
	require.Len(t, healthy, 1)
	assert.Equal(t, "http://node1:14265", healthy[0].Node.Key())
}

func TestClient_RateLimit(t *testing.T) {
	c, _ := newTestClient(t, func(conf *Config) {
		conf.IgnoreNodeHealth = true
		conf.RequestsPerSecond = 1
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.RequestJSON(ctx, "api/core/v2/tips", "", false, false, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_QuorumFromConfig(t *testing.T) {
	c, _ := newTestClient(t, func(conf *Config) {
		conf.IgnoreNodeHealth = true
		conf.Quorum = true
	})

	err := c.RequestJSON(context.Background(), "api/core/v2/tips", "", true, false, nil)
	assert.EqualError(t, err, "not enough nodes for quorum: available 2, required 3")
}

func TestClient_SetNodeDisabledDuringSync(t *testing.T) {
	c, transport := newTestClient(t, nil)

	var (
		requested = make(chan struct{})
		release   = make(chan struct{})
	)

	transport.EXPECT().Get(gomock.Any(), nodeIs("http://node1:14265"), gomock.Any()).
		Return(infoResponse(t, "mainnet"), nil)
	transport.EXPECT().Get(gomock.Any(), nodeIs("http://node2:14265"), gomock.Any()).
		DoAndReturn(func(context.Context, node.Node, time.Duration) (*nodeapi.Response, error) {
			close(requested)
			<-release

			return infoResponse(t, "mainnet"), nil
		})

	done := make(chan int)

	go func() {
		done <- c.SyncNodes(context.Background())
	}()

	<-requested
	require.NoError(t, c.SetNodeDisabled("http://node2:14265", true))
	close(release)
	<-done

	healthy := c.HealthyNodes()
	require.Len(t, healthy, 1)
	assert.Equal(t, "http://node1:14265", healthy[0].Node.Key())

	transport.EXPECT().GetBytes(gomock.Any(), nodeIs("http://node1:14265"), gomock.Any()).
		Return(nodeapi.NewResponse("", []byte{0x01}), nil)

	_, err := c.RequestBytes(context.Background(), "api/core/v2/blocks/0x1", "")
	require.NoError(t, err)
}
