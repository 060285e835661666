package selection

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/nodepool/health"
	"github.com/maxpoletaev/nodepool/node"
	"github.com/maxpoletaev/nodepool/nodeapi"
	"github.com/maxpoletaev/nodepool/registry"
)

func healthyTracker(entries ...health.Entry) *health.Tracker {
	tracker := health.NewTracker(false)
	snapshot := make(health.Snapshot, len(entries))

	for _, entry := range entries {
		snapshot[entry.Node.Key()] = entry
	}

	tracker.Replace(snapshot)

	return tracker
}

func healthy(n node.Node, features ...string) health.Entry {
	return health.Entry{Node: n, Info: nodeapi.InfoResponse{Features: features}}
}

func keys(nodes []node.Node) []string {
	result := make([]string, len(nodes))
	for i, n := range nodes {
		result[i] = n.Key()
	}

	return result
}

func TestSelect_PrimaryAndHealthy(t *testing.T) {
	primary := node.MustParse("http://primary")
	pow := node.MustParse("http://pow")
	node1 := node.MustParse("http://node1")
	node2 := node.MustParse("http://node2")

	reg := registry.New(registry.Config{
		PrimaryNode:    &primary,
		PrimaryPowNode: &pow,
		Nodes:          []node.Node{node1, node2},
	})

	tracker := healthyTracker(healthy(node1), healthy(node2), healthy(primary))
	selector := New(reg, tracker)

	for i := 0; i < 20; i++ {
		nodes, err := selector.Select(nodeapi.InfoPath, "", true, false)
		require.NoError(t, err)

		got := keys(nodes)
		require.Len(t, got, 4)

		// Pow primary first, then primary, then healthy nodes in any order.
		assert.Equal(t, "http://pow:80", got[0])
		assert.Equal(t, "http://primary:80", got[1])
		assert.ElementsMatch(t, []string{"http://node1:80", "http://node2:80"}, got[2:])
	}
}

func TestSelect_WithoutPowSkipsPowPrimary(t *testing.T) {
	primary := node.MustParse("http://primary")
	pow := node.MustParse("http://pow")
	node1 := node.MustParse("http://node1")

	reg := registry.New(registry.Config{
		PrimaryNode:    &primary,
		PrimaryPowNode: &pow,
		Nodes:          []node.Node{node1},
	})

	selector := New(reg, healthyTracker(healthy(node1)))

	nodes, err := selector.Select(nodeapi.InfoPath, "", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://primary:80", "http://node1:80"}, keys(nodes))
}

func TestSelect_PrimaryIncludedWhenUnhealthy(t *testing.T) {
	primary := node.MustParse("http://primary")
	reg := registry.New(registry.Config{PrimaryNode: &primary})

	nodes, err := New(reg, healthyTracker()).Select(nodeapi.InfoPath, "", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://primary:80"}, keys(nodes))
}

func TestSelect_PermanodesFirst(t *testing.T) {
	primary := node.MustParse("http://primary")
	perma := node.MustParse("http://perma")
	node1 := node.MustParse("http://node1")

	reg := registry.New(registry.Config{
		PrimaryNode: &primary,
		Nodes:       []node.Node{node1},
		Permanodes:  []node.Node{perma, primary},
	})

	selector := New(reg, healthyTracker(healthy(node1)))

	tests := map[string]struct {
		path            string
		query           string
		preferPermanode bool
		want            []string
	}{
		"Preferred": {
			path:            "api/core/v2/outputs/0x01",
			preferPermanode: true,
			want:            []string{"http://perma:80", "http://primary:80", "http://node1:80"},
		},
		"BlocksWithQuery": {
			path:  nodeapi.BlocksPath,
			query: "tag=0x01",
			want:  []string{"http://perma:80", "http://primary:80", "http://node1:80"},
		},
		"BlocksWithLeadingSlash": {
			path:  "/" + nodeapi.BlocksPath,
			query: "tag=0x01",
			want:  []string{"http://perma:80", "http://primary:80", "http://node1:80"},
		},
		"BlocksWithoutQuery": {
			path: nodeapi.BlocksPath,
			want: []string{"http://primary:80", "http://node1:80"},
		},
		"OtherPathWithQuery": {
			path:  "api/core/v2/outputs",
			query: "tag=0x01",
			want:  []string{"http://primary:80", "http://node1:80"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			nodes, err := selector.Select(tt.path, tt.query, false, tt.preferPermanode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(nodes))
		})
	}
}

func TestSelect_PowFilter(t *testing.T) {
	node1 := node.MustParse("http://node1")
	node2 := node.MustParse("http://node2")

	reg := registry.New(registry.Config{Nodes: []node.Node{node1, node2}})
	selector := New(reg, healthyTracker(healthy(node1), healthy(node2, nodeapi.PowFeature)))

	nodes, err := selector.Select(nodeapi.BlocksPath, "", true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://node2:80"}, keys(nodes))
}

func TestSelect_NoPowCapableNode(t *testing.T) {
	node1 := node.MustParse("http://node1")

	reg := registry.New(registry.Config{Nodes: []node.Node{node1}})
	selector := New(reg, healthyTracker(healthy(node1)))

	_, err := selector.Select(nodeapi.BlocksPath, "", true, false)
	assert.ErrorIs(t, err, ErrNoPowCapableNode)
}

func TestSelect_AllDisabled(t *testing.T) {
	primary := node.MustParse("http://primary")
	primary.Disabled = true

	node1 := node.MustParse("http://node1")
	node1.Disabled = true

	reg := registry.New(registry.Config{
		PrimaryNode: &primary,
		Nodes:       []node.Node{node1},
		Permanodes:  []node.Node{node1},
	})

	selector := New(reg, healthyTracker(healthy(node1)))

	_, err := selector.Select(nodeapi.InfoPath, "", false, true)
	assert.ErrorIs(t, err, ErrNoHealthyNodes)
}

func TestSelect_EmptyRegistry(t *testing.T) {
	selector := New(registry.New(registry.Config{}), healthyTracker())

	_, err := selector.Select(nodeapi.InfoPath, "", false, false)
	assert.ErrorIs(t, err, ErrNoHealthyNodes)
}

func TestSelect_HealthCheckingDisabled(t *testing.T) {
	node1 := node.MustParse("http://node1")
	node2 := node.MustParse("http://node2")
	node3 := node.MustParse("http://node3")
	node3.Disabled = true

	reg := registry.New(registry.Config{Nodes: []node.Node{node1, node2, node3}})

	// The snapshot is ignored when health checking is off.
	tracker := health.NewTracker(true)
	tracker.Replace(health.Snapshot{"http://other:80": healthy(node.MustParse("http://other"))})

	nodes, err := New(reg, tracker).Select(nodeapi.InfoPath, "", true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://node1:80", "http://node2:80"}, keys(nodes))
}

func TestSelect_DuplicateURLsKeepFirstPosition(t *testing.T) {
	withJWT, err := node.New("http://node1:14265", &node.Auth{JWT: "first"})
	require.NoError(t, err)

	withBasic, err := node.New("http://node1:14265", &node.Auth{
		BasicAuth: &node.BasicAuth{Username: "u", Password: "p"},
	})
	require.NoError(t, err)

	node2 := node.MustParse("http://node2:14265")

	reg := registry.New(registry.Config{Nodes: []node.Node{withJWT, node2, withBasic}})

	nodes, err := New(reg, health.NewTracker(true)).Select(nodeapi.InfoPath, "", false, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://node1:14265", "http://node2:14265"}, keys(nodes))
	assert.Equal(t, "first", nodes[0].BearerToken())
}

func TestSelect_MaterializesURL(t *testing.T) {
	n, err := node.New("https://node1.example.org", &node.Auth{
		BasicAuth: &node.BasicAuth{Username: "alice", Password: "secret"},
	})
	require.NoError(t, err)

	reg := registry.New(registry.Config{PrimaryNode: &n})

	nodes, err := New(reg, healthyTracker()).Select("api/core/v2/outputs", "tag=0x01", false, false)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	assert.Equal(t, "/api/core/v2/outputs", nodes[0].URL.Path)
	assert.Equal(t, "tag=0x01", nodes[0].URL.RawQuery)
	assert.Equal(t, "alice", nodes[0].URL.User.Username())
}

func TestSelect_CredentialError(t *testing.T) {
	opaque := node.Node{
		URL:  url.URL{Scheme: "mailto", Opaque: "someone@example.org"},
		Auth: &node.Auth{BasicAuth: &node.BasicAuth{Username: "u", Password: "p"}},
	}

	reg := registry.New(registry.Config{PrimaryNode: &opaque})

	_, err := New(reg, healthyTracker()).Select(nodeapi.InfoPath, "", false, false)

	var credErr *node.URLCredentialError
	assert.True(t, errors.As(err, &credErr))
}

func TestSelect_DisabledAfterSnapshot(t *testing.T) {
	node1 := node.MustParse("http://node1")
	node2 := node.MustParse("http://node2")

	reg := registry.New(registry.Config{Nodes: []node.Node{node1, node2}})

	// The snapshot keeps the enabled copies of both nodes.
	selector := New(reg, healthyTracker(healthy(node1), healthy(node2)))

	require.True(t, reg.SetDisabled(node2, true))

	nodes, err := selector.Select("api/core/v2/tips", "", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://node1:80"}, keys(nodes))
}
