package registry

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/maxpoletaev/nodepool/node"
)

// Config is the initial content of the registry.
type Config struct {
	PrimaryNode    *node.Node
	PrimaryPowNode *node.Node
	Nodes          []node.Node
	Permanodes     []node.Node
}

// Registry holds the candidate nodes and their classification. It is safe for
// concurrent use; readers always receive copies.
type Registry struct {
	mut        sync.RWMutex
	primary    *node.Node
	primaryPow *node.Node
	nodes      []node.Node
	permanodes []node.Node
}

func New(conf Config) *Registry {
	r := &Registry{}

	if conf.PrimaryNode != nil {
		r.SetPrimary(*conf.PrimaryNode)
	}

	if conf.PrimaryPowNode != nil {
		r.SetPrimaryPow(*conf.PrimaryPowNode)
	}

	r.AddNodes(conf.Nodes...)
	r.AddPermanodes(conf.Permanodes...)

	return r
}

func indexOf(nodes []node.Node, n node.Node) int {
	key := n.Key()

	return slices.IndexFunc(nodes, func(other node.Node) bool {
		return other.Key() == key
	})
}

// appendUnique appends the nodes whose URL is not yet present. The first
// occurrence keeps its position and auth.
func appendUnique(dst []node.Node, nodes ...node.Node) []node.Node {
	for _, n := range nodes {
		if indexOf(dst, n) == -1 {
			dst = append(dst, n)
		}
	}

	return dst
}

// SetPrimary sets the node that is preferred for all requests.
func (r *Registry) SetPrimary(n node.Node) {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.primary = &n
}

// SetPrimaryPow sets the node that is preferred for requests with remote proof of work.
func (r *Registry) SetPrimaryPow(n node.Node) {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.primaryPow = &n
}

// AddNodes adds nodes to the general pool.
func (r *Registry) AddNodes(nodes ...node.Node) {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.nodes = appendUnique(r.nodes, nodes...)
}

// AddPermanodes adds nodes to the archival pool.
func (r *Registry) AddPermanodes(nodes ...node.Node) {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.permanodes = appendUnique(r.permanodes, nodes...)
}

// Primary returns the primary node, if configured.
func (r *Registry) Primary() (node.Node, bool) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	if r.primary == nil {
		return node.Node{}, false
	}

	return *r.primary, true
}

// PrimaryPow returns the primary node for remote proof of work, if configured.
func (r *Registry) PrimaryPow() (node.Node, bool) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	if r.primaryPow == nil {
		return node.Node{}, false
	}

	return *r.primaryPow, true
}

// Nodes returns a copy of the general pool in insertion order.
func (r *Registry) Nodes() []node.Node {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return slices.Clone(r.nodes)
}

// Permanodes returns a copy of the archival pool in insertion order.
func (r *Registry) Permanodes() []node.Node {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return slices.Clone(r.permanodes)
}

// All returns every known node once: primary, primary pow, pool, permanodes.
func (r *Registry) All() []node.Node {
	r.mut.RLock()
	defer r.mut.RUnlock()

	all := make([]node.Node, 0, len(r.nodes)+len(r.permanodes)+2)

	if r.primary != nil {
		all = appendUnique(all, *r.primary)
	}

	if r.primaryPow != nil {
		all = appendUnique(all, *r.primaryPow)
	}

	all = appendUnique(all, r.nodes...)
	all = appendUnique(all, r.permanodes...)

	return all
}

// SetDisabled toggles the disabled flag of every entry sharing the identity of
// the given node, in all sets. Returns false if the node is unknown.
func (r *Registry) SetDisabled(target node.Node, disabled bool) bool {
	r.mut.Lock()
	defer r.mut.Unlock()

	var (
		key   = target.Key()
		found bool
	)

	update := func(n *node.Node) {
		if n != nil && n.Key() == key {
			n.Disabled = disabled
			found = true
		}
	}

	update(r.primary)
	update(r.primaryPow)

	for i := range r.nodes {
		update(&r.nodes[i])
	}

	for i := range r.permanodes {
		update(&r.permanodes[i])
	}

	return found
}

// IsDisabled reports whether the node with the same identity is currently
// disabled. Unknown nodes are not disabled.
func (r *Registry) IsDisabled(target node.Node) bool {
	r.mut.RLock()
	defer r.mut.RUnlock()

	key := target.Key()

	if r.primary != nil && r.primary.Key() == key {
		return r.primary.Disabled
	}

	if r.primaryPow != nil && r.primaryPow.Key() == key {
		return r.primaryPow.Disabled
	}

	if i := indexOf(r.nodes, target); i != -1 {
		return r.nodes[i].Disabled
	}

	if i := indexOf(r.permanodes, target); i != -1 {
		return r.permanodes[i].Disabled
	}

	return false
}
