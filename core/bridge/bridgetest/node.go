// Package bridgetest provides an in-memory object graph implementing
// bridge.Object, for tests of code that walks the player.
package bridgetest

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"musicbridge/core/bridge"
)

// Properties is the name used in Fail to break the attribute bag read.
const Properties = "properties"

// Node is one fake live entity.
type Node struct {
	Props    map[string]any     // attribute bag, also served by Get
	Hidden   map[string]any     // readable through Get but absent from the bag
	Payloads map[string][]byte  // binary attributes served by Data
	Refs     map[string]*Node   // single references (parent, currentTrack ...)
	Lists    map[string][]*Node // collections served by Elements and ByID
	Results  map[string][]*Node // search results keyed by query
	Fail     map[string]bool    // names whose reads fail; "*" fails everything
	Calls    map[string]int     // read counter per name
}

var _ bridge.Object = (*Node)(nil)

func (n *Node) fails(name string) bool {
	if n.Calls == nil {
		n.Calls = make(map[string]int)
	}
	n.Calls[name]++
	return n.Fail["*"] || n.Fail[name]
}

func (n *Node) broken(name string) error {
	return fmt.Errorf("%w: %s", bridge.ErrScriptFailed, name)
}

func (n *Node) Properties(_ context.Context) (map[string]any, error) {
	if n.fails(Properties) {
		return nil, n.broken(Properties)
	}
	return maps.Clone(n.Props), nil
}

func (n *Node) Get(_ context.Context, name string) (any, error) {
	if n.fails(name) {
		return nil, n.broken(name)
	}
	if v, ok := n.Props[name]; ok {
		return v, nil
	}
	if v, ok := n.Hidden[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", bridge.ErrUnsupported, name)
}

func (n *Node) Data(_ context.Context, name string) ([]byte, error) {
	if n.fails(name) {
		return nil, n.broken(name)
	}
	b, ok := n.Payloads[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bridge.ErrNotFound, name)
	}
	return b, nil
}

func (n *Node) Object(_ context.Context, name string) (bridge.Object, error) {
	if n.fails(name) {
		return nil, n.broken(name)
	}
	ref, ok := n.Refs[name]
	if !ok || ref == nil {
		return nil, fmt.Errorf("%w: %s", bridge.ErrNotFound, name)
	}
	return ref, nil
}

func (n *Node) Elements(_ context.Context, name string) ([]bridge.Object, error) {
	if n.fails(name) {
		return nil, n.broken(name)
	}
	return objects(n.Lists[name]), nil
}

func (n *Node) ByID(_ context.Context, collection string, id int64) (bridge.Object, error) {
	if n.fails(collection) {
		return nil, n.broken(collection)
	}
	for _, member := range n.Lists[collection] {
		if fmt.Sprint(member.Props["id"]) == fmt.Sprint(id) {
			return member, nil
		}
	}
	return nil, fmt.Errorf("%w: %s id %d", bridge.ErrNotFound, collection, id)
}

func (n *Node) Search(_ context.Context, query string) ([]bridge.Object, error) {
	if n.fails("search") {
		return nil, n.broken("search")
	}
	for q, nodes := range n.Results {
		if strings.EqualFold(q, query) {
			return objects(nodes), nil
		}
	}
	return nil, nil
}

func objects(nodes []*Node) []bridge.Object {
	out := make([]bridge.Object, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
