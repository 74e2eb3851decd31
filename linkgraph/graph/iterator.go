package graph

// NodeIterator implements a lazy, single-pass cursor over the nodes of a
// Graph. The visit order is unspecified but remains stable for the duration
// of a pass. Obtaining a new iterator restarts the traversal.
//
// Only a single iterator may mutate the graph at a time; the graph performs
// no locking.
type NodeIterator struct {
	g *Graph

	names       []string
	pos         int
	latchedNode *Node
}

// Nodes returns an iterator over all nodes currently in the graph.
func (g *Graph) Nodes() *NodeIterator {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	return &NodeIterator{g: g, names: names}
}

// Next advances the iterator. It returns false once all nodes for this pass
// have been visited. Nodes removed from the graph mid-pass are skipped.
func (it *NodeIterator) Next() bool {
	for it.pos < len(it.names) {
		node := it.g.nodes[it.names[it.pos]]
		it.pos++
		if node != nil {
			it.latchedNode = node
			return true
		}
	}
	it.latchedNode = nil
	return false
}

// Node returns the node the iterator currently points to.
func (it *NodeIterator) Node() *Node {
	return it.latchedNode
}

// Remove deletes the node returned by the last call to Next from the graph,
// together with every edge that touches it. It is only valid immediately
// after a successful Next call and does not invalidate the remainder of the
// pass.
func (it *NodeIterator) Remove() {
	if it.latchedNode == nil {
		return
	}
	it.g.removeNode(it.latchedNode.Name)
	it.latchedNode = nil
}
