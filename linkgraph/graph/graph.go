package graph

import (
	"fmt"
	"io"
	"sort"
)

// Node represents a single page in the crawl graph. Nodes are identified by
// their canonical URL and track adjacency in both directions so that rank
// propagation can walk incoming edges while out-degrees remain cheap to
// compute.
type Node struct {
	// Name is the canonical URL for the page.
	Name string

	// DocumentID is the identifier assigned when the page got indexed
	// (e.g. P001.html). It remains empty for pages that were discovered
	// but never fetched.
	DocumentID string

	// Indexed indicates whether the crawler fetched and indexed the page.
	Indexed bool

	// Out contains the targets of the node's outgoing edges. The slice
	// may contain duplicates; de-duplication is the caller's concern.
	Out []*Node

	// In contains the sources of the node's incoming edges.
	In []*Node
}

// HasEdgeTo reports whether an outgoing edge to target already exists.
func (n *Node) HasEdgeTo(target *Node) bool {
	for _, dst := range n.Out {
		if dst == target {
			return true
		}
	}
	return false
}

// Graph is a directed graph keyed by canonical page URL. It owns its nodes
// exclusively and is not safe for concurrent use; the crawl intake delivers
// mutations fully serialized.
type Graph struct {
	nodes map[string]*Node
}

// NewGraph creates an empty link graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// GetOrCreateNode returns the node registered under name, creating and
// inserting a fresh un-indexed node if none exists. It never fails; pages
// referenced before being visited are represented as un-indexed nodes until
// the crawler reaches them.
func (g *Graph) GetOrCreateNode(name string) *Node {
	if node := g.nodes[name]; node != nil {
		return node
	}
	node := &Node{Name: name}
	g.nodes[name] = node
	return node
}

// Lookup returns the node registered under name or nil when the graph does
// not contain it.
func (g *Graph) Lookup(name string) *Node {
	return g.nodes[name]
}

// AddEdge inserts a directed edge from src to dst, creating either endpoint
// if it is not yet part of the graph. The edge is recorded on both ends so
// that dst.In and src.Out stay symmetric. AddEdge performs no
// de-duplication; invoking it twice with the same arguments yields two
// parallel edges.
func (g *Graph) AddEdge(src, dst string) {
	srcNode := g.GetOrCreateNode(src)
	dstNode := g.GetOrCreateNode(dst)
	srcNode.Out = append(srcNode.Out, dstNode)
	dstNode.In = append(dstNode.In, srcNode)
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Print writes each node together with its outgoing adjacency list to w for
// diagnostic purposes.
func (g *Graph) Print(w io.Writer) {
	for it := g.Nodes(); it.Next(); {
		node := it.Node()
		fmt.Fprintf(w, "%s->%s\n", node.Name, formatAdjacency(node.Out))
	}
}

func formatAdjacency(nodes []*Node) string {
	names := make([]string, len(nodes))
	for i, node := range nodes {
		names[i] = node.Name
	}
	sort.Strings(names)

	out := "["
	for i, name := range names {
		if i != 0 {
			out += ", "
		}
		out += name
	}
	return out + "]"
}

// removeNode deletes the node registered under name and erases any adjacency
// entries in other nodes that reference it.
func (g *Graph) removeNode(name string) {
	node := g.nodes[name]
	if node == nil {
		return
	}
	delete(g.nodes, name)

	for _, dst := range node.Out {
		dst.In = removeRefs(dst.In, node)
	}
	for _, src := range node.In {
		src.Out = removeRefs(src.Out, node)
	}
}

func removeRefs(list []*Node, node *Node) []*Node {
	filtered := list[:0]
	for _, n := range list {
		if n != node {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
