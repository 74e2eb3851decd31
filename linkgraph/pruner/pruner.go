// Package pruner derives the indexed-only view of a crawl graph. The crawl
// frontier typically contains nodes that were discovered through links but
// never fetched (crawl limit reached, disallowed by policy, fetch failure);
// rank propagation must only ever see documents that made it into the index.
package pruner

import (
	"Rank_Engine/linkgraph/graph"
)

// Prune returns a fresh graph containing exactly the indexed nodes of g and
// the edges whose endpoints are both indexed. The source graph is never
// mutated; building a new graph sidesteps the iterator-invalidation hazards
// of removing nodes from a live traversal.
func Prune(g *graph.Graph) *graph.Graph {
	pruned := graph.NewGraph()

	for it := g.Nodes(); it.Next(); {
		node := it.Node()
		if !node.Indexed {
			continue
		}

		prunedNode := pruned.GetOrCreateNode(node.Name)
		prunedNode.DocumentID = node.DocumentID
		prunedNode.Indexed = true

		for _, dst := range node.Out {
			if !dst.Indexed {
				continue
			}
			// The source adjacency may contain parallel edges; the
			// copy is idempotent.
			if prunedNode.HasEdgeTo(pruned.GetOrCreateNode(dst.Name)) {
				continue
			}
			pruned.AddEdge(node.Name, dst.Name)
		}
	}
	return pruned
}
