package crawler

import (
	"Rank_Engine/linkgraph/graph"
)

// GraphBuilder applies page-indexed events to a link graph. It is the only
// mutation path into the graph while a crawl is in progress and performs no
// locking of its own; callers must deliver events one at a time.
type GraphBuilder struct {
	g *graph.Graph
}

// NewGraphBuilder returns a GraphBuilder that records events into g.
func NewGraphBuilder(g *graph.Graph) *GraphBuilder {
	return &GraphBuilder{g: g}
}

// OnPageIndexed records a single page-indexed event: the page's node is
// marked as indexed and stamped with its document ID, and an edge is added
// for each distinct outgoing link. Self-links never become edges, and links
// already present in the node's outgoing set are skipped since the graph
// itself does not de-duplicate edges.
func (b *GraphBuilder) OnPageIndexed(url, documentID string, links []string) {
	node := b.g.GetOrCreateNode(url)
	node.DocumentID = documentID
	node.Indexed = true

	for _, link := range links {
		if link == url {
			continue
		}
		if node.HasEdgeTo(b.g.GetOrCreateNode(link)) {
			continue
		}
		b.g.AddEdge(url, link)
	}
}
