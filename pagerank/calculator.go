// Package pagerank implements the iterative PageRank algorithm over the
// pruned crawl graph using the random-surfer model. The calculator runs a
// fixed iteration budget and re-normalizes the rank vector after every
// iteration so the total assigned mass is always exactly 1; any mass leaked
// through dangling documents is recovered by the normalization pass.
package pagerank

import (
	"context"

	"golang.org/x/xerrors"

	"Rank_Engine/graphprocessing/bspgraph"
	"Rank_Engine/graphprocessing/bspgraph/aggregator"
	"Rank_Engine/graphprocessing/bspgraph/message"
)

// rankMassName is the aggregator that accumulates the un-normalized rank
// mass produced by each collect step.
const rankMassName = "rank_mass"

// Calculator executes the PageRank algorithm on a graph and serves the
// final scores through its Scores method.
type Calculator struct {
	g   *bspgraph.Graph
	cfg Config

	executorFactory bspgraph.ExecutorFactory
}

// NewCalculator returns a new Calculator instance using the provided config
// options.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank calculator config validation failed: %w", err)
	}

	g, err := bspgraph.NewGraph(bspgraph.GraphConfig{
		ComputeWorkers: cfg.ComputeWorkers,
		ComputeFn:      makePropagationComputeFunc(cfg.Alpha),
	})
	if err != nil {
		return nil, err
	}

	return &Calculator{
		cfg:             cfg,
		g:               g,
		executorFactory: bspgraph.NewExecutor,
	}, nil
}

// Close releases any resources allocated by this Calculator instance.
func (c *Calculator) Close() error {
	return c.g.Close()
}

// SetExecutorFactory configures the calculator to use a custom executor
// factory when the Executor method is invoked.
func (c *Calculator) SetExecutorFactory(factory bspgraph.ExecutorFactory) {
	c.executorFactory = factory
}

// AddVertex inserts a new vertex with the specified id into the graph.
func (c *Calculator) AddVertex(id string) {
	c.g.AddVertex(id, 0.0)
}

// AddEdge inserts a directed edge from src to dst. If both src and dst refer
// to the same vertex then this is a no-op; self-links never participate in
// rank propagation.
func (c *Calculator) AddEdge(src, dst string) error {
	if src == dst {
		return nil
	}
	return c.g.AddEdge(src, dst, nil)
}

// Graph returns the underlying bspgraph.Graph instance.
func (c *Calculator) Graph() *bspgraph.Graph {
	return c.g
}

// Executor creates and returns a bspgraph.Executor for running the
// algorithm once the graph layout has been set up.
func (c *Calculator) Executor() *bspgraph.Executor {
	c.g.RegisterAggregator(rankMassName, new(aggregator.Float64Accumulator))
	cb := bspgraph.ExecutorCallbacks{
		PreStep: func(_ context.Context, g *bspgraph.Graph) error {
			// Reset the mass accumulator before each collect step.
			if g.Superstep()%2 == 1 {
				g.Aggregator(rankMassName).Set(0.0)
			}
			return nil
		},
		PostStep: func(_ context.Context, g *bspgraph.Graph, _ int) error {
			if g.Superstep()%2 != 1 {
				return nil
			}
			// Normalize after every collect step so the total rank
			// mass is exactly 1. This also recovers the mass leaked
			// through documents without outgoing links.
			mass := g.Aggregator(rankMassName).Get().(float64)
			for _, v := range g.Vertices() {
				v.SetValue(v.Value().(float64) / mass)
			}
			return nil
		},
	}
	return c.executorFactory(c.g, cb)
}

// Run executes the full, fixed iteration budget against the graph. Each
// iteration consists of a distribute and a collect superstep.
func (c *Calculator) Run(ctx context.Context) error {
	return c.Executor().RunSteps(ctx, 2*c.cfg.Iterations)
}

// Scores invokes the provided visitor function for each vertex in the
// graph.
func (c *Calculator) Scores(visitFn func(id string, score float64) error) error {
	for id, v := range c.g.Vertices() {
		if err := visitFn(id, v.Value().(float64)); err != nil {
			return err
		}
	}
	return nil
}

// rankMessage distributes a share of a document's rank mass along one of
// its outgoing edges.
type rankMessage struct {
	score float64
}

// Type implements message.Message.
func (m rankMessage) Type() string { return "rank" }

// makePropagationComputeFunc returns the compute function for one rank
// propagation run with the provided damping factor.
//
// Every PageRank iteration spans two supersteps. In even (distribute)
// supersteps each vertex spreads its current rank evenly across its
// outgoing edges; dividing by the out-degree only ever happens when the
// vertex has outgoing edges, so a division by zero is structurally
// impossible. In odd (collect) supersteps each vertex folds the incoming
// shares into its new rank and accumulates the produced mass for the
// normalization pass that follows the step.
func makePropagationComputeFunc(alpha float64) bspgraph.ComputeFunc {
	return func(g *bspgraph.Graph, v *bspgraph.Vertex, msgIt message.Iterator) error {
		superstep := g.Superstep()
		docCount := float64(len(g.Vertices()))

		if superstep%2 == 0 {
			// Every document starts out with an equal share of the
			// total rank mass.
			if superstep == 0 {
				v.SetValue(1.0 / docCount)
			}
			if outDegree := float64(len(v.Edges())); outDegree > 0 {
				return g.BroadcastToNeighbors(v, rankMessage{score: v.Value().(float64) / outDegree})
			}
			return nil
		}

		var incoming float64
		for msgIt.Next() {
			incoming += msgIt.Message().(rankMessage).score
		}

		// rankSource is the teleportation share every document receives
		// regardless of its incoming links.
		rankSource := alpha / docCount
		newScore := (1.0-alpha)*incoming + rankSource
		v.SetValue(newScore)
		g.Aggregator(rankMassName).Aggregate(newScore)
		return nil
	}
}
