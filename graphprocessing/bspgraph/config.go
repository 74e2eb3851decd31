package bspgraph

import (
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"Rank_Engine/graphprocessing/bspgraph/message"
)

// GraphConfig encapsulates the configuration options for creating graphs.
type GraphConfig struct {
	// QueueFactory is used by the graph to create message queue instances
	// for each vertex. If not specified, the in-memory queue will be used
	// instead.
	QueueFactory message.QueueFactory

	// ComputeFn is the compute function that will be invoked for each
	// graph vertex when executing a superstep.
	ComputeFn ComputeFunc

	// ComputeWorkers specifies the number of workers to use for invoking
	// the compute function on the graph vertices. If not specified, a
	// single worker will be used.
	ComputeWorkers int
}

func (g *GraphConfig) validate() error {
	var err error
	if g.QueueFactory == nil {
		g.QueueFactory = message.NewInMemoryQueue
	}
	if g.ComputeWorkers <= 0 {
		g.ComputeWorkers = 1
	}
	if g.ComputeFn == nil {
		err = multierror.Append(err, xerrors.New("compute function has not been specified"))
	}
	return err
}
