package pagerank

import (
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

const (
	// defaultAlpha is the probability that the random surfer teleports to
	// a random page instead of following an outgoing link.
	defaultAlpha = 0.15

	// defaultIterations is the fixed number of rank-propagation rounds
	// executed per run.
	defaultIterations = 50
)

// Config encapsulates the required parameters for creating a new PageRank
// calculator instance. All values are fixed at start-up; none of them are
// runtime-mutable.
type Config struct {
	// Alpha is the damping factor: the fraction of rank mass assigned to
	// random teleportation at every iteration. If not specified, a
	// default value of 0.15 will be used instead.
	Alpha float64

	// Iterations is the fixed number of iterations to execute. There is
	// no convergence check; the calculator always spends its full
	// iteration budget. If not specified, a default value of 50 will be
	// used instead.
	Iterations int

	// ComputeWorkers specifies the number of workers for executing the
	// propagation steps. Vertex computations touch disjoint state, but
	// the default remains a single worker to keep runs fully serialized.
	ComputeWorkers int
}

func (c *Config) validate() error {
	var err error
	if c.Alpha < 0 || c.Alpha > 1.0 {
		err = multierror.Append(err, xerrors.New("damping factor must be in the range (0, 1]"))
	} else if c.Alpha == 0 {
		c.Alpha = defaultAlpha
	}
	if c.Iterations < 0 {
		err = multierror.Append(err, xerrors.New("iteration count must be positive"))
	} else if c.Iterations == 0 {
		c.Iterations = defaultIterations
	}
	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = 1
	}
	return err
}
