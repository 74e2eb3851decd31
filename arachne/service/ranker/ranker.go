// Package ranker implements the rank propagation service for the Arachne
// application. A run prunes the crawl graph down to its indexed documents,
// executes the PageRank calculator against the pruned graph and publishes
// the resulting score table to the configured rank store and, optionally,
// to the document index.
package ranker

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"Rank_Engine/linkgraph/graph"
	"Rank_Engine/linkgraph/pruner"
	"Rank_Engine/pagerank"
	"Rank_Engine/rankstore"
)

// IndexAPI defines a set of API methods for publishing computed scores to
// the document index.
type IndexAPI interface {
	UpdateRank(documentID string, score float64) error
}

// Config encapsulates the settings for configuring the ranker service.
type Config struct {
	// The crawl graph to compute scores for.
	Graph *graph.Graph

	// The store that receives the computed score table.
	Store rankstore.Store

	// An optional API for publishing scores to the document index. When
	// nil, scores are only written to the store.
	IndexAPI IndexAPI

	// The probability that a surfer jumps to a random document instead of
	// following a link.
	Alpha float64

	// The number of propagation iterations to execute.
	Iterations int

	// The number of workers to spin up for the propagation computations.
	ComputeWorkers int

	// A clock instance for measuring run durations. If not specified, the
	// wall clock will be used.
	Clock clock.Clock

	// The logger to use. If not specified, a noop logger will be used
	// instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Graph == nil {
		err = multierror.Append(err, xerrors.Errorf("crawl graph has not been provided"))
	}
	if cfg.Store == nil {
		err = multierror.Append(err, xerrors.Errorf("rank store has not been provided"))
	}
	if cfg.Alpha == 0 {
		cfg.Alpha = 0.15
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = 50
	}
	if cfg.ComputeWorkers == 0 {
		cfg.ComputeWorkers = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service computes PageRank scores for a crawl graph and publishes them.
type Service struct {
	cfg Config
}

// NewService creates a new ranker service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker service: config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Name implements service.Service.
func (svc *Service) Name() string { return "ranker" }

// Run implements service.Service. It executes a single rank propagation
// pass and returns once the score table has been published.
func (svc *Service) Run(ctx context.Context) error {
	runID := uuid.New()
	logger := svc.cfg.Logger.WithField("run_id", runID.String())

	logger.WithFields(logrus.Fields{
		"alpha":      svc.cfg.Alpha,
		"iterations": svc.cfg.Iterations,
	}).Info("starting rank propagation pass")

	startAt := svc.cfg.Clock.Now()
	table, err := svc.rankGraph(ctx)
	if err != nil {
		return err
	}

	if err = svc.cfg.Store.Save(table); err != nil {
		return xerrors.Errorf("ranker: save score table: %w", err)
	}
	if svc.cfg.IndexAPI != nil {
		for docID, score := range table {
			if err = svc.cfg.IndexAPI.UpdateRank(docID, score); err != nil {
				return xerrors.Errorf("ranker: update rank for %q: %w", docID, err)
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"doc_count":    len(table),
		"elapsed_time": svc.cfg.Clock.Now().Sub(startAt).String(),
	}).Info("completed rank propagation pass")
	return nil
}

func (svc *Service) rankGraph(ctx context.Context) (rankstore.Table, error) {
	pruned := pruner.Prune(svc.cfg.Graph)
	if pruned.Len() == 0 {
		return nil, xerrors.Errorf("ranker: crawl graph contains no indexed documents")
	}
	if svc.cfg.Logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		var buf bytes.Buffer
		pruned.Print(&buf)
		svc.cfg.Logger.WithField("graph", buf.String()).Debug("pruned crawl graph")
	}

	calc, err := pagerank.NewCalculator(pagerank.Config{
		Alpha:          svc.cfg.Alpha,
		Iterations:     svc.cfg.Iterations,
		ComputeWorkers: svc.cfg.ComputeWorkers,
	})
	if err != nil {
		return nil, xerrors.Errorf("ranker: create calculator: %w", err)
	}
	defer func() { _ = calc.Close() }()

	for it := pruned.Nodes(); it.Next(); {
		calc.AddVertex(it.Node().DocumentID)
	}
	for it := pruned.Nodes(); it.Next(); {
		node := it.Node()
		for _, dst := range node.Out {
			if err = calc.AddEdge(node.DocumentID, dst.DocumentID); err != nil {
				return nil, xerrors.Errorf("ranker: add edge: %w", err)
			}
		}
	}

	if err = calc.Run(ctx); err != nil {
		return nil, xerrors.Errorf("ranker: run calculator: %w", err)
	}

	table := make(rankstore.Table, pruned.Len())
	err = calc.Scores(func(id string, score float64) error {
		table[id] = score
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("ranker: collect scores: %w", err)
	}
	return table, nil
}
