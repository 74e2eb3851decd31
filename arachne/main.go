// Arachne ingests a crawl manifest, computes PageRank scores for the
// indexed documents and serves the resulting rank table over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"Rank_Engine/arachne/config"
	"Rank_Engine/arachne/ranksapi"
	"Rank_Engine/arachne/service"
	"Rank_Engine/arachne/service/ranker"
	"Rank_Engine/crawler"
	"Rank_Engine/linkgraph/graph"
	"Rank_Engine/rankstore"
	"Rank_Engine/rankstore/cockroachdb"
	"Rank_Engine/textindexer/store/es"
)

const appName = "arachne"

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	manifestPath := flag.String("manifest", "", "path to the crawl manifest to ingest")
	flag.Parse()

	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger := rootLogger.WithField("app", appName)

	if err := runMain(logger, *configPath, *manifestPath); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
}

func runMain(logger *logrus.Entry, configPath, manifestPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if manifestPath == "" {
		return xerrors.Errorf("no crawl manifest specified; use -manifest")
	}

	g := graph.NewGraph()
	if err = ingestManifest(logger, g, manifestPath); err != nil {
		return err
	}

	store, storeCloseFn, err := makeStore(cfg)
	if err != nil {
		return err
	}
	defer storeCloseFn()

	var indexAPI ranker.IndexAPI
	if len(cfg.Index.ESNodes) != 0 {
		if indexAPI, err = es.NewElasticSearchIndexer(cfg.Index.ESNodes, false); err != nil {
			return xerrors.Errorf("connect to document index: %w", err)
		}
	}

	var svcGroup service.Group
	rankerSvc, err := ranker.NewService(ranker.Config{
		Graph:          g,
		Store:          store,
		IndexAPI:       indexAPI,
		Alpha:          cfg.Ranker.Alpha,
		Iterations:     cfg.Ranker.Iterations,
		ComputeWorkers: cfg.Ranker.ComputeWorkers,
		Logger:         logger.WithField("service", "ranker"),
	})
	if err != nil {
		return err
	}
	svcGroup = append(svcGroup, rankerSvc)

	apiSvc, err := ranksapi.NewService(ranksapi.Config{
		Store:      store,
		ListenAddr: cfg.API.ListenAddr,
		Logger:     logger.WithField("service", "ranks API"),
	})
	if err != nil {
		return err
	}
	svcGroup = append(svcGroup, apiSvc)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()
	go handleSignals(logger, cancelFn)

	return svcGroup.Run(ctx)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func ingestManifest(logger *logrus.Entry, g *graph.Graph, path string) error {
	it, err := crawler.OpenManifest(path)
	if err != nil {
		return err
	}

	processed, err := crawler.NewCrawler(g).Crawl(context.Background(), it)
	if err != nil {
		_ = it.Close()
		return xerrors.Errorf("ingest crawl manifest: %w", err)
	}
	if err = it.Close(); err != nil {
		return xerrors.Errorf("ingest crawl manifest: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"manifest":  path,
		"pages":     processed,
		"doc_count": g.Len(),
	}).Info("ingested crawl manifest")
	return nil
}

func makeStore(cfg *config.Config) (rankstore.Store, func(), error) {
	if cfg.Store.DSN != "" {
		store, err := cockroachdb.NewCockroachDBStore(cfg.Store.DSN)
		if err != nil {
			return nil, nil, xerrors.Errorf("connect to rank store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
	return rankstore.NewFlatFile(cfg.Store.RankFile), func() {}, nil
}

func handleSignals(logger *logrus.Entry, cancelFn func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.WithField("signal", sig.String()).Info("received signal; shutting down")
	cancelFn()
}
