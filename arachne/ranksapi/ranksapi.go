// Package ranksapi exposes the persisted rank table over HTTP so operators
// and the search side can inspect the scores produced by the latest rank
// propagation pass.
package ranksapi

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"Rank_Engine/rankstore"
)

const (
	healthEndpoint = "/healthz"
	ranksEndpoint  = "/ranks"
	rankEndpoint   = "/ranks/{document}"
)

// Config encapsulates the settings for configuring the ranks API service.
type Config struct {
	// The store to read rank tables from.
	Store rankstore.Store

	// The address to listen for incoming requests.
	ListenAddr string

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Store == nil {
		err = multierror.Append(err, xerrors.Errorf("rank store has not been provided"))
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service serves the rank table over HTTP.
type Service struct {
	cfg    Config
	router *mux.Router
}

// NewService creates a new ranks API service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranks API service: config validation failed: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		router: mux.NewRouter(),
	}
	svc.router.HandleFunc(healthEndpoint, svc.handleHealth).Methods(http.MethodGet)
	svc.router.HandleFunc(ranksEndpoint, svc.handleRanks).Methods(http.MethodGet)
	svc.router.HandleFunc(rankEndpoint, svc.handleRank).Methods(http.MethodGet)
	return svc, nil
}

// Name implements service.Service.
func (svc *Service) Name() string { return "ranks API" }

// Run implements service.Service.
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithField("listen_addr", svc.cfg.ListenAddr).Info("starting service")
	defer svc.cfg.Logger.Info("stopped service")

	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	doneCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !xerrors.Is(err, http.ErrServerClosed) {
			doneCh <- err
			return
		}
		doneCh <- nil
	}()

	select {
	case <-ctx.Done():
		_ = srv.Close()
		return <-doneCh
	case err := <-doneCh:
		return err
	}
}

// Router returns the mux instance that dispatches incoming requests.
func (svc *Service) Router() http.Handler {
	return svc.router
}

func (svc *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (svc *Service) handleRanks(w http.ResponseWriter, _ *http.Request) {
	table, err := svc.cfg.Store.Load()
	if err != nil {
		svc.cfg.Logger.WithField("err", err).Error("unable to load rank table")
		http.Error(w, "rank table unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, table)
}

func (svc *Service) handleRank(w http.ResponseWriter, r *http.Request) {
	table, err := svc.cfg.Store.Load()
	if err != nil {
		svc.cfg.Logger.WithField("err", err).Error("unable to load rank table")
		http.Error(w, "rank table unavailable", http.StatusInternalServerError)
		return
	}

	docID := mux.Vars(r)["document"]
	score, exists := table[docID]
	if !exists {
		http.Error(w, "no rank entry for document", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]interface{}{
		"document": docID,
		"score":    score,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
