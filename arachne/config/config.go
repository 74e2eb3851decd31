// Package config loads the start-up configuration for the Arachne
// application from a TOML file and applies sane defaults for anything the
// file leaves unset.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"Rank_Engine/rankstore"
)

// Default values applied to unset configuration fields.
const (
	DefaultAlpha          = 0.15
	DefaultIterations     = 50
	DefaultComputeWorkers = 1
	DefaultRankWeight     = 1.0
	DefaultListenAddr     = "localhost:8080"
)

// Config holds the application configuration.
type Config struct {
	Ranker RankerConfig `toml:"ranker"`
	Store  StoreConfig  `toml:"store"`
	Index  IndexConfig  `toml:"index"`
	API    APIConfig    `toml:"api"`
}

// RankerConfig configures the rank propagation pass.
type RankerConfig struct {
	// The probability that a surfer jumps to a random document instead of
	// following a link.
	Alpha float64 `toml:"alpha"`

	// The number of propagation iterations to execute.
	Iterations int `toml:"iterations"`

	// The number of workers for the propagation computations.
	ComputeWorkers int `toml:"compute_workers"`

	// The weight applied to rank scores when they get blended into
	// retrieval scores.
	RankWeight float64 `toml:"rank_weight"`
}

// StoreConfig configures where rank tables get persisted.
type StoreConfig struct {
	// The path of the flat rank file. When a DSN is provided the file is
	// not used.
	RankFile string `toml:"rank_file"`

	// An optional postgres-compatible DSN for persisting rank tables in
	// CockroachDB instead of the flat file.
	DSN string `toml:"dsn"`
}

// IndexConfig configures the optional document index connection.
type IndexConfig struct {
	// The elasticsearch nodes to publish scores to. When empty, scores
	// are not published to an index.
	ESNodes []string `toml:"es_nodes"`
}

// APIConfig configures the ranks HTTP API.
type APIConfig struct {
	// The address to listen for incoming requests.
	ListenAddr string `toml:"listen_addr"`
}

// Load reads the configuration from the TOML file at path. A missing file
// is an error; use Default for a file-less run.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, xerrors.Errorf("config: decode %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration populated with the default values.
func Default() *Config {
	return &Config{
		Ranker: RankerConfig{
			Alpha:          DefaultAlpha,
			Iterations:     DefaultIterations,
			ComputeWorkers: DefaultComputeWorkers,
			RankWeight:     DefaultRankWeight,
		},
		Store: StoreConfig{
			RankFile: rankstore.DefaultRankFileName,
		},
		API: APIConfig{
			ListenAddr: DefaultListenAddr,
		},
	}
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Ranker.Alpha <= 0 || cfg.Ranker.Alpha >= 1 {
		err = multierror.Append(err, xerrors.Errorf("alpha must be in (0, 1)"))
	}
	if cfg.Ranker.Iterations <= 0 {
		err = multierror.Append(err, xerrors.Errorf("iterations must be positive"))
	}
	if cfg.Ranker.ComputeWorkers <= 0 {
		err = multierror.Append(err, xerrors.Errorf("compute workers must be positive"))
	}
	if cfg.Ranker.RankWeight < 0 {
		err = multierror.Append(err, xerrors.Errorf("rank weight must not be negative"))
	}
	if cfg.Store.RankFile == "" && cfg.Store.DSN == "" {
		err = multierror.Append(err, xerrors.Errorf("either a rank file or a store DSN must be specified"))
	}
	if cfg.API.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	return err
}
