// Copyright 2026 movierec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package config

import (
	"runtime"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the batch trainer. The defaults reproduce
// the historical one-shot script exactly, so a run without a config file
// trains against the local movies database.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Train     TrainConfig     `mapstructure:"train"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// DatabaseConfig is the configuration for the document store.
type DatabaseConfig struct {
	// DataStore is the connection URI. Read preference and other driver
	// options are carried by the URI itself.
	DataStore         string `mapstructure:"data_store"`
	RatingsCollection string `mapstructure:"ratings_collection"`
	OutputCollection  string `mapstructure:"output_collection"`
}

// TrainConfig is the configuration for splitting and model fitting.
type TrainConfig struct {
	NFactors  int     `mapstructure:"n_factors"`
	NEpochs   int     `mapstructure:"n_epochs"`
	Reg       float64 `mapstructure:"reg"`
	TestRatio float64 `mapstructure:"test_ratio"`
	// RandomSeed seeds the train/test split. A negative seed picks a
	// wall-clock seed, making runs non-reproducible like the historical
	// script.
	RandomSeed int64 `mapstructure:"random_seed"`
	Verbose    int   `mapstructure:"verbose"`
}

// RecommendConfig is the configuration for recommendation generation.
type RecommendConfig struct {
	TopK       int `mapstructure:"top_k"`
	SubsetSize int `mapstructure:"subset_size"`
	Jobs       int `mapstructure:"jobs"`
}

// GetDefaultConfig returns a Config with default values.
func GetDefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DataStore:         "mongodb://localhost:27017/movies.movie_ratings?readPreference=primaryPreferred",
			RatingsCollection: "movie_ratings",
			OutputCollection:  "user_recommendations",
		},
		Train: TrainConfig{
			NFactors:   10,
			NEpochs:    5,
			Reg:        0.01,
			TestRatio:  0.2,
			RandomSeed: -1,
			Verbose:    1,
		},
		Recommend: RecommendConfig{
			TopK:       10,
			SubsetSize: 3,
			Jobs:       runtime.NumCPU(),
		},
	}
}

func setDefault(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("database.data_store", defaults.Database.DataStore)
	v.SetDefault("database.ratings_collection", defaults.Database.RatingsCollection)
	v.SetDefault("database.output_collection", defaults.Database.OutputCollection)
	v.SetDefault("train.n_factors", defaults.Train.NFactors)
	v.SetDefault("train.n_epochs", defaults.Train.NEpochs)
	v.SetDefault("train.reg", defaults.Train.Reg)
	v.SetDefault("train.test_ratio", defaults.Train.TestRatio)
	v.SetDefault("train.random_seed", defaults.Train.RandomSeed)
	v.SetDefault("train.verbose", defaults.Train.Verbose)
	v.SetDefault("recommend.top_k", defaults.Recommend.TopK)
	v.SetDefault("recommend.subset_size", defaults.Recommend.SubsetSize)
	v.SetDefault("recommend.jobs", defaults.Recommend.Jobs)
}

// LoadConfig loads the configuration from a TOML file. An empty path loads
// the defaults. Environment variables prefixed with MOVIEREC_ override file
// values, e.g. MOVIEREC_DATABASE_DATA_STORE.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix("movierec")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (config *Config) Validate() error {
	if config.Database.DataStore == "" {
		return errors.NotValidf("empty database.data_store")
	}
	if config.Train.NFactors <= 0 {
		return errors.NotValidf("train.n_factors = %d", config.Train.NFactors)
	}
	if config.Train.NEpochs <= 0 {
		return errors.NotValidf("train.n_epochs = %d", config.Train.NEpochs)
	}
	if config.Train.TestRatio <= 0 || config.Train.TestRatio >= 1 {
		return errors.NotValidf("train.test_ratio = %f", config.Train.TestRatio)
	}
	if config.Recommend.TopK <= 0 {
		return errors.NotValidf("recommend.top_k = %d", config.Recommend.TopK)
	}
	if config.Recommend.Jobs <= 0 {
		return errors.NotValidf("recommend.jobs = %d", config.Recommend.Jobs)
	}
	return nil
}
