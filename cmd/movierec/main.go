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

package main

import (
	"context"
	"fmt"

	"github.com/moviemind/movierec/base/log"
	"github.com/moviemind/movierec/cmd/version"
	"github.com/moviemind/movierec/config"
	"github.com/moviemind/movierec/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mainCommand = &cobra.Command{
	Use:   "movierec",
	Short: "Batch trainer for movie recommendations over a MongoDB ratings collection.",
	Run: func(cmd *cobra.Command, args []string) {
		// show version
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}

		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)

		// load config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		if cmd.PersistentFlags().Changed("jobs") {
			conf.Recommend.Jobs, _ = cmd.PersistentFlags().GetInt("jobs")
		}
		if cmd.PersistentFlags().Changed("seed") {
			conf.Train.RandomSeed, _ = cmd.PersistentFlags().GetInt64("seed")
		}

		// run the batch job
		if err := pipeline.New(conf).Run(context.Background()); err != nil {
			log.Logger().Fatal("failed to run pipeline", zap.Error(err))
		}
	},
}

func init() {
	log.AddFlags(mainCommand.PersistentFlags())
	mainCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	mainCommand.PersistentFlags().BoolP("version", "v", false, "movierec version")
	mainCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	mainCommand.PersistentFlags().Int("jobs", 0, "number of working jobs for training and recommendation")
	mainCommand.PersistentFlags().Int64("seed", -1, "random seed of the train/test split (negative for a wall-clock seed)")
}

func main() {
	if err := mainCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
