// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/worldcoin/idkit-go/config"
	"github.com/worldcoin/idkit-go/internal/logger"
	"github.com/worldcoin/idkit-go/internal/metrics"
)

var rootCmd = &cobra.Command{
	Use:   "idkit",
	Short: "idkit CLI - relying-party tools for the World ID verification protocol",
	Long: `idkit provides command-line tools for a relying party integrating
World ID verification:

- generating RP signing keys
- building and signing proof request envelopes
- creating a bridge session and walking it to completion`,
}

// appConfig is loaded once in main and consulted by subcommands as the
// source of defaults for flags the caller did not set explicitly.
var appConfig *config.Config

func main() {
	// Best effort: a missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading configuration: %v\n", err)
		os.Exit(1)
	}
	appConfig = cfg

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				logger.Warn("metrics server stopped", logger.String("error", err.Error()))
			}
		}()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
