/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

var (
	rootCmd = cobra.Command{
		Use:           "midend",
		Short:         "midend optimizes SSA modules with constant propagation and dead code elimination",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	verbosity int
)

func init() {
	rootCmd.AddCommand(
		optCommand(),
		verifyCommand(),
	)

	rootCmd.PersistentFlags().IntVarP(&verbosity, "log-level", "l", 0, "log verbosity, 1 logs per-function summaries")
}

// newLogger writes structured logs to stderr, so that stdout only carries
// the optimized module.
func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(os.Stderr, prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{
		Verbosity: verbosity,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
