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
	"strings"

	"github.com/cloudwego/midend"
	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/ir"
	"github.com/cloudwego/midend/ir/irfile"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func optCommand() *cobra.Command {
	var (
		passes          string
		maxIterations   int
		stats           bool
		verbose         bool
		verboseWarnings bool
		verify          bool
		dot             string
		format          string
	)

	cmd := &cobra.Command{
		Use:   "opt file.yaml [--passes sccp,dce] [--stats] [--dot out.dot]",
		Short: "opt verifies a module, optimizes it and prints the result to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxIterations <= 0 {
				return errors.Newf("--max-iterations must be positive, got %d", maxIterations)
			}

			m, err := irfile.LoadFile(args[0])
			if err != nil {
				return err
			}

			if err = midend.Verify(m); err != nil {
				return errors.Wrap(err, "input")
			}

			/* summaries are logged at V(1) */
			if verbose && verbosity < 1 {
				verbosity = 1
			}

			var names []string
			if passes != "" {
				names = strings.Split(passes, ",")
			}

			st, err := midend.Optimize(m, names,
				midend.WithMaxIterations(maxIterations),
				midend.WithStatistics(stats),
				midend.WithVerbose(verbose),
				midend.WithVerboseWarnings(verboseWarnings),
				midend.WithVerifyInvariants(verify),
				midend.WithLogger(newLogger()),
			)
			if err != nil {
				return err
			}

			if err = midend.Verify(m); err != nil {
				return errors.Wrap(err, "output")
			}

			if err = printModule(cmd, m, format); err != nil {
				return err
			}

			if stats {
				buf, err := yaml.Marshal(st)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "---\n%s", buf)
			}

			if dot != "" {
				return writeDot(dot, m)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&passes, "passes", "", "comma separated list of passes to run, defaults to sccp,dce")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", opts.MaxIterations, "maximum dead code elimination rounds per function")
	cmd.Flags().BoolVar(&stats, "stats", false, "print the optimization statistics to stderr as YAML")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log a summary of every pass and function")
	cmd.Flags().BoolVar(&verboseWarnings, "verbose-warnings", false, "log every conservatively preserved instruction")
	cmd.Flags().BoolVar(&verify, "verify-invariants", opts.VerifyInvariants, "check the phi predecessor invariant after every change")
	cmd.Flags().StringVar(&dot, "dot", "", "write the optimized control flow graphs to this Graphviz file")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format, text or yaml")

	return cmd
}

func printModule(cmd *cobra.Command, m *ir.Module, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(cmd.OutOrStdout(), m.String())
		return err
	case "yaml":
		buf, err := irfile.Marshal(m)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(buf)
		return err
	default:
		return errors.Newf("unknown output format: %q", format)
	}
}

func writeDot(path string, m *ir.Module) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}

	for _, fn := range m.Functions {
		if err = ir.WriteDot(fp, fn); err != nil {
			_ = fp.Close()
			return err
		}
	}
	return fp.Close()
}
