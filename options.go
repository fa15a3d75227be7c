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


package midend

import (
	"fmt"

	"github.com/cloudwego/midend/internal/opts"
	"github.com/go-logr/logr"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithMaxIterations sets the maximum number of dead code elimination rounds
// per function.
//
// When the limit is reached before the fixed point, the function keeps some
// removable code and an iteration limit warning is reported.
//
// This value can also be configured with the `MIDEND_MAX_ITERATIONS`
// environment variable.
//
// The default value of this option is "10".
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("midend: invalid max iterations: %d", n))
	} else {
		return func(o *opts.Options) { o.MaxIterations = n }
	}
}

// WithLivenessMaxIterations sets the maximum number of sweeps of the live
// variable analysis. An analysis that does not converge removes nothing.
//
// This value can also be configured with the `MIDEND_LIVENESS_MAX_ITERATIONS`
// environment variable.
//
// The default value of this option is "64".
func WithLivenessMaxIterations(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("midend: invalid liveness max iterations: %d", n))
	} else {
		return func(o *opts.Options) { o.LivenessMaxIterations = n }
	}
}

// WithStatistics controls whether the counters of debug.Stats are filled.
// Warnings are always reported.
func WithStatistics(enable bool) Option {
	return func(o *opts.Options) { o.EnableStatistics = enable }
}

// WithVerbose logs a per-function summary of every pass at V(1).
func WithVerbose(enable bool) Option {
	return func(o *opts.Options) { o.Verbose = enable }
}

// WithVerboseWarnings logs every conservative preservation as it is found.
func WithVerboseWarnings(enable bool) Option {
	return func(o *opts.Options) { o.VerboseWarnings = enable }
}

// WithVerifyInvariants re-checks the phi predecessor invariant after every
// structural change, and panics on violation.
//
// The default is off, unless built with the `midend_debug` tag or the
// `MIDEND_VERIFY` environment variable is set.
func WithVerifyInvariants(enable bool) Option {
	return func(o *opts.Options) { o.VerifyInvariants = enable }
}

// WithLogger sets the logger of the passes. The default discards everything.
func WithLogger(logger logr.Logger) Option {
	return func(o *opts.Options) { o.Logger = logger }
}

func buildOptions(options []Option) opts.Options {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}
	return o
}
