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


package opts

import (
	"github.com/go-logr/logr"
)

type Options struct {
	MaxIterations         int
	LivenessMaxIterations int
	EnableStatistics      bool
	Verbose               bool
	VerboseWarnings       bool
	VerifyInvariants      bool
	Logger                logr.Logger
}

// Validate panics on configurations no pass can run with.
func (self *Options) Validate() {
	if self.MaxIterations <= 0 {
		panic("midend: max iterations must be positive")
	}
	if self.LivenessMaxIterations <= 0 {
		panic("midend: liveness max iterations must be positive")
	}
}

// Log returns the logger for per-function progress, which is silent unless
// Verbose is set.
func (self *Options) Log() logr.Logger {
	if self.Verbose {
		return self.Logger.V(1)
	} else {
		return logr.Discard()
	}
}

func GetDefaultOptions() Options {
	return Options{
		MaxIterations:         MaxIterations,
		LivenessMaxIterations: LivenessMaxIterations,
		EnableStatistics:      true,
		VerifyInvariants:      VerifyInvariants,
		Logger:                logr.Discard(),
	}
}
