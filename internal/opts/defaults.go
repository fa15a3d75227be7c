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
	"os"
	"strconv"
)

const (
	_DefaultMaxIterations         = 10 // DCE outer loop rounds per function
	_DefaultLivenessMaxIterations = 64 // backward dataflow sweeps per analysis
)

var (
	MaxIterations         = parseOrDefault("MIDEND_MAX_ITERATIONS", _DefaultMaxIterations, 1)
	LivenessMaxIterations = parseOrDefault("MIDEND_LIVENESS_MAX_ITERATIONS", _DefaultLivenessMaxIterations, 1)
	VerifyInvariants      = parseBoolOrDefault("MIDEND_VERIFY", DebugBuild)
)

func parseOrDefault(key string, def int, min int) int {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
		panic("midend: invalid value for " + key)
	} else if ret := int(val); ret < min {
		panic("midend: value too small for " + key)
	} else {
		return ret
	}
}

func parseBoolOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("midend: invalid value for " + key)
	} else {
		return val
	}
}
