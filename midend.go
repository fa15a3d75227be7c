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
	"github.com/cloudwego/midend/debug"
	"github.com/cloudwego/midend/internal/dce"
	"github.com/cloudwego/midend/internal/sccp"
	"github.com/cloudwego/midend/ir"
	"github.com/cockroachdb/errors"
)

// Pass is a single optimization over a whole module. Functions are optimized
// one at a time and independently of each other.
type Pass interface {
	Name() string
	Run(m *ir.Module) (debug.Stats, error)
}

// NewSCCP creates the sparse conditional constant propagation pass.
func NewSCCP(options ...Option) Pass {
	return sccp.NewPass(buildOptions(options))
}

// NewDCE creates the dead code elimination pass.
func NewDCE(options ...Option) Pass {
	return dce.NewPass(buildOptions(options))
}

type PassDescriptor struct {
	Name string
	New  func(options ...Option) Pass
}

// Passes is the default pipeline, in execution order.
var Passes = [...]PassDescriptor{
	{Name: "sccp", New: NewSCCP},
	{Name: "dce", New: NewDCE},
}

// Lookup returns the descriptor of the named pass.
func Lookup(name string) (PassDescriptor, bool) {
	for _, p := range Passes {
		if p.Name == name {
			return p, true
		}
	}
	return PassDescriptor{}, false
}

// Verify checks every function of m, see ir.Verify.
func Verify(m *ir.Module) error {
	for _, fn := range m.Functions {
		if err := ir.Verify(fn); err != nil {
			return err
		}
	}
	return nil
}

// Optimize runs the named passes over m in order, or the default pipeline
// when names is empty, and merges their statistics.
func Optimize(m *ir.Module, names []string, options ...Option) (debug.Stats, error) {
	var ret debug.Stats
	pipeline := make([]Pass, 0, len(Passes))

	/* default pipeline */
	if len(names) == 0 {
		for _, p := range Passes {
			names = append(names, p.Name)
		}
	}

	/* resolve every pass first */
	for _, name := range names {
		if p, ok := Lookup(name); !ok {
			return ret, errors.Newf("midend: unknown pass: %q", name)
		} else {
			pipeline = append(pipeline, p.New(options...))
		}
	}

	/* run them in order */
	for _, p := range pipeline {
		if st, err := p.Run(m); err != nil {
			return ret, errors.Wrapf(err, "midend: pass %s", p.Name())
		} else {
			ret.Merge(st)
		}
	}
	return ret, nil
}
