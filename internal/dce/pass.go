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


package dce

import (
	"github.com/cloudwego/midend/debug"
	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/ir"
)

// Pass runs dead code elimination over every function of a module.
type Pass struct {
	opts opts.Options
}

func NewPass(o opts.Options) *Pass {
	o.Validate()
	return &Pass{opts: o}
}

func (self *Pass) Name() string {
	return "dce"
}

// Run never fails, a function that cannot be fully optimized is left with
// more code than necessary and a warning.
func (self *Pass) Run(m *ir.Module) (debug.Stats, error) {
	var ret debug.Stats
	for _, fn := range m.Functions {
		ret.Merge(self.RunFunc(fn))
	}
	return ret, nil
}

func (self *Pass) RunFunc(fn *ir.Function) debug.Stats {
	st := NewEliminator(fn, &self.opts).Run()

	/* per-function summary */
	self.opts.Log().Info("dead code elimination done",
		"function", fn.Name,
		"iterations", st.Iterations,
		"instructions", st.InstructionsRemoved,
		"blocks", st.BlocksRemoved,
		"warnings", len(st.Warnings),
	)

	/* warnings are always reported */
	if !self.opts.EnableStatistics {
		st = debug.Stats{Warnings: st.Warnings}
	}
	return st
}
