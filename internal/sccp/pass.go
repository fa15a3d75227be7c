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


package sccp

import (
	"fmt"

	"github.com/cloudwego/midend/debug"
	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/ir"
	"github.com/cockroachdb/errors"
)

// Pass runs sparse conditional constant propagation over every function of
// a module, one function at a time.
type Pass struct {
	opts opts.Options
}

func NewPass(o opts.Options) *Pass {
	o.Validate()
	return &Pass{opts: o}
}

func (self *Pass) Name() string {
	return "sccp"
}

func (self *Pass) Run(m *ir.Module) (debug.Stats, error) {
	var ret debug.Stats
	for _, fn := range m.Functions {
		if st, err := self.RunFunc(fn); err != nil {
			return ret, err
		} else {
			ret.Merge(st)
		}
	}
	return ret, nil
}

// RunFunc propagates constants through fn and rewrites it in place.
func (self *Pass) RunFunc(fn *ir.Function) (debug.Stats, error) {
	var ret debug.Stats
	p := NewPropagator(fn)

	/* compute the fixed point */
	p.Run()
	res, err := NewRewriter(p).Apply()

	/* rewrite failures are reported to the caller */
	if err != nil {
		return ret, errors.Wrapf(err, "sccp: function %s", fn.Name)
	}

	/* the folded branches must keep the phi nodes consistent */
	if self.opts.VerifyInvariants {
		if err = ir.VerifyPhiPredecessors(fn); err != nil {
			panic(fmt.Sprintf("sccp: broken phi predecessors after rewriting: %v", err))
		}
	}

	/* count the blocks proven unreachable */
	unreachable := 0
	fn.CFG.ForEach(func(i int, _ *ir.BasicBlock) {
		if !p.IsExecutable(i) {
			unreachable++
		}
	})

	/* per-function summary */
	self.opts.Log().Info("constant propagation done",
		"function", fn.Name,
		"steps", p.Steps(),
		"constants", res.Constants,
		"phis", res.Phis,
		"branches", res.Branches,
		"unreachable", unreachable,
	)

	/* statistics are optional */
	if self.opts.EnableStatistics {
		ret.ConstantsPropagated = res.Constants
		ret.PhisSimplified = res.Phis
		ret.BranchesFolded = res.Branches
	}
	return ret, nil
}
