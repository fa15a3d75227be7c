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
	"fmt"

	"github.com/cloudwego/midend/debug"
	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/ir"
)

// Eliminator removes unreachable blocks and provably dead instructions from
// a single function, until nothing changes or the iteration limit is hit.
type Eliminator struct {
	fn    *ir.Function
	opts  *opts.Options
	stats debug.Stats
	warns map[debug.Warning]struct{}
}

func NewEliminator(fn *ir.Function, o *opts.Options) *Eliminator {
	return &Eliminator{
		fn:    fn,
		opts:  o,
		warns: make(map[debug.Warning]struct{}),
	}
}

// Run optimizes the function and returns the collected statistics.
func (self *Eliminator) Run() debug.Stats {
	done := false
	self.stats = debug.Stats{}

	/* the outer fixed point */
	for i := 0; !done && i < self.opts.MaxIterations; i++ {
		self.stats.Iterations++
		done = !self.removeBlocks()

		/* inner loop, until a sweep removes nothing */
		for self.sweep() != 0 {
			done = false
		}
	}

	/* ran out of iterations before the fixed point */
	if !done {
		self.opts.Logger.Info("dead code elimination did not converge",
			"function", self.fn.Name,
			"iterations", self.stats.Iterations,
		)
		self.warn("", nil, debug.IterationLimit)
	}
	return self.stats
}

func (self *Eliminator) warn(bb string, ins ir.Instr, reason debug.Reason) {
	w := debug.Warning{
		Function: self.fn.Name,
		Block:    bb,
		Reason:   reason,
	}

	/* instruction-level warnings */
	if ins != nil {
		w.Instr = ins.String()
	}

	/* each warning is only reported once */
	if _, ok := self.warns[w]; ok {
		return
	}

	/* add to the warning list */
	self.warns[w] = struct{}{}
	self.stats.Warnings = append(self.stats.Warnings, w)

	/* log it if requested */
	if self.opts.VerboseWarnings {
		self.opts.Logger.Info("conservatively preserved",
			"function", w.Function,
			"block", w.Block,
			"instr", w.Instr,
			"reason", w.Reason.String(),
		)
	}
}

// removeBlocks deletes every block unreachable from the entry block, and
// reports whether any block was removed.
func (self *Eliminator) removeBlocks() bool {
	g := self.fn.CFG
	dead := AnalyzeReachability(g).Unreachable(g)

	/* remove the blocks one by one */
	for _, b := range dead {
		label := g.Blocks[b].Label
		self.stats.BlocksUnreachable++

		/* drop the block from every phi node elsewhere */
		g.ForEach(func(i int, bb *ir.BasicBlock) {
			if i != b {
				for _, p := range bb.Phis() {
					p.Remove(label)
				}
			}
		})

		/* then the block itself */
		g.RemoveBlock(b)
		self.stats.BlocksRemoved++

		/* phi nodes must only name current predecessors */
		if self.opts.VerifyInvariants {
			if err := ir.VerifyPhiPredecessors(self.fn); err != nil {
				panic(fmt.Sprintf("dce: broken phi predecessors after removing %s: %v", label, err))
			}
		}
	}
	return len(dead) != 0
}

// sweep removes one round of dead instructions, and returns the number of
// removed instructions.
func (self *Eliminator) sweep() int {
	g := self.fn.CFG
	live := AnalyzeLiveness(self.fn, self.opts.LivenessMaxIterations)

	/* nothing is dead unless the liveness is exact */
	if !live.Converged() {
		self.opts.Logger.Info("liveness analysis did not converge",
			"function", self.fn.Name,
			"iterations", live.Iterations(),
		)
		self.warn("", nil, debug.LivenessNotConverged)
		return 0
	}

	/* every address that is read from */
	esc := AnalyzeEscape(self.fn)
	loads := make(ValueSet)

	/* mark all the load sources */
	g.ForEach(func(_ int, bb *ir.BasicBlock) {
		for _, ins := range bb.Ins {
			if p, ok := ins.(*ir.Load); ok {
				loads.add(p.Src)
			}
		}
	})

	/* remove every removable instruction */
	rm := 0
	g.ForEach(func(b int, bb *ir.BasicBlock) {
		dead := make(map[ir.Instr]struct{})
		for i, ins := range bb.Ins {
			if self.removable(bb, ins, live.IsInstructionDead(b, i), live, esc, loads) {
				dead[ins] = struct{}{}
			}
		}

		/* filter out the dead instructions */
		if len(dead) != 0 {
			rm += bb.Filter(func(ins ir.Instr) bool {
				_, ok := dead[ins]
				return !ok
			})
		}
	})

	/* update the statistics */
	self.stats.InstructionsRemoved += rm
	return rm
}

func escaping(st EscapeState) debug.Reason {
	if st == AddressTaken {
		return debug.AddressTakenPointer
	} else {
		return debug.EscapedPointer
	}
}

func (self *Eliminator) removable(bb *ir.BasicBlock, ins ir.Instr, dead bool, live *Liveness, esc *EscapeAnalysis, loads ValueSet) bool {
	switch p := ins.(type) {
	case *ir.Store:
		if loads.contains(p.Dest) {
			return false
		} else if st := esc.State(p.Dest); st != Local {
			self.warn(bb.Label, ins, escaping(st))
			return false
		} else {
			return true
		}
	case *ir.Load:
		if !dead {
			return false
		} else if st := esc.State(p.Src); st != Local {
			self.warn(bb.Label, ins, escaping(st))
			return false
		} else {
			return true
		}
	case *ir.Alloca:
		return live.Uses(p.R) == 0
	case *ir.Call:
		if dead {
			self.warn(bb.Label, ins, debug.UnknownCallPurity)
		}
		return false
	case *ir.Binary, *ir.Unary, *ir.Cast, *ir.GetElementPtr, *ir.Vector:
		return dead
	case *ir.Phi:
		return false
	default:
		panic(fmt.Sprintf("dce: invalid instruction: %T", ins))
	}
}
