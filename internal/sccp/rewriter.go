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

	"github.com/cloudwego/midend/internal/utils"
	"github.com/cloudwego/midend/ir"
)

// RewriteResult counts the changes made by Rewriter.Apply.
type RewriteResult struct {
	Constants int
	Phis      int
	Branches  int
}

// Rewriter applies the fixed point of a Propagator to its function.
type Rewriter struct {
	p    *Propagator
	repl map[ir.Value]ir.Value
}

func NewRewriter(p *Propagator) *Rewriter {
	return &Rewriter{
		p:    p,
		repl: make(map[ir.Value]ir.Value),
	}
}

// RewriteInstruction returns the literal that replaces the result of ins,
// if the result is proven constant.
func (self *Rewriter) RewriteInstruction(ins ir.Instr) (ir.Value, bool, error) {
	r, ok := ins.Result()
	if !ok {
		return ir.Value{}, false, nil
	}

	/* only constant results are replaced */
	lv := self.p.Value(r)
	if !lv.IsConstant() {
		return ir.Value{}, false, nil
	}

	/* the replacement must keep the static type */
	if v := ir.Lit(lv.Value); v.Type != r.Type {
		return ir.Value{}, false, utils.EInvalidTransform(r, v)
	} else {
		return v, true, nil
	}
}

// RewritePhi returns the value that replaces phi, which lives in block b.
//
//  1. every incoming value along an executable edge is the same constant,
//     the phi is that constant;
//  2. exactly one incoming edge is executable and its value is not the phi
//     itself, the phi is that value;
//  3. otherwise the phi is kept.
//
// Phi nodes in non-executable blocks are left for the dead code elimination.
func (self *Rewriter) RewritePhi(b int, phi *ir.Phi) (ir.Value, bool, error) {
	var n int
	var c LatticeValue
	var last ir.Value

	/* empty phi nodes cannot be evaluated */
	if len(phi.Incoming) == 0 {
		return ir.Value{}, false, utils.EEmptyPhi(phi)
	}

	/* the whole block is dead */
	if !self.p.IsExecutable(b) {
		return ir.Value{}, false, nil
	}

	/* scan the executable incoming edges */
	konst := true
	for _, e := range phi.Incoming {
		if i, ok := self.p.cfg.Index(e.Label); !ok || !self.p.IsEdgeExecutable(i, b) {
			continue
		}

		/* count the executable edges */
		n++
		last = e.V

		/* check for constant-ness */
		if lv := self.p.Value(e.V); !lv.IsConstant() {
			konst = false
		} else if n == 1 {
			c = lv
		} else if lv != c {
			konst = false
		}
	}

	/* rule 1: the same constant along every executable edge */
	if n != 0 && konst {
		if v := ir.Lit(c.Value); v.Type != phi.R.Type {
			return ir.Value{}, false, utils.EInvalidTransform(phi.R, v)
		} else {
			return v, true, nil
		}
	}

	/* rule 2: a single executable edge */
	if n == 1 && self.resolve(last) != phi.R {
		if last.Type != phi.R.Type {
			return ir.Value{}, false, utils.EInvalidTransform(phi.R, last)
		} else {
			return last, true, nil
		}
	}

	/* rule 3: keep it */
	return ir.Value{}, false, nil
}

// resolve follows the replacement chain of v.
func (self *Rewriter) resolve(v ir.Value) ir.Value {
	for n := 0; ; n++ {
		if r, ok := self.repl[v]; !ok {
			return v
		} else if n > len(self.repl) {
			panic(fmt.Sprintf("sccp: cyclic replacement of %s", v))
		} else {
			v = r
		}
	}
}

// Apply rewrites the function of the propagator. The propagator must have
// reached its fixed point.
func (self *Rewriter) Apply() (RewriteResult, error) {
	var ret RewriteResult
	g := self.p.cfg
	phis := make(map[*ir.Phi]struct{})

	/* the propagator must be done */
	if self.p.Pending() {
		panic("sccp: rewriting before the fixed point")
	}

	/* find every replaceable value, in reverse post order */
	for _, b := range g.PostOrder().Reversed() {
		if !self.p.IsExecutable(b) {
			continue
		}

		/* check every instruction */
		for _, ins := range g.Blocks[b].Ins {
			var ok bool
			var err error
			var rv ir.Value

			/* phi nodes are simplified, other instructions are folded */
			if phi, isphi := ins.(*ir.Phi); isphi {
				if rv, ok, err = self.RewritePhi(b, phi); ok {
					phis[phi] = struct{}{}
				}
			} else {
				rv, ok, err = self.RewriteInstruction(ins)
			}

			/* record the replacement */
			if err != nil {
				return ret, err
			} else if ok {
				r, _ := ins.Result()
				self.repl[r] = rv
			}
		}
	}

	/* count the constants */
	for _, v := range self.repl {
		if v.IsLiteral() {
			ret.Constants++
		}
	}

	/* substitute every use */
	g.ForEach(func(_ int, bb *ir.BasicBlock) {
		for _, ins := range bb.Ins {
			for _, u := range ins.Usages() {
				*u = self.resolve(*u)
			}
		}
		if bb.Term != nil {
			for _, u := range bb.Term.Usages() {
				*u = self.resolve(*u)
			}
		}
	})

	/* remove the simplified phi nodes */
	g.ForEach(func(_ int, bb *ir.BasicBlock) {
		ret.Phis += bb.Filter(func(ins ir.Instr) bool {
			p, ok := ins.(*ir.Phi)
			if ok {
				_, ok = phis[p]
			}
			return !ok
		})
	})

	/* fold the branches that only take a single edge */
	g.ForEach(func(i int, bb *ir.BasicBlock) {
		if self.p.IsExecutable(i) && self.foldTerm(bb) {
			ret.Branches++
		}
	})
	return ret, nil
}

// foldTerm replaces a conditional terminator resolved to a single target
// with an unconditional branch, and drops bb from the phi nodes of the
// successors that are no longer reachable from it.
func (self *Rewriter) foldTerm(bb *ir.BasicBlock) bool {
	switch bb.Term.(type) {
	case *ir.CondBranch, *ir.Switch:
		break
	default:
		return false
	}

	/* must resolve to a single target */
	target, ok := EvaluateTerminator(bb.Term, self.p.Value).Single()
	if !ok {
		return false
	}

	/* prune the dropped successors */
	seen := map[string]struct{}{target: {}}
	for _, ln := range bb.Term.Successors() {
		if _, ok := seen[ln]; ok {
			continue
		}
		seen[ln] = struct{}{}
		if succ := self.p.cfg.Block(ln); succ != nil {
			for _, p := range succ.Phis() {
				p.Remove(bb.Label)
			}
		}
	}

	/* replace the terminator */
	bb.Term = &ir.Branch{Target: target, Debug: bb.Term.Loc()}
	return true
}
