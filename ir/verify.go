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

package ir

import (
	"github.com/cockroachdb/errors"
)

type _DefSite struct {
	b int
	i int
}

// VerifyPhiPredecessors checks that every phi node only names labels that
// are current graph predecessors of its block.
func VerifyPhiPredecessors(fn *Function) error {
	pred := fn.CFG.Predecessors()
	var err error

	/* check every phi node of every live block */
	fn.CFG.ForEach(func(i int, bb *BasicBlock) {
		if err != nil {
			return
		}

		/* collect the predecessor labels */
		pl := make(map[string]struct{}, len(pred[i]))
		for _, p := range pred[i] {
			pl[fn.CFG.Blocks[p].Label] = struct{}{}
		}

		/* every incoming label must be a predecessor */
		for _, phi := range bb.Phis() {
			for _, e := range phi.Incoming {
				if _, ok := pl[e.Label]; !ok {
					err = everify(fn.Name, bb.Label, "phi %s names %s which is not a predecessor", phi.R, e.Label)
					return
				}
			}
		}
	})
	return err
}

// Verify checks the structural, SSA and dominance invariants of fn. It is not
// invoked by the optimization passes, the surrounding pipeline runs it when
// it does not trust its input.
func Verify(fn *Function) error {
	if fn.CFG == nil {
		return everify(fn.Name, "", "function has no CFG")
	}

	/* the entry block must exist */
	g := fn.CFG
	if g.EntryIndex() < 0 {
		return everify(fn.Name, "", "missing entry block %q", g.Entry)
	}

	/* structural checks */
	for _, bb := range g.Blocks {
		if bb == nil {
			continue
		}
		if bb.Term == nil {
			return everify(fn.Name, bb.Label, "block has no terminator")
		}
		for _, ln := range bb.Term.Successors() {
			if _, ok := g.Index(ln); !ok {
				return everify(fn.Name, bb.Label, "branch to undefined block %q", ln)
			}
		}
	}

	/* phi nodes of unreachable blocks may already be empty */
	reach := make(map[int]bool, g.Len())
	for _, i := range g.PostOrder().Indices() {
		reach[i] = true
	}

	/* every value has at most one definition */
	defs := make(map[Value]_DefSite)
	for i, bb := range g.Blocks {
		if bb == nil {
			continue
		}
		for j, ins := range bb.Ins {
			if r, ok := ins.Result(); ok {
				if r.Kind != V_temp && r.Kind != V_local {
					return everify(fn.Name, bb.Label, "%s defines a non-variable value", ins)
				}
				if _, dup := defs[r]; dup {
					return everify(fn.Name, bb.Label, "%s is defined more than once", r)
				}
				defs[r] = _DefSite{b: i, i: j}
			}
			if p, ok := ins.(*Phi); ok && reach[i] && len(p.Incoming) == 0 {
				return everify(fn.Name, bb.Label, "phi %s has no incoming values", p.R)
			}
		}
	}

	/* phi incoming lists */
	if err := VerifyPhiPredecessors(fn); err != nil {
		return err
	}

	/* definitions must dominate their uses */
	return errors.Wrapf(verifyDominance(fn, defs), "verify %s", fn.Name)
}

func verifyDominance(fn *Function, defs map[Value]_DefSite) error {
	g := fn.CFG
	dt := g.Dominators()
	var err error

	/* check a single use at (b, i), i == len(Ins) stands for the terminator */
	check := func(v Value, b int, i int) {
		if d, ok := defs[v]; ok && err == nil {
			if d.b == b && d.i >= i {
				err = everify(fn.Name, g.Blocks[b].Label, "%s is used before its definition", v)
			} else if d.b != b && !dt.Dominates(d.b, b) {
				err = everify(fn.Name, g.Blocks[b].Label, "definition of %s does not dominate its use", v)
			}
		}
	}

	/* only reachable blocks are subject to dominance */
	g.PostOrder().ForEach(func(b int, bb *BasicBlock) {
		for i, ins := range bb.Ins {
			if p, ok := ins.(*Phi); ok {
				for _, e := range p.Incoming {
					if pb, ok := g.Index(e.Label); ok && dt.Dominates(pb, pb) {
						check(e.V, pb, len(g.Blocks[pb].Ins))
					}
				}
			} else {
				for _, u := range ins.Usages() {
					check(*u, b, i)
				}
			}
		}

		/* terminator operands */
		for _, u := range bb.Term.Usages() {
			check(*u, b, len(bb.Ins))
		}
	})
	return err
}
