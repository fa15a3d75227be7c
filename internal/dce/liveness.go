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
	"github.com/cloudwego/midend/ir"
)

// Site is the position of an instruction, I == len(Ins) stands for the
// block terminator.
type Site struct {
	B int
	I int
}

// DefUse maps every value to its defining instruction and all of its uses.
type DefUse struct {
	Defs map[ir.Value]Site
	Uses map[ir.Value][]Site
}

func buildDefUse(g *ir.CFG) DefUse {
	ret := DefUse{
		Defs: make(map[ir.Value]Site),
		Uses: make(map[ir.Value][]Site),
	}

	/* scan every live block */
	g.ForEach(func(b int, bb *ir.BasicBlock) {
		for i, ins := range bb.Ins {
			if r, ok := ins.Result(); ok {
				ret.Defs[r] = Site{B: b, I: i}
			}
			for _, u := range ins.Usages() {
				if !u.IsLiteral() {
					ret.Uses[*u] = append(ret.Uses[*u], Site{B: b, I: i})
				}
			}
		}

		/* terminator uses */
		if bb.Term != nil {
			for _, u := range bb.Term.Usages() {
				if !u.IsLiteral() {
					ret.Uses[*u] = append(ret.Uses[*u], Site{B: b, I: len(bb.Ins)})
				}
			}
		}
	})
	return ret
}

// Liveness is the result of the backward live variable analysis.
type Liveness struct {
	g     *ir.CFG
	chain DefUse
	gen   map[int]ValueSet
	kill  map[int]ValueSet
	phi   map[int]ValueSet
	in    map[int]ValueSet
	out   map[int]ValueSet
	iter  int
	done  bool
}

// AnalyzeLiveness computes the live-in and live-out sets of every block of
// fn. At most maxIter sweeps are made over the blocks, if the sets are still
// changing by then, Converged reports false.
func AnalyzeLiveness(fn *ir.Function, maxIter int) *Liveness {
	g := fn.CFG
	self := &Liveness{
		g:     g,
		chain: buildDefUse(g),
		gen:   make(map[int]ValueSet),
		kill:  make(map[int]ValueSet),
		phi:   make(map[int]ValueSet),
		in:    make(map[int]ValueSet),
		out:   make(map[int]ValueSet),
	}

	/* local sets */
	g.ForEach(func(b int, bb *ir.BasicBlock) {
		self.in[b] = make(ValueSet)
		self.out[b] = make(ValueSet)
		self.phi[b] = make(ValueSet)
		self.local(b, bb)
	})

	/* phi operands are live at the end of their predecessors only */
	g.ForEach(func(_ int, bb *ir.BasicBlock) {
		for _, p := range bb.Phis() {
			for _, e := range p.Incoming {
				if i, ok := g.Index(e.Label); ok && !e.V.IsLiteral() {
					self.phi[i].add(e.V)
				}
			}
		}
	})

	/* backward dataflow, post order first, then whatever is unreachable */
	order := self.order()
	for !self.done && self.iter < maxIter {
		self.iter++
		self.done = true
		for _, b := range order {
			if self.update(b) {
				self.done = false
			}
		}
	}
	return self
}

func (self *Liveness) local(b int, bb *ir.BasicBlock) {
	gen := make(ValueSet)
	kill := make(ValueSet)

	/* a value used before any definition in the block is generated */
	use := func(v ir.Value) {
		if !v.IsLiteral() && !kill.contains(v) {
			gen.add(v)
		}
	}

	/* scan the instructions in order */
	for _, ins := range bb.Ins {
		if _, ok := ins.(*ir.Phi); !ok {
			for _, u := range ins.Usages() {
				use(*u)
			}
		}
		if r, ok := ins.Result(); ok {
			kill.add(r)
		}
	}

	/* terminator operands */
	if bb.Term != nil {
		for _, u := range bb.Term.Usages() {
			use(*u)
		}
	}

	/* save the sets */
	self.gen[b] = gen
	self.kill[b] = kill
}

func (self *Liveness) order() []int {
	seen := make(map[int]struct{})
	ret := self.g.PostOrder().Indices()

	/* mark the reachable blocks */
	for _, b := range ret {
		seen[b] = struct{}{}
	}

	/* append the rest in index order */
	self.g.ForEach(func(b int, _ *ir.BasicBlock) {
		if _, ok := seen[b]; !ok {
			ret = append(ret, b)
		}
	})
	return ret
}

// update recomputes
//
//	out[b] = phi[b] ∪ (∪ in[s] for s in succ(b))
//	in[b]  = gen[b] ∪ (out[b] - kill[b])
//
// and reports whether anything changed.
func (self *Liveness) update(b int) bool {
	out := self.phi[b].clone()
	for _, s := range self.g.Successors(b) {
		out.union(self.in[s])
	}

	/* in = gen + (out - kill) */
	in := self.gen[b].clone()
	for v := range out {
		if !self.kill[b].contains(v) {
			in.add(v)
		}
	}

	/* check for changes */
	changed := !in.equals(self.in[b]) || !out.equals(self.out[b])
	self.in[b], self.out[b] = in, out
	return changed
}

// Converged reports whether the dataflow reached its fixed point.
func (self *Liveness) Converged() bool {
	return self.done
}

// Iterations returns the number of sweeps made.
func (self *Liveness) Iterations() int {
	return self.iter
}

func (self *Liveness) Chains() DefUse {
	return self.chain
}

func (self *Liveness) LiveIn(b int) ValueSet {
	return self.in[b]
}

func (self *Liveness) LiveOut(b int) ValueSet {
	return self.out[b]
}

// Uses returns the number of recorded uses of v.
func (self *Liveness) Uses(v ir.Value) int {
	return len(self.chain.Uses[v])
}

// IsInstructionDead reports whether the i-th instruction of block b defines
// a value that is never used and not live-out of b. Nothing is dead when the
// analysis did not converge.
func (self *Liveness) IsInstructionDead(b int, i int) bool {
	if !self.done {
		return false
	}

	/* instructions without a result are never dead by liveness */
	r, ok := self.g.Blocks[b].Ins[i].Result()
	if !ok {
		return false
	}

	/* no recorded uses and not live after the block */
	return self.Uses(r) == 0 && !self.out[b].contains(r)
}
