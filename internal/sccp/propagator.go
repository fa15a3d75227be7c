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

	"github.com/cloudwego/midend/ir"
	"github.com/oleiade/lane"
)

// Edge is a CFG edge between two block indices. The edge entering the entry
// block has From == -1.
type Edge struct {
	From int
	To   int
}

func (self Edge) String() string {
	return fmt.Sprintf("%d -> %d", self.From, self.To)
}

// _Use is a single use site, ins is nil for the block terminator.
type _Use struct {
	b   int
	ins ir.Instr
}

// Tracer observes every lattice transition.
type Tracer func(v ir.Value, from LatticeValue, to LatticeValue)

// Propagator computes the SCCP fixed point of a single function.
type Propagator struct {
	fn    *ir.Function
	cfg   *ir.CFG
	flow  *lane.Queue
	ssa   *lane.Queue
	vals  map[ir.Value]LatticeValue
	uses  map[ir.Value][]_Use
	edges map[Edge]struct{}
	live  map[int]struct{}
	trace Tracer
	steps int
}

func NewPropagator(fn *ir.Function) *Propagator {
	self := &Propagator{
		fn:    fn,
		cfg:   fn.CFG,
		flow:  lane.NewQueue(),
		ssa:   lane.NewQueue(),
		vals:  make(map[ir.Value]LatticeValue),
		uses:  make(map[ir.Value][]_Use),
		edges: make(map[Edge]struct{}),
		live:  make(map[int]struct{}),
	}

	/* every defined value starts at Top */
	self.cfg.ForEach(func(i int, bb *ir.BasicBlock) {
		for _, ins := range bb.Ins {
			if r, ok := ins.Result(); ok {
				self.vals[r] = Top()
			}
			for _, u := range ins.Usages() {
				self.adduse(*u, _Use{b: i, ins: ins})
			}
		}
		if bb.Term != nil {
			for _, u := range bb.Term.Usages() {
				self.adduse(*u, _Use{b: i})
			}
		}
	})

	/* the entry block is reached through the pseudo edge */
	if e := self.cfg.EntryIndex(); e >= 0 {
		self.flow.Enqueue(Edge{From: -1, To: e})
	}
	return self
}

func (self *Propagator) adduse(v ir.Value, u _Use) {
	if !v.IsLiteral() {
		self.uses[v] = append(self.uses[v], u)
	}
}

// SetTracer installs a hook that observes every lattice transition.
func (self *Propagator) SetTracer(fn Tracer) {
	self.trace = fn
}

// Value returns the current lattice value of v. Literals are constants,
// values without a definition in the function (arguments, globals and
// parameters) are Bottom.
func (self *Propagator) Value(v ir.Value) LatticeValue {
	if v.IsLiteral() {
		return Constant(v.Lit)
	} else if lv, ok := self.vals[v]; ok {
		return lv
	} else {
		return Bottom()
	}
}

// IsExecutable reports whether the block at index i has been proven
// reachable.
func (self *Propagator) IsExecutable(i int) bool {
	_, ok := self.live[i]
	return ok
}

// IsEdgeExecutable reports whether the edge from -> to has been proven
// executable.
func (self *Propagator) IsEdgeExecutable(from int, to int) bool {
	_, ok := self.edges[Edge{From: from, To: to}]
	return ok
}

// Pending reports whether any worklist item is left.
func (self *Propagator) Pending() bool {
	return !self.flow.Empty() || !self.ssa.Empty()
}

// Steps returns the number of worklist items processed so far.
func (self *Propagator) Steps() int {
	return self.steps
}

// Step processes exactly one pending worklist item, flow edges first, and
// reports whether any work remains.
func (self *Propagator) Step() bool {
	switch {
	case !self.flow.Empty():
		self.steps++
		self.visitEdge(self.flow.Dequeue().(Edge))
	case !self.ssa.Empty():
		self.steps++
		self.visitValue(self.ssa.Dequeue().(ir.Value))
	}
	return self.Pending()
}

// Run drains both worklists.
func (self *Propagator) Run() {
	for self.Step() {
	}
}

func (self *Propagator) visitEdge(e Edge) {
	if _, ok := self.edges[e]; ok {
		return
	}

	/* mark the edge as executable */
	bb := self.cfg.Blocks[e.To]
	self.edges[e] = struct{}{}

	/* a new incoming edge only affects the phi nodes of known blocks */
	if _, ok := self.live[e.To]; ok {
		for _, p := range bb.Phis() {
			self.visitPhi(e.To, p)
		}
		return
	}

	/* first visit, evaluate the whole block */
	self.live[e.To] = struct{}{}
	for _, ins := range bb.Ins {
		self.visitInstr(e.To, ins)
	}

	/* then its terminator */
	if bb.Term != nil {
		self.visitTerm(e.To, bb.Term)
	}
}

func (self *Propagator) visitValue(v ir.Value) {
	for _, u := range self.uses[v] {
		if _, ok := self.live[u.b]; !ok {
			continue
		}
		if u.ins == nil {
			self.visitTerm(u.b, self.cfg.Blocks[u.b].Term)
		} else {
			self.visitInstr(u.b, u.ins)
		}
	}
}

func (self *Propagator) visitInstr(b int, ins ir.Instr) {
	switch p := ins.(type) {
	case *ir.Binary:
		self.lower(p.R, EvaluateBinary(p.Op, self.Value(p.X), self.Value(p.Y)))
	case *ir.Unary:
		self.lower(p.R, EvaluateUnary(p.Op, self.Value(p.V)))
	case *ir.Cast:
		self.lower(p.R, EvaluateCast(p.R.Type, self.Value(p.V)))
	case *ir.Phi:
		self.visitPhi(b, p)
	default:
		if r, ok := ins.Result(); ok {
			self.lower(r, Bottom())
		}
	}
}

func (self *Propagator) visitPhi(b int, p *ir.Phi) {
	lv := Top()

	/* only the executable incoming edges contribute */
	for _, e := range p.Incoming {
		if i, ok := self.cfg.Index(e.Label); ok && self.IsEdgeExecutable(i, b) {
			lv = Meet(lv, self.Value(e.V))
		}
	}

	/* update the phi value */
	self.lower(p.R, lv)
}

func (self *Propagator) visitTerm(b int, term ir.Terminator) {
	for _, ln := range EvaluateTerminator(term, self.Value).Targets() {
		if i, ok := self.cfg.Index(ln); ok && !self.IsEdgeExecutable(b, i) {
			self.flow.Enqueue(Edge{From: b, To: i})
		}
	}
}

// lower moves v down the lattice to meet(old, lv), and schedules its users
// when the value changed.
func (self *Propagator) lower(v ir.Value, lv LatticeValue) {
	old := self.Value(v)
	nv := Meet(old, lv)

	/* nothing changed */
	if nv == old {
		return
	}

	/* lattice values never move upwards */
	if !old.Less(nv) {
		panic(fmt.Sprintf("sccp: non-monotonic transition of %s: %s -> %s", v, old, nv))
	}

	/* record the transition */
	if self.vals[v] = nv; self.trace != nil {
		self.trace(v, old, nv)
	}

	/* schedule the users */
	self.ssa.Enqueue(v)
}
