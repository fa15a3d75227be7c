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

	"github.com/cloudwego/midend/ir"
)

type EscapeState uint8

const (
	Local EscapeState = iota
	AddressTaken
	Escaped
)

func (self EscapeState) String() string {
	switch self {
	case Local:
		return "local"
	case AddressTaken:
		return "address-taken"
	case Escaped:
		return "escaped"
	default:
		return fmt.Sprintf("EscapeState(%d)", self)
	}
}

// EscapeAnalysis classifies pointer values. Pointers derived from each other
// share an alias class, and every member of a class has the state of the
// class, which only ever moves from Local towards Escaped.
type EscapeAnalysis struct {
	fn     *ir.Function
	parent map[ir.Value]ir.Value
	state  map[ir.Value]EscapeState
	local  map[ir.Value]struct{}
}

// AnalyzeEscape runs a single flow-insensitive scan over fn.
func AnalyzeEscape(fn *ir.Function) *EscapeAnalysis {
	self := &EscapeAnalysis{
		fn:     fn,
		parent: make(map[ir.Value]ir.Value),
		state:  make(map[ir.Value]EscapeState),
		local:  make(map[ir.Value]struct{}),
	}

	/* stack slots and derived pointers have a known provenance */
	fn.CFG.ForEach(func(_ int, bb *ir.BasicBlock) {
		for _, ins := range bb.Ins {
			switch p := ins.(type) {
			case *ir.Alloca:
				self.local[p.R] = struct{}{}
			case *ir.GetElementPtr:
				self.local[p.R] = struct{}{}
			case *ir.Cast:
				if p.V.IsPtr() {
					self.local[p.R] = struct{}{}
				}
			case *ir.Phi:
				self.local[p.R] = struct{}{}
			}
		}
	})

	/* classify every pointer use */
	fn.CFG.ForEach(func(_ int, bb *ir.BasicBlock) {
		for _, ins := range bb.Ins {
			self.instr(ins)
		}
		if bb.Term != nil {
			self.term(bb.Term)
		}
	})
	return self
}

func (self *EscapeAnalysis) find(v ir.Value) ir.Value {
	p, ok := self.parent[v]

	/* first time seeing this pointer */
	if !ok {
		self.parent[v] = v
		if _, ok = self.local[v]; ok {
			self.state[v] = Local
		} else {
			self.state[v] = Escaped
		}
		return v
	}

	/* root of the class */
	if p == v {
		return v
	}

	/* path compression */
	r := self.find(p)
	self.parent[v] = r
	return r
}

func (self *EscapeAnalysis) union(a ir.Value, b ir.Value) {
	ra, rb := self.find(a), self.find(b)
	if ra == rb {
		return
	}

	/* the merged class keeps the worst state */
	self.parent[rb] = ra
	if self.state[rb] > self.state[ra] {
		self.state[ra] = self.state[rb]
	}
	delete(self.state, rb)
}

func (self *EscapeAnalysis) escalate(v ir.Value, st EscapeState) {
	if v.IsPtr() {
		if r := self.find(v); self.state[r] < st {
			self.state[r] = st
		}
	}
}

// touch registers a pointer used as the direct target of a memory access.
func (self *EscapeAnalysis) touch(v ir.Value) {
	if v.IsPtr() {
		self.find(v)
	}
}

// derive threads the pointer src into the derived pointer dst.
func (self *EscapeAnalysis) derive(dst ir.Value, src ir.Value) {
	if src.IsPtr() {
		self.union(dst, src)
		self.escalate(dst, AddressTaken)
	}
}

func (self *EscapeAnalysis) escapeAll(vv []*ir.Value) {
	for _, v := range vv {
		self.escalate(*v, Escaped)
	}
}

func (self *EscapeAnalysis) instr(ins ir.Instr) {
	switch p := ins.(type) {
	case *ir.Alloca:
		self.find(p.R)
	case *ir.Load:
		self.touch(p.Src)
		self.escalate(p.R, Escaped)
	case *ir.Store:
		self.touch(p.Dest)
		self.escalate(p.Src, Escaped)
	case *ir.GetElementPtr:
		self.derive(p.R, p.Base)
		self.escapeAll(ins.Usages()[1:])
	case *ir.Cast:
		switch {
		case p.R.IsPtr() && p.V.IsPtr():
			self.derive(p.R, p.V)
		case p.R.IsPtr():
			self.escalate(p.R, Escaped)
		default:
			self.escalate(p.V, Escaped)
		}
	case *ir.Phi:
		if p.R.IsPtr() {
			self.find(p.R)
			for _, e := range p.Incoming {
				self.derive(p.R, e.V)
			}
		}
	case *ir.Call, *ir.Vector, *ir.Binary, *ir.Unary:
		self.escapeAll(ins.Usages())
		if r, ok := ins.Result(); ok {
			self.escalate(r, Escaped)
		}
	default:
		panic(fmt.Sprintf("dce: invalid instruction: %T", ins))
	}
}

func (self *EscapeAnalysis) term(term ir.Terminator) {
	self.escapeAll(term.Usages())
}

// State returns the classification of v. Values the scan never saw, and
// values that are not pointers, are Escaped.
func (self *EscapeAnalysis) State(v ir.Value) EscapeState {
	if !v.IsPtr() {
		return Escaped
	} else if _, ok := self.parent[v]; !ok {
		return Escaped
	} else {
		return self.state[self.find(v)]
	}
}
