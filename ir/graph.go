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
	"gonum.org/v1/gonum/graph/flow"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph builds a gonum view of the CFG. Node IDs are arena indices. Self
// loops are dropped since they never change reachability nor dominance.
func (self *CFG) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()

	/* add every live block */
	self.ForEach(func(i int, _ *BasicBlock) {
		g.AddNode(simple.Node(i))
	})

	/* add every edge */
	self.ForEach(func(i int, _ *BasicBlock) {
		for _, j := range self.Successors(i) {
			if i != j {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	})
	return g
}

// DominatorTree answers dominance queries over the blocks reachable from
// the entry block.
type DominatorTree struct {
	dt   flow.DominatorTree
	root int
}

func (self *CFG) Dominators() *DominatorTree {
	e := self.EntryIndex()
	if e < 0 {
		return &DominatorTree{root: -1}
	}

	/* Lengauer-Tarjan over the gonum graph */
	return &DominatorTree{
		dt:   flow.Dominators(simple.Node(e), self.Graph()),
		root: e,
	}
}

// Dominates reports whether block a dominates block b. Unreachable blocks
// are dominated by nothing.
func (self *DominatorTree) Dominates(a int, b int) bool {
	if self.root < 0 {
		return false
	}

	/* every reachable block dominates itself */
	if a == b {
		return b == self.root || self.dt.DominatorOf(int64(b)) != nil
	}

	/* walk up the immediate dominator chain */
	for n := self.dt.DominatorOf(int64(b)); n != nil; n = self.dt.DominatorOf(n.ID()) {
		if n.ID() == int64(a) {
			return true
		} else if n.ID() == int64(self.root) {
			break
		}
	}
	return false
}
