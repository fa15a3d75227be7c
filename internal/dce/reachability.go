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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Reachability is the set of block indices reachable from the entry block.
type Reachability map[int]struct{}

// AnalyzeReachability walks the terminator edges of g from its entry block.
func AnalyzeReachability(g *ir.CFG) Reachability {
	ret := make(Reachability, g.Len())
	entry := g.EntryIndex()

	/* no entry block, nothing is reachable */
	if entry < 0 {
		return ret
	}

	/* depth-first over the graph view */
	var dfs traverse.DepthFirst
	dfs.Walk(g.Graph(), simple.Node(entry), func(n graph.Node) bool {
		ret[int(n.ID())] = struct{}{}
		return false
	})
	return ret
}

func (self Reachability) Contains(i int) bool {
	_, ok := self[i]
	return ok
}

// Unreachable returns the live blocks of g that are not in the set, in
// index order.
func (self Reachability) Unreachable(g *ir.CFG) []int {
	var ret []int
	g.ForEach(func(i int, _ *ir.BasicBlock) {
		if !self.Contains(i) {
			ret = append(ret, i)
		}
	})
	return ret
}
