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
	"github.com/oleiade/lane"
)

// BasicBlockIter walks the blocks reachable from the entry in post order.
type BasicBlockIter struct {
	g *CFG
	b int
	s *lane.Stack
	v map[int]struct{}
}

func (self *CFG) PostOrder() *BasicBlockIter {
	it := &BasicBlockIter{
		g: self,
		b: -1,
		s: lane.NewStack(),
		v: make(map[int]struct{}),
	}

	/* start from the entry block if any */
	if e := self.EntryIndex(); e >= 0 {
		it.s.Push(e)
		it.v[e] = struct{}{}
	}
	return it
}

func (self *BasicBlockIter) Next() bool {
	var tail bool
	var this int

	/* scan until the stack is empty */
	for !self.s.Empty() {
		tail = true
		this = self.s.Head().(int)

		/* add the first unvisited successor */
		for _, p := range self.g.Successors(this) {
			if _, ok := self.v[p]; !ok {
				tail = false
				self.v[p] = struct{}{}
				self.s.Push(p)
				break
			}
		}

		/* all the successors are visited, pop the current node */
		if tail {
			self.b = self.s.Pop().(int)
			return true
		}
	}

	/* clear the block index to indicate no more blocks */
	self.b = -1
	return false
}

// Index returns the arena index of the current block.
func (self *BasicBlockIter) Index() int {
	return self.b
}

func (self *BasicBlockIter) Block() *BasicBlock {
	if self.b < 0 {
		return nil
	} else {
		return self.g.Blocks[self.b]
	}
}

func (self *BasicBlockIter) ForEach(action func(i int, bb *BasicBlock)) {
	for self.Next() {
		action(self.b, self.g.Blocks[self.b])
	}
}

// Indices dumps the remaining blocks in post order.
func (self *BasicBlockIter) Indices() []int {
	var ret []int
	for self.Next() {
		ret = append(ret, self.b)
	}
	return ret
}

// Reversed dumps the remaining blocks in reverse post order.
func (self *BasicBlockIter) Reversed() []int {
	ret := self.Indices()
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}
