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

// CFG is an arena of basic blocks addressed by stable indices. Removing a
// block clears its slot, the indices of all other blocks stay valid. Edges
// are never stored, they are always derived from the terminators.
type CFG struct {
	Entry  string
	Blocks []*BasicBlock
	index  map[string]int
}

func NewCFG(entry string) *CFG {
	return &CFG{
		Entry: entry,
		index: make(map[string]int),
	}
}

func (self *CFG) labels() map[string]int {
	if self.index == nil {
		self.index = make(map[string]int, len(self.Blocks))
		for i, bb := range self.Blocks {
			if bb != nil {
				self.index[bb.Label] = i
			}
		}
	}
	return self.index
}

// AddBlock appends bb to the arena and returns its index.
func (self *CFG) AddBlock(bb *BasicBlock) int {
	idx := self.labels()
	if _, ok := idx[bb.Label]; ok {
		panic("ir: duplicated block label: " + bb.Label)
	}

	/* allocate a new slot */
	id := len(self.Blocks)
	idx[bb.Label] = id
	self.Blocks = append(self.Blocks, bb)
	return id
}

// Index returns the arena index of the block labeled label.
func (self *CFG) Index(label string) (int, bool) {
	i, ok := self.labels()[label]
	return i, ok
}

// Block returns the block labeled label, or nil if there is no such block.
func (self *CFG) Block(label string) *BasicBlock {
	if i, ok := self.Index(label); ok {
		return self.Blocks[i]
	} else {
		return nil
	}
}

// EntryIndex returns the index of the entry block, or -1 if it is missing.
func (self *CFG) EntryIndex() int {
	if i, ok := self.Index(self.Entry); ok {
		return i
	} else {
		return -1
	}
}

// Len returns the number of live blocks.
func (self *CFG) Len() int {
	return len(self.labels())
}

// ForEach calls fn for every live block in index order.
func (self *CFG) ForEach(fn func(i int, bb *BasicBlock)) {
	for i, bb := range self.Blocks {
		if bb != nil {
			fn(i, bb)
		}
	}
}

// Successors returns the distinct successor indices of block i, in the order
// they appear in the terminator. Targets naming missing blocks are skipped.
func (self *CFG) Successors(i int) []int {
	bb := self.Blocks[i]
	if bb == nil || bb.Term == nil {
		return nil
	}

	/* dedup the targets */
	var ret []int
	seen := make(map[int]struct{})

	/* resolve every target */
	for _, ln := range bb.Term.Successors() {
		if j, ok := self.Index(ln); ok {
			if _, dup := seen[j]; !dup {
				seen[j] = struct{}{}
				ret = append(ret, j)
			}
		}
	}
	return ret
}

// Predecessors returns the distinct predecessors of every block, indexed by
// block index. Slots of removed blocks are empty.
func (self *CFG) Predecessors() [][]int {
	ret := make([][]int, len(self.Blocks))
	self.ForEach(func(i int, _ *BasicBlock) {
		for _, j := range self.Successors(i) {
			ret[j] = append(ret[j], i)
		}
	})
	return ret
}

// PredecessorLabels returns the labels of the current predecessors of block i.
func (self *CFG) PredecessorLabels(i int) map[string]struct{} {
	ret := make(map[string]struct{})
	self.ForEach(func(j int, bb *BasicBlock) {
		for _, k := range self.Successors(j) {
			if k == i {
				ret[bb.Label] = struct{}{}
				break
			}
		}
	})
	return ret
}

// RemoveBlock invalidates the slot of block i. It does not touch any phi
// node, callers are responsible for the phi predecessor invariant.
func (self *CFG) RemoveBlock(i int) {
	if bb := self.Blocks[i]; bb != nil {
		delete(self.labels(), bb.Label)
		self.Blocks[i] = nil
	}
}
