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
	"fmt"
	"strings"
)

type BasicBlock struct {
	Label string
	Ins   []Instr
	Term  Terminator
}

// Phis returns the phi nodes of the block. Phi nodes may appear anywhere in
// the instruction list, they are not required to lead the block.
func (self *BasicBlock) Phis() []*Phi {
	var ret []*Phi
	for _, v := range self.Ins {
		if p, ok := v.(*Phi); ok {
			ret = append(ret, p)
		}
	}
	return ret
}

// Filter keeps only the instructions for which keep returns true, and returns
// the number of removed instructions.
func (self *BasicBlock) Filter(keep func(ins Instr) bool) int {
	ins := self.Ins
	self.Ins = self.Ins[:0]

	/* rebuild the instruction list */
	for _, v := range ins {
		if keep(v) {
			self.Ins = append(self.Ins, v)
		}
	}

	/* clear the tail to allow the removed nodes to be collected */
	for i := len(self.Ins); i < len(ins); i++ {
		ins[i] = nil
	}
	return len(ins) - len(self.Ins)
}

func (self *BasicBlock) String() string {
	buf := make([]string, 0, len(self.Ins)+2)
	buf = append(buf, self.Label+":")

	/* dump every instruction */
	for _, v := range self.Ins {
		buf = append(buf, "    "+v.String())
	}

	/* dump the terminator */
	if self.Term == nil {
		buf = append(buf, "    <no terminator>")
	} else {
		for _, ss := range strings.Split(self.Term.String(), "\n") {
			buf = append(buf, "    "+ss)
		}
	}

	/* join them together */
	return strings.Join(buf, "\n")
}

// Param is a named function parameter, it is referenced in the body as a
// Local value with the same name.
type Param struct {
	Name string
	Type Type
}

type Function struct {
	Name   string
	Params []Param
	Return Type
	CFG    *CFG
	Locals map[string]Type
}

func (self *Function) IsParam(name string) bool {
	for _, p := range self.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (self *Function) String() string {
	args := make([]string, 0, len(self.Params))
	for _, p := range self.Params {
		args = append(args, fmt.Sprintf("%%%s: %s", p.Name, p.Type))
	}

	/* function header */
	buf := []string{fmt.Sprintf("func %s(%s) %s {", self.Name, strings.Join(args, ", "), self.Return)}

	/* dump every live block */
	if self.CFG != nil {
		self.CFG.ForEach(func(_ int, bb *BasicBlock) {
			buf = append(buf, bb.String())
		})
	}

	/* join them together */
	buf = append(buf, "}")
	return strings.Join(buf, "\n")
}

type Module struct {
	Functions []*Function
}

func (self *Module) String() string {
	buf := make([]string, 0, len(self.Functions))
	for _, fn := range self.Functions {
		buf = append(buf, fn.String())
	}
	return strings.Join(buf, "\n\n")
}
