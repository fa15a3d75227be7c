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

// Terminator ends a basic block and defines its successors.
type Terminator interface {
	fmt.Stringer
	Successors() []string
	Usages() []*Value
	Loc() DebugInfo
	term()
}

func (*Branch) term()         {}
func (*CondBranch) term()     {}
func (*Switch) term()         {}
func (*Return) term()         {}
func (*Unreachable) term()    {}
func (*IndirectBranch) term() {}

type Branch struct {
	Target string
	Debug  DebugInfo
}

func (self *Branch) String() string       { return "br " + self.Target }
func (self *Branch) Successors() []string { return []string{self.Target} }
func (self *Branch) Usages() []*Value     { return nil }
func (self *Branch) Loc() DebugInfo       { return self.Debug }

type CondBranch struct {
	Cond  Value
	True  string
	False string
	Debug DebugInfo
}

func (self *CondBranch) String() string {
	return fmt.Sprintf("br %s, %s, %s", self.Cond, self.True, self.False)
}

func (self *CondBranch) Successors() []string { return []string{self.True, self.False} }
func (self *CondBranch) Usages() []*Value     { return []*Value{&self.Cond} }
func (self *CondBranch) Loc() DebugInfo       { return self.Debug }

type SwitchCase struct {
	V      Literal
	Target string
}

type Switch struct {
	Selector Value
	Cases    []SwitchCase
	Default  string
	Debug    DebugInfo
}

func (self *Switch) String() string {
	buf := make([]string, 0, len(self.Cases)+1)
	for _, c := range self.Cases {
		buf = append(buf, fmt.Sprintf("  %s => %s,", c.V, c.Target))
	}
	buf = append(buf, fmt.Sprintf("  _ => %s,", self.Default))
	return fmt.Sprintf("switch %s {\n%s\n}", self.Selector, strings.Join(buf, "\n"))
}

func (self *Switch) Successors() []string {
	ret := make([]string, 0, len(self.Cases)+1)
	for _, c := range self.Cases {
		ret = append(ret, c.Target)
	}
	return append(ret, self.Default)
}

func (self *Switch) Usages() []*Value { return []*Value{&self.Selector} }
func (self *Switch) Loc() DebugInfo   { return self.Debug }

// Return exits the function, V is nil for functions returning void.
type Return struct {
	V     *Value
	Debug DebugInfo
}

func (self *Return) String() string {
	if self.V == nil {
		return "ret"
	} else {
		return fmt.Sprintf("ret %s %s", self.V.Type, *self.V)
	}
}

func (self *Return) Successors() []string { return nil }
func (self *Return) Loc() DebugInfo       { return self.Debug }

func (self *Return) Usages() []*Value {
	if self.V == nil {
		return nil
	} else {
		return []*Value{self.V}
	}
}

type Unreachable struct {
	Debug DebugInfo
}

func (self *Unreachable) String() string       { return "unreachable" }
func (self *Unreachable) Successors() []string { return nil }
func (self *Unreachable) Usages() []*Value     { return nil }
func (self *Unreachable) Loc() DebugInfo       { return self.Debug }

// IndirectBranch jumps to the address in Addr, which must be one of Targets.
type IndirectBranch struct {
	Addr    Value
	Targets []string
	Debug   DebugInfo
}

func (self *IndirectBranch) String() string {
	return fmt.Sprintf("br *%s [%s]", self.Addr, strings.Join(self.Targets, ", "))
}

func (self *IndirectBranch) Successors() []string { return append([]string(nil), self.Targets...) }
func (self *IndirectBranch) Usages() []*Value     { return []*Value{&self.Addr} }
func (self *IndirectBranch) Loc() DebugInfo       { return self.Debug }
