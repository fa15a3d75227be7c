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

// Instr is a non-terminator instruction. The set of implementations is
// closed, consumers switch over the concrete pointer types.
type Instr interface {
	fmt.Stringer
	Result() (Value, bool)
	Usages() []*Value
	Loc() DebugInfo
	instr()
}

func (*Alloca) instr()        {}
func (*Store) instr()         {}
func (*Load) instr()          {}
func (*Binary) instr()        {}
func (*Unary) instr()         {}
func (*Call) instr()          {}
func (*GetElementPtr) instr() {}
func (*Cast) instr()          {}
func (*Phi) instr()           {}
func (*Vector) instr()        {}

type (
	BinaryOp uint8
	UnaryOp  uint8
	VectorOp uint8
)

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

const (
	OpNegate UnaryOp = iota
	OpNot
)

const (
	OpVecBuild VectorOp = iota
	OpVecExtract
	OpVecInsert
)

var _BinaryOpNames = [...]string{
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpMod:    "mod",
	OpBitAnd: "band",
	OpBitOr:  "bor",
	OpBitXor: "bxor",
	OpShl:    "shl",
	OpShr:    "shr",
	OpAnd:    "and",
	OpOr:     "or",
	OpEq:     "eq",
	OpNe:     "ne",
	OpLt:     "lt",
	OpLe:     "le",
	OpGt:     "gt",
	OpGe:     "ge",
}

func (self BinaryOp) String() string {
	if int(self) < len(_BinaryOpNames) {
		return _BinaryOpNames[self]
	} else {
		panic("unreachable")
	}
}

// IsComparison reports whether the operator always produces a bool.
func (self BinaryOp) IsComparison() bool {
	return self >= OpEq && self <= OpGe
}

func ParseBinaryOp(s string) (BinaryOp, bool) {
	for i, v := range _BinaryOpNames {
		if v == s {
			return BinaryOp(i), true
		}
	}
	return 0, false
}

func (self UnaryOp) String() string {
	switch self {
	case OpNegate:
		return "neg"
	case OpNot:
		return "not"
	default:
		panic("unreachable")
	}
}

func ParseUnaryOp(s string) (UnaryOp, bool) {
	switch s {
	case "neg":
		return OpNegate, true
	case "not":
		return OpNot, true
	default:
		return 0, false
	}
}

func (self VectorOp) String() string {
	switch self {
	case OpVecBuild:
		return "vector.build"
	case OpVecExtract:
		return "vector.extract"
	case OpVecInsert:
		return "vector.insert"
	default:
		panic("unreachable")
	}
}

func ParseVectorOp(s string) (VectorOp, bool) {
	switch s {
	case "build":
		return OpVecBuild, true
	case "extract":
		return OpVecExtract, true
	case "insert":
		return OpVecInsert, true
	default:
		return 0, false
	}
}

func valuelist(vv []Value) string {
	buf := make([]string, 0, len(vv))
	for _, v := range vv {
		buf = append(buf, v.String())
	}
	return strings.Join(buf, ", ")
}

func valueref(vv []Value) []*Value {
	ret := make([]*Value, len(vv))
	for i := range vv {
		ret[i] = &vv[i]
	}
	return ret
}

// Alloca reserves a stack slot of type Elem, R is the slot address.
type Alloca struct {
	R     Value
	Elem  Type
	Debug DebugInfo
}

func (self *Alloca) String() string {
	return fmt.Sprintf("%s = alloca %s", self.R, self.Elem)
}

func (self *Alloca) Result() (Value, bool) { return self.R, true }
func (self *Alloca) Usages() []*Value      { return nil }
func (self *Alloca) Loc() DebugInfo        { return self.Debug }

type Store struct {
	Dest  Value
	Src   Value
	Debug DebugInfo
}

func (self *Store) String() string {
	return fmt.Sprintf("store %s %s -> *%s", self.Src.Type, self.Src, self.Dest)
}

func (self *Store) Result() (Value, bool) { return Value{}, false }
func (self *Store) Usages() []*Value      { return []*Value{&self.Dest, &self.Src} }
func (self *Store) Loc() DebugInfo        { return self.Debug }

type Load struct {
	R     Value
	Src   Value
	Debug DebugInfo
}

func (self *Load) String() string {
	return fmt.Sprintf("%s = load %s *%s", self.R, self.R.Type, self.Src)
}

func (self *Load) Result() (Value, bool) { return self.R, true }
func (self *Load) Usages() []*Value      { return []*Value{&self.Src} }
func (self *Load) Loc() DebugInfo        { return self.Debug }

type Binary struct {
	R     Value
	Op    BinaryOp
	X     Value
	Y     Value
	Debug DebugInfo
}

func (self *Binary) String() string {
	return fmt.Sprintf("%s = %s %s %s, %s", self.R, self.Op, self.X.Type, self.X, self.Y)
}

func (self *Binary) Result() (Value, bool) { return self.R, true }
func (self *Binary) Usages() []*Value      { return []*Value{&self.X, &self.Y} }
func (self *Binary) Loc() DebugInfo        { return self.Debug }

type Unary struct {
	R     Value
	Op    UnaryOp
	V     Value
	Debug DebugInfo
}

func (self *Unary) String() string {
	return fmt.Sprintf("%s = %s %s %s", self.R, self.Op, self.V.Type, self.V)
}

func (self *Unary) Result() (Value, bool) { return self.R, true }
func (self *Unary) Usages() []*Value      { return []*Value{&self.V} }
func (self *Unary) Loc() DebugInfo        { return self.Debug }

// Call invokes Fn. Ret is nil for calls without a return value.
type Call struct {
	Fn    string
	Ret   *Value
	Args  []Value
	Debug DebugInfo
}

func (self *Call) String() string {
	if self.Ret == nil {
		return fmt.Sprintf("call %s(%s)", self.Fn, valuelist(self.Args))
	} else {
		return fmt.Sprintf("%s = call %s %s(%s)", *self.Ret, self.Ret.Type, self.Fn, valuelist(self.Args))
	}
}

func (self *Call) Result() (Value, bool) {
	if self.Ret == nil {
		return Value{}, false
	} else {
		return *self.Ret, true
	}
}

func (self *Call) Usages() []*Value { return valueref(self.Args) }
func (self *Call) Loc() DebugInfo   { return self.Debug }

type GetElementPtr struct {
	R     Value
	Base  Value
	Index []Value
	Debug DebugInfo
}

func (self *GetElementPtr) String() string {
	return fmt.Sprintf("%s = gep %s %s[%s]", self.R, self.R.Type, self.Base, valuelist(self.Index))
}

func (self *GetElementPtr) Result() (Value, bool) { return self.R, true }
func (self *GetElementPtr) Loc() DebugInfo        { return self.Debug }

func (self *GetElementPtr) Usages() []*Value {
	return append([]*Value{&self.Base}, valueref(self.Index)...)
}

// Cast converts V to the type of R.
type Cast struct {
	R     Value
	V     Value
	Debug DebugInfo
}

func (self *Cast) String() string {
	return fmt.Sprintf("%s = cast %s %s to %s", self.R, self.V.Type, self.V, self.R.Type)
}

func (self *Cast) Result() (Value, bool) { return self.R, true }
func (self *Cast) Usages() []*Value      { return []*Value{&self.V} }
func (self *Cast) Loc() DebugInfo        { return self.Debug }

type PhiEdge struct {
	Label string
	V     Value
}

type Phi struct {
	R        Value
	Incoming []PhiEdge
	Debug    DebugInfo
}

func (self *Phi) String() string {
	buf := make([]string, 0, len(self.Incoming))
	for _, e := range self.Incoming {
		buf = append(buf, fmt.Sprintf("[%s: %s]", e.Label, e.V))
	}
	return fmt.Sprintf("%s = φ %s %s", self.R, self.R.Type, strings.Join(buf, ", "))
}

func (self *Phi) Result() (Value, bool) { return self.R, true }
func (self *Phi) Loc() DebugInfo        { return self.Debug }

func (self *Phi) Usages() []*Value {
	ret := make([]*Value, len(self.Incoming))
	for i := range self.Incoming {
		ret[i] = &self.Incoming[i].V
	}
	return ret
}

// Lookup returns the incoming value for a predecessor label.
func (self *Phi) Lookup(label string) (Value, bool) {
	for _, e := range self.Incoming {
		if e.Label == label {
			return e.V, true
		}
	}
	return Value{}, false
}

// Remove drops every incoming entry for label, and reports whether any
// entry was removed.
func (self *Phi) Remove(label string) bool {
	n := 0
	for _, e := range self.Incoming {
		if e.Label != label {
			self.Incoming[n] = e
			n++
		}
	}
	rm := n != len(self.Incoming)
	self.Incoming = self.Incoming[:n]
	return rm
}

type Vector struct {
	R     Value
	Op    VectorOp
	Args  []Value
	Debug DebugInfo
}

func (self *Vector) String() string {
	return fmt.Sprintf("%s = %s %s %s", self.R, self.Op, self.R.Type, valuelist(self.Args))
}

func (self *Vector) Result() (Value, bool) { return self.R, true }
func (self *Vector) Usages() []*Value      { return valueref(self.Args) }
func (self *Vector) Loc() DebugInfo        { return self.Debug }
