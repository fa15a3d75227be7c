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
	"math"
	"strconv"
)

// Literal is a compile-time constant. Integers are kept as their 64-bit
// two's-complement pattern (sign-extended for signed types), floats as the
// IEEE bits of their float64 value, booleans as 0 or 1.
type Literal struct {
	Type Type
	Bits uint64
	Str  string
}

func IntLit(t Type, v int64) Literal {
	if !t.IsSigned() {
		panic("ir: IntLit with non-signed type " + t.String())
	}
	return Literal{Type: t, Bits: uint64(v)}
}

func UintLit(t Type, v uint64) Literal {
	if !t.IsUnsigned() {
		panic("ir: UintLit with non-unsigned type " + t.String())
	}
	return Literal{Type: t, Bits: v}
}

func FloatLit(t Type, v float64) Literal {
	if !t.IsFloat() {
		panic("ir: FloatLit with non-float type " + t.String())
	}
	if t.Kind == T_f32 {
		v = float64(float32(v))
	}
	return Literal{Type: t, Bits: math.Float64bits(v)}
}

func BoolLit(v bool) Literal {
	if v {
		return Literal{Type: Bool, Bits: 1}
	} else {
		return Literal{Type: Bool, Bits: 0}
	}
}

func StrLit(v string) Literal {
	return Literal{Type: Str, Str: v}
}

func (self Literal) Int() int64 {
	return int64(self.Bits)
}

func (self Literal) Uint() uint64 {
	return self.Bits
}

func (self Literal) Float() float64 {
	return math.Float64frombits(self.Bits)
}

func (self Literal) BoolValue() bool {
	return self.Bits != 0
}

func (self Literal) String() string {
	switch t := self.Type; {
	case t.Kind == T_bool:
		return strconv.FormatBool(self.BoolValue())
	case t.Kind == T_str:
		return strconv.Quote(self.Str)
	case t.IsSigned():
		return strconv.FormatInt(self.Int(), 10)
	case t.IsUnsigned():
		return strconv.FormatUint(self.Uint(), 10)
	case t.IsFloat():
		return strconv.FormatFloat(self.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("<%s %#x>", t, self.Bits)
	}
}

type ValueKind uint8

const (
	V_literal ValueKind = iota
	V_local
	V_global
	V_temp
	V_arg
)

func (self ValueKind) String() string {
	switch self {
	case V_literal:
		return "literal"
	case V_local:
		return "local"
	case V_global:
		return "global"
	case V_temp:
		return "temporary"
	case V_arg:
		return "argument"
	default:
		return fmt.Sprintf("ValueKind(%d)", self)
	}
}

// Value is an SSA operand. It is a plain comparable struct: equality and
// hashing cover the kind payload and the type only, debug information lives
// on the instruction that carries the operand.
type Value struct {
	Kind ValueKind
	Lit  Literal
	Name string
	ID   uint32
	Type Type
}

func Lit(v Literal) Value {
	return Value{Kind: V_literal, Lit: v, Type: v.Type}
}

func Local(name string, t Type) Value {
	return Value{Kind: V_local, Name: name, Type: t}
}

func Global(name string, t Type) Value {
	return Value{Kind: V_global, Name: name, Type: t}
}

func Temp(id uint32, t Type) Value {
	return Value{Kind: V_temp, ID: id, Type: t}
}

func Arg(index uint32, t Type) Value {
	return Value{Kind: V_arg, ID: index, Type: t}
}

func (self Value) IsLiteral() bool {
	return self.Kind == V_literal
}

func (self Value) IsPtr() bool {
	return self.Type.IsPtr()
}

func (self Value) String() string {
	switch self.Kind {
	case V_literal:
		return self.Lit.String()
	case V_local:
		return "%" + self.Name
	case V_global:
		return "@" + self.Name
	case V_temp:
		return fmt.Sprintf("%%t%d", self.ID)
	case V_arg:
		return fmt.Sprintf("%%arg%d", self.ID)
	default:
		panic("unreachable")
	}
}

// Typed renders the value with its type, in the form accepted by irfile.
func (self Value) Typed() string {
	return self.String() + ":" + self.Type.String()
}

// DebugInfo is source-level metadata attached to instructions and
// terminators. It never takes part in any analysis.
type DebugInfo struct {
	File  string
	Line  int
	Col   int
	Scope string
}

func (self DebugInfo) IsZero() bool {
	return self == DebugInfo{}
}

func (self DebugInfo) String() string {
	if self.IsZero() {
		return ""
	} else {
		return fmt.Sprintf("%s:%d:%d", self.File, self.Line, self.Col)
	}
}
