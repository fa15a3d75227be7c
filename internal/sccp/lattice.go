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
)

// The three level lattice over SSA values.
//
//	     Top          not yet proven anything
//	   /  |  \
//	.. 1  2  3 ..     proven to always be this constant
//	   \  |  /
//	    Bottom        proven to vary at runtime
//
// A value is only ever lowered, at most twice.
type Level uint8

const (
	L_top Level = iota
	L_constant
	L_bottom
)

func (self Level) String() string {
	switch self {
	case L_top:
		return "top"
	case L_constant:
		return "constant"
	case L_bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Level(%d)", self)
	}
}

type LatticeValue struct {
	Level Level
	Value ir.Literal
}

func Top() LatticeValue {
	return LatticeValue{Level: L_top}
}

func Bottom() LatticeValue {
	return LatticeValue{Level: L_bottom}
}

func Constant(v ir.Literal) LatticeValue {
	return LatticeValue{Level: L_constant, Value: v}
}

func (self LatticeValue) IsTop() bool      { return self.Level == L_top }
func (self LatticeValue) IsBottom() bool   { return self.Level == L_bottom }
func (self LatticeValue) IsConstant() bool { return self.Level == L_constant }

// Less reports whether self is strictly above other in the lattice.
func (self LatticeValue) Less(other LatticeValue) bool {
	return self.Level < other.Level
}

func (self LatticeValue) String() string {
	if self.Level == L_constant {
		return fmt.Sprintf("constant(%s:%s)", self.Value, self.Value.Type)
	} else {
		return self.Level.String()
	}
}

// Meet computes the greatest lower bound of a and b.
//
//	Top ∩ x             = x
//	Bottom ∩ x          = Bottom
//	Constant(a) ∩ Constant(a) = Constant(a)
//	Constant(a) ∩ Constant(b) = Bottom
func Meet(a LatticeValue, b LatticeValue) LatticeValue {
	switch {
	case a.IsTop():
		return b
	case b.IsTop():
		return a
	case a.IsBottom() || b.IsBottom():
		return Bottom()
	case a.Value == b.Value:
		return a
	default:
		return Bottom()
	}
}
