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
	"math"
	"math/bits"
	"strings"

	"github.com/cloudwego/midend/ir"
)

func smin(w uint) int64  { return -1 << (w - 1) }
func smax(w uint) int64  { return 1<<(w-1) - 1 }
func umax(w uint) uint64 { return math.MaxUint64 >> (64 - w) }

func fitsSigned(v int64, w uint) bool {
	return v >= smin(w) && v <= smax(w)
}

func fitsUnsigned(v uint64, w uint) bool {
	return v <= umax(w)
}

func cbool(v bool) LatticeValue {
	return Constant(ir.BoolLit(v))
}

func csigned(t ir.Type, v int64, ok bool) LatticeValue {
	if !ok || !fitsSigned(v, t.Bits()) {
		return Bottom()
	} else {
		return Constant(ir.IntLit(t, v))
	}
}

func cunsigned(t ir.Type, v uint64, ok bool) LatticeValue {
	if !ok || !fitsUnsigned(v, t.Bits()) {
		return Bottom()
	} else {
		return Constant(ir.UintLit(t, v))
	}
}

func cfloat(t ir.Type, v float64) LatticeValue {
	if t.Kind == ir.T_f32 {
		v = float64(float32(v))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Bottom()
	} else {
		return Constant(ir.FloatLit(t, v))
	}
}

func addInt64(x int64, y int64) (int64, bool) {
	if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
		return 0, false
	} else {
		return x + y, true
	}
}

func subInt64(x int64, y int64) (int64, bool) {
	if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
		return 0, false
	} else {
		return x - y, true
	}
}

func mulInt64(x int64, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}

	/* the only products that cannot be checked by division */
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}

	/* check by dividing back */
	if p := x * y; p/y != x {
		return 0, false
	} else {
		return p, true
	}
}

func foldSigned(op ir.BinaryOp, t ir.Type, x int64, y int64) LatticeValue {
	w := t.Bits()
	switch op {
	case ir.OpAdd:
		v, ok := addInt64(x, y)
		return csigned(t, v, ok)
	case ir.OpSub:
		v, ok := subInt64(x, y)
		return csigned(t, v, ok)
	case ir.OpMul:
		v, ok := mulInt64(x, y)
		return csigned(t, v, ok)
	case ir.OpDiv:
		if y == 0 || (x == smin(w) && y == -1) {
			return Bottom()
		} else {
			return csigned(t, x/y, true)
		}
	case ir.OpMod:
		if y == 0 {
			return Bottom()
		} else {
			return csigned(t, x%y, true)
		}
	case ir.OpBitAnd:
		return csigned(t, x&y, true)
	case ir.OpBitOr:
		return csigned(t, x|y, true)
	case ir.OpBitXor:
		return csigned(t, x^y, true)
	case ir.OpShl:
		if y < 0 || uint64(y) >= uint64(w) {
			return Bottom()
		} else if v := x << uint(y); v>>uint(y) != x {
			return Bottom()
		} else {
			return csigned(t, v, true)
		}
	case ir.OpShr:
		if y < 0 || uint64(y) >= uint64(w) {
			return Bottom()
		} else {
			return csigned(t, x>>uint(y), true)
		}
	default:
		return Bottom()
	}
}

func foldUnsigned(op ir.BinaryOp, t ir.Type, x uint64, y uint64) LatticeValue {
	w := t.Bits()
	switch op {
	case ir.OpAdd:
		v, c := bits.Add64(x, y, 0)
		return cunsigned(t, v, c == 0)
	case ir.OpSub:
		v, b := bits.Sub64(x, y, 0)
		return cunsigned(t, v, b == 0)
	case ir.OpMul:
		hi, lo := bits.Mul64(x, y)
		return cunsigned(t, lo, hi == 0)
	case ir.OpDiv:
		if y == 0 {
			return Bottom()
		} else {
			return cunsigned(t, x/y, true)
		}
	case ir.OpMod:
		if y == 0 {
			return Bottom()
		} else {
			return cunsigned(t, x%y, true)
		}
	case ir.OpBitAnd:
		return cunsigned(t, x&y, true)
	case ir.OpBitOr:
		return cunsigned(t, x|y, true)
	case ir.OpBitXor:
		return cunsigned(t, x^y, true)
	case ir.OpShl:
		if y >= uint64(w) {
			return Bottom()
		} else if v := x << y; v>>y != x {
			return Bottom()
		} else {
			return cunsigned(t, v, true)
		}
	case ir.OpShr:
		if y >= uint64(w) {
			return Bottom()
		} else {
			return cunsigned(t, x>>y, true)
		}
	default:
		return Bottom()
	}
}

func foldFloat(op ir.BinaryOp, t ir.Type, x float64, y float64) LatticeValue {
	switch op {
	case ir.OpAdd:
		return cfloat(t, x+y)
	case ir.OpSub:
		return cfloat(t, x-y)
	case ir.OpMul:
		return cfloat(t, x*y)
	case ir.OpDiv:
		return cfloat(t, x/y)
	case ir.OpMod:
		return cfloat(t, math.Mod(x, y))
	default:
		return Bottom()
	}
}

func foldBool(op ir.BinaryOp, x bool, y bool) LatticeValue {
	switch op {
	case ir.OpAnd:
		return cbool(x && y)
	case ir.OpOr:
		return cbool(x || y)
	default:
		return Bottom()
	}
}

// compare returns -1, 0 or +1 for ordered operands, and ok == false when
// the operands are unordered (NaNs).
func compare(x ir.Literal, y ir.Literal) (int, bool) {
	switch t := x.Type; {
	case t.IsSigned():
		return cmp3(x.Int() < y.Int(), x.Int() > y.Int()), true
	case t.IsUnsigned():
		return cmp3(x.Uint() < y.Uint(), x.Uint() > y.Uint()), true
	case t.IsFloat():
		a, b := x.Float(), y.Float()
		return cmp3(a < b, a > b), !math.IsNaN(a) && !math.IsNaN(b)
	case t.Kind == ir.T_bool:
		return cmp3(x.Bits < y.Bits, x.Bits > y.Bits), true
	case t.Kind == ir.T_str:
		return strings.Compare(x.Str, y.Str), true
	default:
		return cmp3(x.Bits < y.Bits, x.Bits > y.Bits), true
	}
}

func cmp3(lt bool, gt bool) int {
	switch {
	case lt:
		return -1
	case gt:
		return 1
	default:
		return 0
	}
}

func foldCompare(op ir.BinaryOp, x ir.Literal, y ir.Literal) LatticeValue {
	c, ordered := compare(x, y)

	/* IEEE semantics: every comparison involving a NaN is false, except != */
	if !ordered {
		return cbool(op == ir.OpNe)
	}

	/* ordered operands */
	switch op {
	case ir.OpEq:
		return cbool(c == 0)
	case ir.OpNe:
		return cbool(c != 0)
	case ir.OpLt:
		return cbool(c < 0)
	case ir.OpLe:
		return cbool(c <= 0)
	case ir.OpGt:
		return cbool(c > 0)
	case ir.OpGe:
		return cbool(c >= 0)
	default:
		panic("sccp: invalid comparison operator: " + op.String())
	}
}

// EvaluateBinary folds a binary operator over two lattice values. The result
// is either the exact folded constant or Bottom, it never wraps around.
func EvaluateBinary(op ir.BinaryOp, x LatticeValue, y LatticeValue) LatticeValue {
	switch {
	case x.IsBottom() || y.IsBottom():
		return Bottom()
	case x.IsTop() || y.IsTop():
		return Top()
	}

	/* no implicit coercion between literal types */
	a, b := x.Value, y.Value
	if a.Type != b.Type {
		return Bottom()
	}

	/* comparisons fold for every type */
	if op.IsComparison() {
		return foldCompare(op, a, b)
	}

	/* arithmetic, bitwise and logical operators */
	switch t := a.Type; {
	case t.IsSigned():
		return foldSigned(op, t, a.Int(), b.Int())
	case t.IsUnsigned():
		return foldUnsigned(op, t, a.Uint(), b.Uint())
	case t.IsFloat():
		return foldFloat(op, t, a.Float(), b.Float())
	case t.Kind == ir.T_bool:
		return foldBool(op, a.BoolValue(), b.BoolValue())
	default:
		return Bottom()
	}
}

// EvaluateUnary folds a unary operator over a lattice value.
func EvaluateUnary(op ir.UnaryOp, v LatticeValue) LatticeValue {
	if !v.IsConstant() {
		return v
	}

	/* fold by type */
	switch t := v.Value.Type; {
	case t.IsSigned():
		switch op {
		case ir.OpNegate:
			return csigned(t, -v.Value.Int(), v.Value.Int() != smin(t.Bits()))
		case ir.OpNot:
			return csigned(t, ^v.Value.Int(), true)
		}
	case t.IsUnsigned():
		if op == ir.OpNot {
			return cunsigned(t, ^v.Value.Uint()&umax(t.Bits()), true)
		}
	case t.IsFloat():
		if op == ir.OpNegate {
			return cfloat(t, -v.Value.Float())
		}
	case t.Kind == ir.T_bool:
		if op == ir.OpNot {
			return cbool(!v.Value.BoolValue())
		}
	}
	return Bottom()
}

// EvaluateCast folds a conversion of v to type to. Conversions fold only
// when the value is exactly representable in the target type.
func EvaluateCast(to ir.Type, v LatticeValue) LatticeValue {
	if !v.IsConstant() {
		return v
	}

	/* identity conversion */
	x := v.Value
	if x.Type == to {
		return v
	}

	/* fold by source type */
	switch t := x.Type; {
	case t.IsSigned():
		return castInt(to, x.Int(), x.Int() < 0)
	case t.IsUnsigned():
		return castInt(to, int64(x.Uint()), false)
	case t.IsFloat():
		return castFloat(to, x.Float())
	case t.Kind == ir.T_bool && to.IsInteger():
		return castInt(to, int64(x.Bits), false)
	default:
		return Bottom()
	}
}

// castInt converts an integer to another numeric type. The source value is
// v when neg is set, and uint64(v) otherwise.
func castInt(to ir.Type, v int64, neg bool) LatticeValue {
	switch {
	case to.IsSigned() && neg:
		return csigned(to, v, true)
	case to.IsSigned():
		return csigned(to, v, uint64(v) <= math.MaxInt64)
	case to.IsUnsigned():
		return cunsigned(to, uint64(v), !neg)
	case to.IsFloat():
		var f float64
		if neg {
			f = float64(v)
		} else {
			f = float64(uint64(v))
		}

		/* the conversion must round-trip */
		if r := floatToInt(f, neg); !r.ok || r.bits != uint64(v) {
			return Bottom()
		} else if to.Kind == ir.T_f32 && float64(float32(f)) != f {
			return Bottom()
		} else {
			return cfloat(to, f)
		}
	default:
		return Bottom()
	}
}

type _IntBits struct {
	bits uint64
	ok   bool
}

// floatToInt converts an integral f back to its 64-bit pattern.
func floatToInt(f float64, signed bool) _IntBits {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return _IntBits{}
	}

	/* range check in the float domain */
	if signed {
		if f < -(1<<63) || f >= 1<<63 {
			return _IntBits{}
		} else {
			return _IntBits{bits: uint64(int64(f)), ok: true}
		}
	} else {
		if f < 0 || f >= 1<<64 {
			return _IntBits{}
		} else {
			return _IntBits{bits: uint64(f), ok: true}
		}
	}
}

func castFloat(to ir.Type, f float64) LatticeValue {
	switch {
	case to.IsFloat():
		if to.Kind == ir.T_f32 && float64(float32(f)) != f {
			return Bottom()
		} else {
			return cfloat(to, f)
		}
	case to.IsSigned():
		if r := floatToInt(f, true); !r.ok {
			return Bottom()
		} else {
			return csigned(to, int64(r.bits), true)
		}
	case to.IsUnsigned():
		if r := floatToInt(f, false); !r.ok {
			return Bottom()
		} else {
			return cunsigned(to, r.bits, true)
		}
	default:
		return Bottom()
	}
}
