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
	"testing"

	"github.com/cloudwego/midend/ir"
	"github.com/stretchr/testify/require"
)

// folded is a diamond whose condition is a compile-time constant.
func folded() *ir.Function {
	b := ir.NewBuilder("folded", ir.I32)
	b.Block("entry")
	c := b.Binary(ir.OpLt, ir.ConstInt(ir.I32, 1), ir.ConstInt(ir.I32, 2))
	b.CondBr(c, "then", "else")
	b.Block("then").Br("exit")
	b.Block("else").Br("exit")
	b.Block("exit")
	x := b.Phi(ir.I32,
		ir.PhiEdge{Label: "then", V: ir.ConstInt(ir.I32, 10)},
		ir.PhiEdge{Label: "else", V: ir.ConstInt(ir.I32, 20)},
	)
	b.Ret(x)
	return b.Function()
}

// counter is a loop counting from 0 to 10.
func counter() *ir.Function {
	b := ir.NewBuilder("counter", ir.I32)
	b.Block("entry").Br("loop")
	b.Block("loop")
	i := b.Temp(ir.I32)
	phi := &ir.Phi{R: i}
	b.Emit(phi)
	n := b.Binary(ir.OpAdd, i, ir.ConstInt(ir.I32, 1))
	c := b.Binary(ir.OpLt, n, ir.ConstInt(ir.I32, 10))
	b.CondBr(c, "loop", "exit")
	b.Block("exit").Ret(i)
	phi.Incoming = []ir.PhiEdge{
		{Label: "entry", V: ir.ConstInt(ir.I32, 0)},
		{Label: "loop", V: n},
	}
	return b.Function()
}

func TestPropagator_Folded(t *testing.T) {
	fn := folded()
	p := NewPropagator(fn)
	require.True(t, p.Pending())
	p.Run()
	require.False(t, p.Pending())
	require.NotZero(t, p.Steps())

	/* only the true branch is taken */
	require.True(t, p.IsExecutable(0))
	require.True(t, p.IsExecutable(1))
	require.False(t, p.IsExecutable(2))
	require.True(t, p.IsExecutable(3))
	require.True(t, p.IsEdgeExecutable(-1, 0))
	require.True(t, p.IsEdgeExecutable(0, 1))
	require.False(t, p.IsEdgeExecutable(0, 2))
	require.False(t, p.IsEdgeExecutable(2, 3))

	/* the phi only sees the executable edge */
	require.Equal(t, cbool(true), p.Value(ir.Temp(1, ir.Bool)))
	require.Equal(t, ci(ir.I32, 10), p.Value(ir.Temp(2, ir.I32)))
}

func TestPropagator_Loop(t *testing.T) {
	fn := counter()
	p := NewPropagator(fn)
	p.Run()
	require.True(t, p.IsExecutable(2))
	require.True(t, p.IsEdgeExecutable(1, 1))
	require.Equal(t, Bottom(), p.Value(ir.Temp(1, ir.I32)))
	require.Equal(t, Bottom(), p.Value(ir.Temp(2, ir.I32)))
	require.Equal(t, Bottom(), p.Value(ir.Temp(3, ir.Bool)))
}

func TestPropagator_Monotonic(t *testing.T) {
	for _, fn := range []*ir.Function{folded(), counter()} {
		seen := make(map[ir.Value]int)
		p := NewPropagator(fn)
		p.SetTracer(func(v ir.Value, from LatticeValue, to LatticeValue) {
			require.True(t, from.Less(to), "%s: %s -> %s", v, from, to)
			seen[v]++
		})
		p.Run()

		/* each value is lowered at most twice */
		for v, n := range seen {
			require.LessOrEqual(t, n, 2, v.String())
		}
	}
}

func TestPropagator_Step(t *testing.T) {
	p := NewPropagator(folded())
	n := 0
	for p.Step() {
		n++
	}
	require.Equal(t, n+1, p.Steps())
	require.False(t, p.Step())
	require.Equal(t, n+1, p.Steps())
}

func TestPropagator_Values(t *testing.T) {
	p := NewPropagator(folded())
	require.Equal(t, Top(), p.Value(ir.Temp(1, ir.Bool)))
	require.Equal(t, ci(ir.I8, 3), p.Value(ir.ConstInt(ir.I8, 3)))
	require.Equal(t, Bottom(), p.Value(ir.Arg(0, ir.I32)))
	require.Equal(t, Bottom(), p.Value(ir.Global("g", ir.PtrTo(ir.T_i32))))
}

func TestPropagator_Opaque(t *testing.T) {
	b := ir.NewBuilder("opaque", ir.I32, ir.Param{Name: "p", Type: ir.PtrTo(ir.T_i32)})
	b.Block("entry")
	x := b.Load(ir.I32, b.Param("p"))
	y := b.Call("f", ir.I32)
	z := b.Binary(ir.OpMul, x, ir.ConstInt(ir.I32, 0))
	b.Ret(z)

	p := NewPropagator(b.Function())
	p.Run()
	require.Equal(t, Bottom(), p.Value(x))
	require.Equal(t, Bottom(), p.Value(y))
	require.Equal(t, Bottom(), p.Value(z))
}
