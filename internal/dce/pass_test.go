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
	"testing"

	"github.com/cloudwego/midend/debug"
	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/ir"
	"github.com/stretchr/testify/require"
)

func TestPass_Run(t *testing.T) {
	m := &ir.Module{Functions: []*ir.Function{counter(), pointers().fn}}
	st, err := NewPass(*testOptions(t)).Run(m)
	require.NoError(t, err)
	require.Equal(t, 6, st.InstructionsRemoved)
	require.Equal(t, 4, st.Iterations)
	require.True(t, st.Changed())
	require.Equal(t, []debug.Reason{debug.AddressTakenPointer, debug.EscapedPointer}, reasons(st))
}

func TestPass_NoStatistics(t *testing.T) {
	o := *testOptions(t)
	o.EnableStatistics = false

	b := ir.NewBuilder("escaped", ir.Void, ir.Param{Name: "p", Type: ir.PtrTo(ir.T_i32)})
	b.Block("entry")
	b.Binary(ir.OpAdd, ir.ConstInt(ir.I32, 1), ir.ConstInt(ir.I32, 2))
	b.Store(b.Param("p"), ir.ConstInt(ir.I32, 42))
	b.RetVoid()

	fn := b.Function()
	st := NewPass(o).RunFunc(fn)
	require.Equal(t, 1, count(fn))
	require.False(t, st.Changed())
	require.Zero(t, st.Iterations)
	require.Equal(t, []debug.Reason{debug.EscapedPointer}, reasons(st))
}

func TestPass_InvalidOptions(t *testing.T) {
	o := opts.GetDefaultOptions()
	o.LivenessMaxIterations = -1
	require.Panics(t, func() { NewPass(o) })
	require.Equal(t, "dce", NewPass(opts.GetDefaultOptions()).Name())
}
