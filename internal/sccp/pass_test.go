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

	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/ir"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) opts.Options {
	o := opts.GetDefaultOptions()
	o.Verbose = true
	o.VerifyInvariants = true
	o.Logger = testr.NewWithOptions(t, testr.Options{Verbosity: 1})
	return o
}

func TestPass_Run(t *testing.T) {
	m := &ir.Module{Functions: []*ir.Function{folded(), counter()}}
	st, err := NewPass(testOptions(t)).Run(m)
	require.NoError(t, err)
	require.Equal(t, 2, st.ConstantsPropagated)
	require.Equal(t, 1, st.PhisSimplified)
	require.Equal(t, 1, st.BranchesFolded)
	require.Zero(t, st.BlocksUnreachable)
	require.True(t, st.Changed())
	require.Empty(t, st.Warnings)
}

func TestPass_NoStatistics(t *testing.T) {
	o := testOptions(t)
	o.EnableStatistics = false
	fn := folded()
	st, err := NewPass(o).RunFunc(fn)
	require.NoError(t, err)
	require.False(t, st.Changed())
	require.Equal(t, &ir.Branch{Target: "then"}, fn.CFG.Block("entry").Term)
}

func TestPass_Error(t *testing.T) {
	b := ir.NewBuilder("broken", ir.I32)
	b.Block("entry")
	r := b.Phi(ir.I32)
	b.Ret(r)

	_, err := NewPass(testOptions(t)).Run(&ir.Module{Functions: []*ir.Function{b.Function()}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sccp: function broken")
	require.Contains(t, err.Error(), "SSAViolation")
}

func TestPass_InvalidOptions(t *testing.T) {
	o := opts.GetDefaultOptions()
	o.MaxIterations = 0
	require.Panics(t, func() { NewPass(o) })
	require.Equal(t, "sccp", NewPass(opts.GetDefaultOptions()).Name())
}
