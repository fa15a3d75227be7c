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


package debug

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStats_Merge(t *testing.T) {
	a := Stats{InstructionsRemoved: 1, Iterations: 2, Warnings: []Warning{{Function: "f", Reason: IterationLimit}}}
	b := Stats{BlocksRemoved: 3, Iterations: 1, PhisSimplified: 1, Warnings: []Warning{{Function: "g", Reason: EscapedPointer}}}
	a.Merge(b)
	require.Equal(t, 1, a.InstructionsRemoved)
	require.Equal(t, 3, a.BlocksRemoved)
	require.Equal(t, 3, a.Iterations)
	require.Equal(t, 1, a.PhisSimplified)
	require.Len(t, a.Warnings, 2)
}

func TestStats_Changed(t *testing.T) {
	require.False(t, Stats{}.Changed())
	require.False(t, Stats{Iterations: 5, Warnings: []Warning{{Reason: UnknownCallPurity}}}.Changed())
	require.True(t, Stats{BranchesFolded: 1}.Changed())
	require.True(t, Stats{ConstantsPropagated: 1}.Changed())
}

func TestWarning_String(t *testing.T) {
	require.Equal(t, "f: liveness did not converge", Warning{Function: "f", Reason: LivenessNotConverged}.String())
	require.Equal(t, "f: bb: call g(): unknown call purity", Warning{Function: "f", Block: "bb", Instr: "call g()", Reason: UnknownCallPurity}.String())
	require.Equal(t, "Reason(99)", Reason(99).String())
}

func TestStats_YAML(t *testing.T) {
	buf, err := yaml.Marshal(Stats{
		InstructionsRemoved: 2,
		Warnings:            []Warning{{Function: "f", Block: "entry", Reason: AddressTakenPointer}},
	})
	require.NoError(t, err)
	require.Contains(t, string(buf), "instructions_removed: 2\n")
	require.Contains(t, string(buf), "reason: address-taken pointer\n")
	require.NotContains(t, string(buf), "instr:")
}
