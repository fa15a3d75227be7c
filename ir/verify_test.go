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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func requireInvalid(t *testing.T, fn *Function, note string) {
	err := Verify(fn)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidIR), "%+v", err)
	require.Contains(t, err.Error(), note)
}

func TestVerify_Valid(t *testing.T) {
	require.NoError(t, Verify(diamond()))
}

func TestVerify_MissingEntry(t *testing.T) {
	fn := diamond()
	fn.CFG.Entry = "nowhere"
	requireInvalid(t, fn, "missing entry block")
}

func TestVerify_MissingTerminator(t *testing.T) {
	fn := diamond()
	fn.CFG.Block("then").Term = nil
	requireInvalid(t, fn, "block has no terminator")
}

func TestVerify_UndefinedTarget(t *testing.T) {
	fn := diamond()
	fn.CFG.Block("then").Term = &Branch{Target: "nowhere"}
	requireInvalid(t, fn, "branch to undefined block")
}

func TestVerify_DoubleDefinition(t *testing.T) {
	b := NewBuilder("f", I32)
	b.Block("entry")
	x := b.Binary(OpAdd, ConstInt(I32, 1), ConstInt(I32, 2))
	b.Emit(&Binary{R: x, Op: OpSub, X: ConstInt(I32, 1), Y: ConstInt(I32, 2)})
	b.Ret(x)
	requireInvalid(t, b.Function(), "is defined more than once")
}

func TestVerify_UseBeforeDefinition(t *testing.T) {
	b := NewBuilder("f", I32)
	b.Block("entry")
	x := b.Temp(I32)
	y := b.Binary(OpAdd, x, ConstInt(I32, 1))
	b.Emit(&Binary{R: x, Op: OpAdd, X: ConstInt(I32, 1), Y: ConstInt(I32, 2)})
	b.Ret(y)
	requireInvalid(t, b.Function(), "is used before its definition")
}

func TestVerify_Dominance(t *testing.T) {
	b := NewBuilder("f", I32, Param{Name: "c", Type: Bool})
	b.Block("entry").CondBr(b.Param("c"), "then", "exit")
	b.Block("then")
	x := b.Binary(OpAdd, ConstInt(I32, 1), ConstInt(I32, 2))
	b.Br("exit")
	b.Block("exit").Ret(x)
	requireInvalid(t, b.Function(), "does not dominate its use")
}

func TestVerify_PhiPredecessors(t *testing.T) {
	fn := diamond()
	p := fn.CFG.Block("exit").Phis()[0]
	p.Incoming = append(p.Incoming, PhiEdge{Label: "entry", V: ConstInt(I32, 3)})
	require.True(t, errors.Is(VerifyPhiPredecessors(fn), ErrInvalidIR))
	requireInvalid(t, fn, "which is not a predecessor")
}

func TestVerify_EmptyPhi(t *testing.T) {
	fn := diamond()
	fn.CFG.Block("exit").Phis()[0].Incoming = nil
	requireInvalid(t, fn, "has no incoming values")
}

func TestVerify_EmptyPhiInUnreachableBlock(t *testing.T) {
	b := NewBuilder("f", Void)
	b.Block("entry").RetVoid()
	b.Block("dead")
	b.Phi(I32)
	b.RetVoid()
	require.NoError(t, Verify(b.Function()))
}

func TestVerify_PhiOperandFromLoop(t *testing.T) {
	b := NewBuilder("loop", I32)
	b.Block("entry").Br("body")
	b.Block("body")
	i := b.Temp(I32)
	b.Emit(&Phi{R: i})
	n := b.Binary(OpAdd, i, ConstInt(I32, 1))
	c := b.Binary(OpLt, n, ConstInt(I32, 10))
	b.CondBr(c, "body", "exit")
	b.Block("exit").Ret(n)
	b.Function().CFG.Block("body").Phis()[0].Incoming = []PhiEdge{
		{Label: "entry", V: ConstInt(I32, 0)},
		{Label: "body", V: n},
	}
	require.NoError(t, Verify(b.Function()))
}
