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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDot_Diamond(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteDot(&buf, diamond()))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, `digraph "diamond" {`))
	require.Contains(t, out, "START -> bb_0")
	require.Contains(t, out, `bb_0 -> bb_1 [ label = "true" ]`)
	require.Contains(t, out, `bb_0 -> bb_2 [ label = "false" ]`)
	require.Contains(t, out, `bb_1 -> bb_3 [ label = "goto" ]`)
	require.Contains(t, out, "#&nbsp;pred&nbsp;=&nbsp;{else,&nbsp;then}")
}

func TestDot_SkipsUnreachable(t *testing.T) {
	b := NewBuilder("f", Void)
	b.Block("entry").Switch(ConstInt(I32, 1), "exit", SwitchCase{V: IntLit(I32, 1), Target: "exit"})
	b.Block("dead").Br("exit")
	b.Block("exit").RetVoid()

	var buf strings.Builder
	require.NoError(t, WriteDot(&buf, b.Function()))
	require.NotContains(t, buf.String(), "bb_1")
	require.Contains(t, buf.String(), `bb_0 -> bb_2 [ label = "1" ]`)
	require.Equal(t, 1, strings.Count(buf.String(), "bb_0 -> bb_2"))
}

func TestBuilder_Function(t *testing.T) {
	b := NewBuilder("f", I32, Param{Name: "p", Type: PtrTo(T_i32)})
	b.Block("entry")
	s := b.Alloca(I32)
	b.Store(s, ConstInt(I32, 1))
	x := b.Load(I32, s)
	c := b.Binary(OpEq, x, ConstInt(I32, 1))
	b.Call("print", Void, x)
	b.CondBr(c, "exit", "exit")
	b.Block("exit").Ret(x)

	fn := b.Function()
	require.Equal(t, "entry", fn.CFG.Entry)
	require.Equal(t, PtrTo(T_i32), s.Type)
	require.Equal(t, Bool, c.Type)
	require.Equal(t, Local("p", PtrTo(T_i32)), b.Param("p"))
	require.True(t, fn.IsParam("p"))
	require.Panics(t, func() { b.Param("q") })
	require.Len(t, fn.CFG.Block("entry").Ins, 5)
	require.NoError(t, Verify(fn))
	require.Contains(t, fn.String(), "func f(%p: ptr<i32>) i32 {")
}
