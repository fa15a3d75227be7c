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


package irfile

import (
	"testing"

	"github.com/cloudwego/midend/ir"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

const sample = `
functions:
  - name: main
    return: i32
    params: [{name: p, type: ptr<i32>}]
    blocks:
      - label: entry
        ins:
          - {op: add, r: "%t1:i32", x: "10:i32", y: "20:i32"}
          - {op: store, dest: "%p:ptr<i32>", src: "%t1:i32", file: main.c, line: 3, col: 5}
          - {op: eq, r: "%t2:bool", x: "%t1:i32", y: "30:i32"}
        term: {op: condbr, cond: "%t2:bool", then: left, else: right}
      - label: left
        term: {op: br, target: exit}
      - label: right
        term: {op: br, target: exit}
      - label: exit
        ins:
          - op: phi
            r: "%t3:i32"
            incoming:
              - {label: left, v: "1:i32"}
              - {label: right, v: "2:i32"}
        term: {op: ret, v: "%t3:i32"}
`

func TestParse_Sample(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, m.Functions, 1)

	fn := m.Functions[0]
	require.Equal(t, "entry", fn.CFG.Entry)
	require.Equal(t, ir.I32, fn.Return)
	require.Equal(t, 4, fn.CFG.Len())
	require.NoError(t, ir.Verify(fn))

	/* operands and debug info */
	st := fn.CFG.Block("entry").Ins[1].(*ir.Store)
	require.Equal(t, ir.Local("p", ir.PtrTo(ir.T_i32)), st.Dest)
	require.Equal(t, ir.Temp(1, ir.I32), st.Src)
	require.Equal(t, ir.DebugInfo{File: "main.c", Line: 3, Col: 5}, st.Loc())

	/* phi edges */
	phi := fn.CFG.Block("exit").Phis()[0]
	v, ok := phi.Lookup("right")
	require.True(t, ok)
	require.Equal(t, ir.ConstInt(ir.I32, 2), v)
}

func TestMarshal_RoundTrip(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	buf, err := Marshal(m)
	require.NoError(t, err)
	ret, err := Parse(buf)
	require.NoError(t, err)

	opts := cmp.Options{
		cmpopts.IgnoreUnexported(ir.CFG{}),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(m, ret, opts...); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_Builder(t *testing.T) {
	b := ir.NewBuilder("vec", ir.Void, ir.Param{Name: "q", Type: ir.PtrTo(ir.T_u8)})
	b.Block("entry")
	s := b.Alloca(ir.VectorOf(ir.T_f32, 4))
	e := b.GEP(ir.PtrTo(ir.T_f32), s, ir.ConstInt(ir.I64, 2))
	v := b.Vector(ir.OpVecBuild, ir.VectorOf(ir.T_f32, 2), ir.ConstFloat(ir.F32, 1.5), ir.ConstFloat(ir.F32, -2))
	x := b.Vector(ir.OpVecExtract, ir.F32, v, ir.ConstInt(ir.I32, 0))
	b.Store(e, x)
	n := b.Cast(b.Param("q"), ir.U64)
	r := b.Call("hash", ir.U64, n, ir.Lit(ir.StrLit("salt: \"x\"")))
	b.Call("sink", ir.Void, r)
	b.Switch(ir.ConstInt(ir.U64, 3), "exit", ir.SwitchCase{V: ir.UintLit(ir.U64, 3), Target: "three"})
	b.Block("three").IndirectBr(ir.Global("tbl", ir.PtrTo(ir.T_u8)), "exit")
	b.Block("exit").RetVoid()

	m := &ir.Module{Functions: []*ir.Function{b.Function()}}
	buf, err := Marshal(m)
	require.NoError(t, err)
	ret, err := Parse(buf)
	require.NoError(t, err)

	opts := cmp.Options{
		cmpopts.IgnoreUnexported(ir.CFG{}),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(m, ret, opts...); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in  string
		out ir.Value
	}{
		{"%x:i32", ir.Local("x", ir.I32)},
		{"%t12:i64", ir.Temp(12, ir.I64)},
		{"%arg1:bool", ir.Arg(1, ir.Bool)},
		{"%tmp:u8", ir.Local("tmp", ir.U8)},
		{"@g:ptr<i32>", ir.Global("g", ir.PtrTo(ir.T_i32))},
		{"-128:i8", ir.ConstInt(ir.I8, -128)},
		{"0xff:u8", ir.ConstInt(ir.U8, 255)},
		{"false:bool", ir.ConstBool(false)},
		{"0.25:f64", ir.ConstFloat(ir.F64, 0.25)},
		{`"a:b":str`, ir.Lit(ir.StrLit("a:b"))},
	}
	for _, tc := range tests {
		v, err := ParseValue(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.out, v, tc.in)
	}
}

func TestParseValue_Invalid(t *testing.T) {
	for _, s := range []string{"x", ":i32", "%x:i99", "128:i8", "-1:u8", "yes:bool", "1:ptr<i32>", "hi:str"} {
		_, err := ParseValue(s)
		require.Error(t, err, s)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown instruction": `
functions:
  - name: f
    blocks:
      - label: entry
        ins: [{op: frob, r: "%t1:i32"}]
        term: {op: unreachable}
`,
		"unknown terminator": `
functions:
  - name: f
    blocks:
      - label: entry
        term: {op: jump}
`,
		"duplicated block": `
functions:
  - name: f
    blocks:
      - label: entry
        term: {op: br, target: entry}
      - label: entry
        term: {op: unreachable}
`,
		"missing type": `
functions:
  - name: f
    blocks:
      - label: entry
        term: {op: ret, v: "1"}
`,
	}
	for note, src := range tests {
		_, err := Parse([]byte(src))
		require.Error(t, err, note)
		require.Contains(t, err.Error(), note)
		require.Contains(t, err.Error(), "function f")
	}

	/* malformed documents */
	_, err := Parse([]byte("functions: {"))
	require.Error(t, err)
}
