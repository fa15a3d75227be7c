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
	"github.com/cloudwego/midend/ir"
)

// counter is a loop counting from 0 to 10, with a dead value in its body.
//
//	entry:
//	    br loop
//	loop:
//	    %t1 = φ i32 [entry: 0], [loop: %t2]
//	    %t2 = add %t1, 1
//	    %t3 = lt %t2, 10
//	    %t4 = mul %t2, 2
//	    condbr %t3, loop, exit
//	exit:
//	    ret %t1
func counter() *ir.Function {
	b := ir.NewBuilder("counter", ir.I32)
	b.Block("entry").Br("loop")
	b.Block("loop")
	i := b.Temp(ir.I32)
	phi := &ir.Phi{R: i}
	b.Emit(phi)
	n := b.Binary(ir.OpAdd, i, ir.ConstInt(ir.I32, 1))
	c := b.Binary(ir.OpLt, n, ir.ConstInt(ir.I32, 10))
	b.Binary(ir.OpMul, n, ir.ConstInt(ir.I32, 2))
	b.CondBr(c, "loop", "exit")
	b.Block("exit").Ret(i)
	phi.Incoming = []ir.PhiEdge{
		{Label: "entry", V: ir.ConstInt(ir.I32, 0)},
		{Label: "loop", V: n},
	}
	return b.Function()
}

func count(fn *ir.Function) int {
	n := 0
	fn.CFG.ForEach(func(_ int, bb *ir.BasicBlock) { n += len(bb.Ins) })
	return n
}
