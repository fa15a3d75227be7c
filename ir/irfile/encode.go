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
	"fmt"

	"github.com/cloudwego/midend/ir"
	"gopkg.in/yaml.v3"
)

func typed(vv []ir.Value) []string {
	ret := make([]string, 0, len(vv))
	for _, v := range vv {
		ret = append(ret, v.Typed())
	}
	return ret
}

func withDebug(n Node, dbg ir.DebugInfo) Node {
	n.File = dbg.File
	n.Line = dbg.Line
	n.Col = dbg.Col
	n.Scope = dbg.Scope
	return n
}

func encodeInstr(ins ir.Instr) Node {
	switch p := ins.(type) {
	case *ir.Alloca:
		return Node{Op: "alloca", R: p.R.Typed(), Elem: p.Elem.String()}
	case *ir.Store:
		return Node{Op: "store", Dest: p.Dest.Typed(), Src: p.Src.Typed()}
	case *ir.Load:
		return Node{Op: "load", R: p.R.Typed(), Src: p.Src.Typed()}
	case *ir.Binary:
		return Node{Op: p.Op.String(), R: p.R.Typed(), X: p.X.Typed(), Y: p.Y.Typed()}
	case *ir.Unary:
		return Node{Op: p.Op.String(), R: p.R.Typed(), V: p.V.Typed()}
	case *ir.GetElementPtr:
		return Node{Op: "gep", R: p.R.Typed(), Base: p.Base.Typed(), Index: typed(p.Index)}
	case *ir.Cast:
		return Node{Op: "cast", R: p.R.Typed(), V: p.V.Typed()}
	case *ir.Vector:
		return Node{Op: p.Op.String(), R: p.R.Typed(), Args: typed(p.Args)}
	case *ir.Call:
		n := Node{Op: "call", Fn: p.Fn, Args: typed(p.Args)}
		if p.Ret != nil {
			n.R = p.Ret.Typed()
		}
		return n
	case *ir.Phi:
		n := Node{Op: "phi", R: p.R.Typed()}
		for _, e := range p.Incoming {
			n.Incoming = append(n.Incoming, Edge{Label: e.Label, V: e.V.Typed()})
		}
		return n
	default:
		panic(fmt.Sprintf("irfile: invalid instruction: %T", ins))
	}
}

func encodeTerm(term ir.Terminator) Node {
	switch p := term.(type) {
	case *ir.Branch:
		return Node{Op: "br", Target: p.Target}
	case *ir.CondBranch:
		return Node{Op: "condbr", Cond: p.Cond.Typed(), True: p.True, False: p.False}
	case *ir.Switch:
		n := Node{Op: "switch", Selector: p.Selector.Typed(), Default: p.Default}
		for _, c := range p.Cases {
			n.Cases = append(n.Cases, Case{V: ir.Lit(c.V).Typed(), Target: c.Target})
		}
		return n
	case *ir.Return:
		n := Node{Op: "ret"}
		if p.V != nil {
			n.V = p.V.Typed()
		}
		return n
	case *ir.Unreachable:
		return Node{Op: "unreachable"}
	case *ir.IndirectBranch:
		return Node{Op: "indirectbr", Addr: p.Addr.Typed(), Targets: append([]string(nil), p.Targets...)}
	default:
		panic(fmt.Sprintf("irfile: invalid terminator: %T", term))
	}
}

func encodeFunction(fn *ir.Function) Function {
	f := Function{
		Name:  fn.Name,
		Entry: fn.CFG.Entry,
	}

	/* signature */
	if fn.Return != ir.Void {
		f.Return = fn.Return.String()
	}
	for _, p := range fn.Params {
		f.Params = append(f.Params, Param{Name: p.Name, Type: p.Type.String()})
	}
	if len(fn.Locals) != 0 {
		f.Locals = make(map[string]string, len(fn.Locals))
		for name, t := range fn.Locals {
			f.Locals[name] = t.String()
		}
	}

	/* every live block */
	fn.CFG.ForEach(func(_ int, bb *ir.BasicBlock) {
		b := Block{Label: bb.Label}
		for _, ins := range bb.Ins {
			b.Ins = append(b.Ins, withDebug(encodeInstr(ins), ins.Loc()))
		}
		if bb.Term != nil {
			t := withDebug(encodeTerm(bb.Term), bb.Term.Loc())
			b.Term = &t
		}
		f.Blocks = append(f.Blocks, b)
	})
	return f
}

// Encode converts a module into its document form.
func Encode(m *ir.Module) *File {
	f := new(File)
	for _, fn := range m.Functions {
		f.Functions = append(f.Functions, encodeFunction(fn))
	}
	return f
}

// Marshal writes a module as a YAML document.
func Marshal(m *ir.Module) ([]byte, error) {
	return yaml.Marshal(Encode(m))
}
