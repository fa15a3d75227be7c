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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/midend/ir"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ParseValue parses a "value:type" operand.
func ParseValue(s string) (ir.Value, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return ir.Value{}, errors.Newf("missing type in operand %q", s)
	}

	/* parse the type first */
	vs := strings.TrimSpace(s[:i])
	vt, err := ir.ParseType(s[i+1:])
	if err != nil {
		return ir.Value{}, errors.Wrapf(err, "operand %q", s)
	}

	/* named values */
	switch {
	case vs == "":
		return ir.Value{}, errors.Newf("empty operand %q", s)
	case vs[0] == '@':
		return ir.Global(vs[1:], vt), nil
	case vs[0] == '%':
		return parseVariable(vs[1:], vt), nil
	}

	/* literals */
	if lit, err := parseLiteral(vs, vt); err != nil {
		return ir.Value{}, errors.Wrapf(err, "operand %q", s)
	} else {
		return ir.Lit(lit), nil
	}
}

func parseVariable(name string, vt ir.Type) ir.Value {
	if id, ok := numbered(name, "arg"); ok {
		return ir.Arg(id, vt)
	} else if id, ok = numbered(name, "t"); ok {
		return ir.Temp(id, vt)
	} else {
		return ir.Local(name, vt)
	}
}

func numbered(name string, prefix string) (uint32, bool) {
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return 0, false
	} else if id, err := strconv.ParseUint(name[len(prefix):], 10, 32); err != nil {
		return 0, false
	} else {
		return uint32(id), true
	}
}

func parseLiteral(s string, vt ir.Type) (ir.Literal, error) {
	switch {
	case vt.Kind == ir.T_bool:
		if v, err := strconv.ParseBool(s); err != nil {
			return ir.Literal{}, err
		} else {
			return ir.BoolLit(v), nil
		}
	case vt.Kind == ir.T_str:
		if v, err := strconv.Unquote(s); err != nil {
			return ir.Literal{}, err
		} else {
			return ir.StrLit(v), nil
		}
	case vt.IsSigned():
		if v, err := strconv.ParseInt(s, 0, int(vt.Bits())); err != nil {
			return ir.Literal{}, err
		} else {
			return ir.IntLit(vt, v), nil
		}
	case vt.IsUnsigned():
		if v, err := strconv.ParseUint(s, 0, int(vt.Bits())); err != nil {
			return ir.Literal{}, err
		} else {
			return ir.UintLit(vt, v), nil
		}
	case vt.IsFloat():
		if v, err := strconv.ParseFloat(s, int(vt.Bits())); err != nil {
			return ir.Literal{}, err
		} else {
			return ir.FloatLit(vt, v), nil
		}
	default:
		return ir.Literal{}, errors.Newf("type %s has no literals", vt)
	}
}

type _Decoder struct {
	err error
}

func (self *_Decoder) value(s string) ir.Value {
	if self.err != nil {
		return ir.Value{}
	}
	v, err := ParseValue(s)
	self.err = err
	return v
}

func (self *_Decoder) values(ss []string) []ir.Value {
	ret := make([]ir.Value, 0, len(ss))
	for _, s := range ss {
		ret = append(ret, self.value(s))
	}
	return ret
}

func (self *_Decoder) typ(s string) ir.Type {
	if self.err != nil {
		return ir.Type{}
	}
	t, err := ir.ParseType(s)
	self.err = err
	return t
}

func (self *_Decoder) literal(s string) ir.Literal {
	return self.value(s).Lit
}

func debugInfo(n *Node) ir.DebugInfo {
	return ir.DebugInfo{
		File:  n.File,
		Line:  n.Line,
		Col:   n.Col,
		Scope: n.Scope,
	}
}

func (self *_Decoder) instr(n *Node) ir.Instr {
	dbg := debugInfo(n)

	/* binary and unary operators */
	if op, ok := ir.ParseBinaryOp(n.Op); ok {
		return &ir.Binary{R: self.value(n.R), Op: op, X: self.value(n.X), Y: self.value(n.Y), Debug: dbg}
	} else if op, ok := ir.ParseUnaryOp(n.Op); ok {
		return &ir.Unary{R: self.value(n.R), Op: op, V: self.value(n.V), Debug: dbg}
	}

	/* vector operators */
	if strings.HasPrefix(n.Op, "vector.") {
		if op, ok := ir.ParseVectorOp(n.Op[7:]); ok {
			return &ir.Vector{R: self.value(n.R), Op: op, Args: self.values(n.Args), Debug: dbg}
		}
	}

	/* everything else */
	switch n.Op {
	case "alloca":
		return &ir.Alloca{R: self.value(n.R), Elem: self.typ(n.Elem), Debug: dbg}
	case "store":
		return &ir.Store{Dest: self.value(n.Dest), Src: self.value(n.Src), Debug: dbg}
	case "load":
		return &ir.Load{R: self.value(n.R), Src: self.value(n.Src), Debug: dbg}
	case "gep":
		return &ir.GetElementPtr{R: self.value(n.R), Base: self.value(n.Base), Index: self.values(n.Index), Debug: dbg}
	case "cast":
		return &ir.Cast{R: self.value(n.R), V: self.value(n.V), Debug: dbg}
	case "call":
		p := &ir.Call{Fn: n.Fn, Args: self.values(n.Args), Debug: dbg}
		if n.R != "" {
			r := self.value(n.R)
			p.Ret = &r
		}
		return p
	case "phi":
		p := &ir.Phi{R: self.value(n.R), Debug: dbg}
		for _, e := range n.Incoming {
			p.Incoming = append(p.Incoming, ir.PhiEdge{Label: e.Label, V: self.value(e.V)})
		}
		return p
	default:
		if self.err == nil {
			self.err = errors.Newf("unknown instruction %q", n.Op)
		}
		return nil
	}
}

func (self *_Decoder) term(n *Node) ir.Terminator {
	dbg := debugInfo(n)
	switch n.Op {
	case "br":
		return &ir.Branch{Target: n.Target, Debug: dbg}
	case "condbr":
		return &ir.CondBranch{Cond: self.value(n.Cond), True: n.True, False: n.False, Debug: dbg}
	case "switch":
		p := &ir.Switch{Selector: self.value(n.Selector), Default: n.Default, Debug: dbg}
		for _, c := range n.Cases {
			p.Cases = append(p.Cases, ir.SwitchCase{V: self.literal(c.V), Target: c.Target})
		}
		return p
	case "ret":
		p := &ir.Return{Debug: dbg}
		if n.V != "" {
			v := self.value(n.V)
			p.V = &v
		}
		return p
	case "unreachable":
		return &ir.Unreachable{Debug: dbg}
	case "indirectbr":
		return &ir.IndirectBranch{Addr: self.value(n.Addr), Targets: n.Targets, Debug: dbg}
	default:
		if self.err == nil {
			self.err = errors.Newf("unknown terminator %q", n.Op)
		}
		return nil
	}
}

func (self *_Decoder) function(f *Function) *ir.Function {
	fn := &ir.Function{
		Name:   f.Name,
		Return: ir.Void,
		Locals: make(map[string]ir.Type, len(f.Locals)),
	}

	/* signature */
	if f.Return != "" {
		fn.Return = self.typ(f.Return)
	}
	for _, p := range f.Params {
		fn.Params = append(fn.Params, ir.Param{Name: p.Name, Type: self.typ(p.Type)})
	}
	for name, t := range f.Locals {
		fn.Locals[name] = self.typ(t)
	}

	/* the entry block defaults to the first block */
	entry := f.Entry
	if entry == "" && len(f.Blocks) != 0 {
		entry = f.Blocks[0].Label
	}

	/* convert every block */
	fn.CFG = ir.NewCFG(entry)
	for i := range f.Blocks {
		b := &f.Blocks[i]
		bb := &ir.BasicBlock{Label: b.Label}

		/* a duplicated label is an input error, not a programming error */
		if fn.CFG.Block(b.Label) != nil {
			self.err = errors.Newf("duplicated block %q", b.Label)
			return fn
		}

		/* instructions and the terminator */
		for j := range b.Ins {
			bb.Ins = append(bb.Ins, self.instr(&b.Ins[j]))
		}
		if b.Term != nil {
			bb.Term = self.term(b.Term)
		}

		/* stop at the first error */
		if self.err != nil {
			self.err = errors.Wrapf(self.err, "block %s", b.Label)
			return fn
		}

		/* add to the graph */
		fn.CFG.AddBlock(bb)
	}
	return fn
}

// Decode converts a parsed document into a module.
func Decode(f *File) (*ir.Module, error) {
	m := new(ir.Module)
	for i := range f.Functions {
		var d _Decoder
		fn := d.function(&f.Functions[i])

		/* check for errors */
		if d.err != nil {
			return nil, errors.Wrapf(d.err, "function %s", f.Functions[i].Name)
		}

		/* add to the module */
		m.Functions = append(m.Functions, fn)
	}
	return m, nil
}

// Parse reads a module from a YAML document.
func Parse(src []byte) (*ir.Module, error) {
	var f File
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, errors.Wrap(err, "irfile")
	} else {
		return Decode(&f)
	}
}

func Load(r io.Reader) (*ir.Module, error) {
	if src, err := io.ReadAll(r); err != nil {
		return nil, errors.Wrap(err, "irfile")
	} else {
		return Parse(src)
	}
}

func LoadFile(path string) (*ir.Module, error) {
	if src, err := os.ReadFile(path); err != nil {
		return nil, errors.Wrap(err, "irfile")
	} else {
		return Parse(src)
	}
}
