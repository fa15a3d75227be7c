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

func ConstInt(t Type, v int64) Value {
	if t.IsUnsigned() {
		return Lit(UintLit(t, uint64(v)))
	} else {
		return Lit(IntLit(t, v))
	}
}

func ConstFloat(t Type, v float64) Value {
	return Lit(FloatLit(t, v))
}

func ConstBool(v bool) Value {
	return Lit(BoolLit(v))
}

// Builder constructs a function block by block. Instructions are appended to
// the current block, the first block created becomes the entry block.
type Builder struct {
	fn   *Function
	bb   *BasicBlock
	next uint32
}

func NewBuilder(name string, ret Type, params ...Param) *Builder {
	return &Builder{
		next: 1,
		fn: &Function{
			Name:   name,
			Params: params,
			Return: ret,
			CFG:    NewCFG(""),
			Locals: make(map[string]Type),
		},
	}
}

func (self *Builder) Function() *Function {
	return self.fn
}

// Param returns the value referencing parameter name.
func (self *Builder) Param(name string) Value {
	for _, p := range self.fn.Params {
		if p.Name == name {
			return Local(p.Name, p.Type)
		}
	}
	panic("ir: no such parameter: " + name)
}

// Block switches to the block labeled label, creating it if needed.
func (self *Builder) Block(label string) *Builder {
	if bb := self.fn.CFG.Block(label); bb != nil {
		self.bb = bb
		return self
	}

	/* the first block is the entry */
	if self.fn.CFG.Entry == "" {
		self.fn.CFG.Entry = label
	}

	/* create a new block */
	self.bb = &BasicBlock{Label: label}
	self.fn.CFG.AddBlock(self.bb)
	return self
}

// Temp allocates a fresh temporary of type t.
func (self *Builder) Temp(t Type) Value {
	id := self.next
	self.next++
	return Temp(id, t)
}

func (self *Builder) Emit(ins Instr) {
	if self.bb == nil {
		panic("ir: no current block")
	}
	self.bb.Ins = append(self.bb.Ins, ins)
}

func (self *Builder) terminate(term Terminator) {
	if self.bb == nil {
		panic("ir: no current block")
	}
	self.bb.Term = term
}

func (self *Builder) Alloca(elem Type) Value {
	r := self.Temp(PtrTo(elem.Kind))
	self.Emit(&Alloca{R: r, Elem: elem})
	return r
}

func (self *Builder) Store(dest Value, src Value) {
	self.Emit(&Store{Dest: dest, Src: src})
}

func (self *Builder) Load(t Type, src Value) Value {
	r := self.Temp(t)
	self.Emit(&Load{R: r, Src: src})
	return r
}

func (self *Builder) Binary(op BinaryOp, x Value, y Value) Value {
	t := x.Type
	if op.IsComparison() {
		t = Bool
	}

	/* emit the expression */
	r := self.Temp(t)
	self.Emit(&Binary{R: r, Op: op, X: x, Y: y})
	return r
}

func (self *Builder) Unary(op UnaryOp, v Value) Value {
	r := self.Temp(v.Type)
	self.Emit(&Unary{R: r, Op: op, V: v})
	return r
}

// Call emits a call, the returned value is meaningless when ret is Void.
func (self *Builder) Call(fn string, ret Type, args ...Value) Value {
	if ret == Void {
		self.Emit(&Call{Fn: fn, Args: args})
		return Value{}
	}

	/* calls with a return value */
	r := self.Temp(ret)
	self.Emit(&Call{Fn: fn, Ret: &r, Args: args})
	return r
}

func (self *Builder) GEP(t Type, base Value, index ...Value) Value {
	r := self.Temp(t)
	self.Emit(&GetElementPtr{R: r, Base: base, Index: index})
	return r
}

func (self *Builder) Cast(v Value, to Type) Value {
	r := self.Temp(to)
	self.Emit(&Cast{R: r, V: v})
	return r
}

func (self *Builder) Phi(t Type, in ...PhiEdge) Value {
	r := self.Temp(t)
	self.Emit(&Phi{R: r, Incoming: in})
	return r
}

func (self *Builder) Vector(op VectorOp, t Type, args ...Value) Value {
	r := self.Temp(t)
	self.Emit(&Vector{R: r, Op: op, Args: args})
	return r
}

func (self *Builder) Br(target string) {
	self.terminate(&Branch{Target: target})
}

func (self *Builder) CondBr(cond Value, t string, f string) {
	self.terminate(&CondBranch{Cond: cond, True: t, False: f})
}

func (self *Builder) Switch(sel Value, def string, cases ...SwitchCase) {
	self.terminate(&Switch{Selector: sel, Cases: cases, Default: def})
}

func (self *Builder) Ret(v Value) {
	self.terminate(&Return{V: &v})
}

func (self *Builder) RetVoid() {
	self.terminate(&Return{})
}

func (self *Builder) Unreachable() {
	self.terminate(&Unreachable{})
}

func (self *Builder) IndirectBr(addr Value, targets ...string) {
	self.terminate(&IndirectBranch{Addr: addr, Targets: targets})
}
