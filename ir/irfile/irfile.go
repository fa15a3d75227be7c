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

// Package irfile reads and writes IR modules as YAML documents.
//
// Operands are written as "value:type" strings, for example "%t1:i32",
// "%x:ptr<i32>", "@g:ptr<u8>", "%arg0:i64", "10:i32", "true:bool" or
// "\"hi\":str". A local whose name is "t" followed by digits is always read
// back as a temporary.
//
//	functions:
//	  - name: main
//	    return: i32
//	    params: [{name: p, type: ptr<i32>}]
//	    blocks:
//	      - label: entry
//	        ins:
//	          - {op: add, r: "%t1:i32", x: "10:i32", y: "20:i32"}
//	          - {op: store, dest: "%p:ptr<i32>", src: "%t1:i32"}
//	        term: {op: ret, v: "42:i32"}
package irfile

// File is the document root.
type File struct {
	Functions []Function `yaml:"functions"`
}

type Function struct {
	Name   string            `yaml:"name"`
	Return string            `yaml:"return,omitempty"`
	Params []Param           `yaml:"params,omitempty"`
	Locals map[string]string `yaml:"locals,omitempty"`
	Entry  string            `yaml:"entry,omitempty"`
	Blocks []Block           `yaml:"blocks"`
}

type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Block struct {
	Label string `yaml:"label"`
	Ins   []Node `yaml:"ins,omitempty"`
	Term  *Node  `yaml:"term"`
}

type Edge struct {
	Label string `yaml:"label"`
	V     string `yaml:"v"`
}

type Case struct {
	V      string `yaml:"v"`
	Target string `yaml:"target"`
}

// Node is an instruction or a terminator, Op selects which fields are used.
//
//	alloca       r, elem
//	store        dest, src
//	load         r, src
//	add .. ge    r, x, y
//	neg, not     r, v
//	call         fn, args, r (optional)
//	gep          r, base, index
//	cast         r, v
//	phi          r, incoming
//	vector.*     r, args
//	br           target
//	condbr       cond, then, else
//	switch       selector, cases, default
//	ret          v (optional)
//	unreachable
//	indirectbr   addr, targets
type Node struct {
	Op       string   `yaml:"op"`
	R        string   `yaml:"r,omitempty"`
	X        string   `yaml:"x,omitempty"`
	Y        string   `yaml:"y,omitempty"`
	V        string   `yaml:"v,omitempty"`
	Src      string   `yaml:"src,omitempty"`
	Dest     string   `yaml:"dest,omitempty"`
	Elem     string   `yaml:"elem,omitempty"`
	Fn       string   `yaml:"fn,omitempty"`
	Args     []string `yaml:"args,omitempty"`
	Base     string   `yaml:"base,omitempty"`
	Index    []string `yaml:"index,omitempty"`
	Incoming []Edge   `yaml:"incoming,omitempty"`
	Target   string   `yaml:"target,omitempty"`
	Cond     string   `yaml:"cond,omitempty"`
	True     string   `yaml:"then,omitempty"`
	False    string   `yaml:"else,omitempty"`
	Selector string   `yaml:"selector,omitempty"`
	Cases    []Case   `yaml:"cases,omitempty"`
	Default  string   `yaml:"default,omitempty"`
	Addr     string   `yaml:"addr,omitempty"`
	Targets  []string `yaml:"targets,omitempty"`
	File     string   `yaml:"file,omitempty"`
	Line     int      `yaml:"line,omitempty"`
	Col      int      `yaml:"col,omitempty"`
	Scope    string   `yaml:"scope,omitempty"`
}
