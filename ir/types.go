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
	"fmt"
	"strconv"
	"strings"
)

type TypeKind uint8

const (
	T_void TypeKind = iota
	T_bool
	T_i8
	T_i16
	T_i32
	T_i64
	T_u8
	T_u16
	T_u32
	T_u64
	T_f32
	T_f64
	T_str
	T_ptr
	T_vector
)

var _TypeNames = [...]string{
	T_void:   "void",
	T_bool:   "bool",
	T_i8:     "i8",
	T_i16:    "i16",
	T_i32:    "i32",
	T_i64:    "i64",
	T_u8:     "u8",
	T_u16:    "u16",
	T_u32:    "u32",
	T_u64:    "u64",
	T_f32:    "f32",
	T_f64:    "f64",
	T_str:    "str",
	T_ptr:    "ptr",
	T_vector: "vector",
}

func (self TypeKind) String() string {
	if int(self) < len(_TypeNames) {
		return _TypeNames[self]
	} else {
		return fmt.Sprintf("TypeKind(%d)", self)
	}
}

// Type is a comparable description of a static IR type. Elem is the
// element kind of pointers and vectors, Len is the vector length.
type Type struct {
	Kind TypeKind
	Elem TypeKind
	Len  uint32
}

var (
	Void = Type{Kind: T_void}
	Bool = Type{Kind: T_bool}
	I8   = Type{Kind: T_i8}
	I16  = Type{Kind: T_i16}
	I32  = Type{Kind: T_i32}
	I64  = Type{Kind: T_i64}
	U8   = Type{Kind: T_u8}
	U16  = Type{Kind: T_u16}
	U32  = Type{Kind: T_u32}
	U64  = Type{Kind: T_u64}
	F32  = Type{Kind: T_f32}
	F64  = Type{Kind: T_f64}
	Str  = Type{Kind: T_str}
)

func PtrTo(elem TypeKind) Type {
	return Type{Kind: T_ptr, Elem: elem}
}

func VectorOf(elem TypeKind, n uint32) Type {
	return Type{Kind: T_vector, Elem: elem, Len: n}
}

func (self Type) IsPtr() bool {
	return self.Kind == T_ptr
}

func (self Type) IsSigned() bool {
	return self.Kind >= T_i8 && self.Kind <= T_i64
}

func (self Type) IsUnsigned() bool {
	return self.Kind >= T_u8 && self.Kind <= T_u64
}

func (self Type) IsInteger() bool {
	return self.IsSigned() || self.IsUnsigned()
}

func (self Type) IsFloat() bool {
	return self.Kind == T_f32 || self.Kind == T_f64
}

// Bits returns the bit width of scalar numeric types, or 0 for anything else.
func (self Type) Bits() uint {
	switch self.Kind {
	case T_i8, T_u8:
		return 8
	case T_i16, T_u16:
		return 16
	case T_i32, T_u32, T_f32:
		return 32
	case T_i64, T_u64, T_f64:
		return 64
	default:
		return 0
	}
}

func (self Type) String() string {
	switch self.Kind {
	case T_ptr:
		return fmt.Sprintf("ptr<%s>", self.Elem)
	case T_vector:
		return fmt.Sprintf("<%d x %s>", self.Len, self.Elem)
	default:
		return self.Kind.String()
	}
}

func parseKind(s string) (TypeKind, bool) {
	for i, v := range _TypeNames {
		if v == s && TypeKind(i) != T_ptr && TypeKind(i) != T_vector {
			return TypeKind(i), true
		}
	}
	return 0, false
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)

	/* pointer types */
	if strings.HasPrefix(s, "ptr<") && strings.HasSuffix(s, ">") {
		if es := s[4 : len(s)-1]; es == "vector" {
			return PtrTo(T_vector), nil
		} else if k, ok := parseKind(es); !ok {
			return Type{}, fmt.Errorf("invalid pointer element type: %q", s)
		} else {
			return PtrTo(k), nil
		}
	}

	/* vector types */
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		fv := strings.Fields(s[1 : len(s)-1])
		if len(fv) != 3 || fv[1] != "x" {
			return Type{}, fmt.Errorf("invalid vector type: %q", s)
		}
		n, err := strconv.ParseUint(fv[0], 10, 32)
		if err != nil {
			return Type{}, fmt.Errorf("invalid vector length: %q", s)
		}
		if k, ok := parseKind(fv[2]); !ok {
			return Type{}, fmt.Errorf("invalid vector element type: %q", s)
		} else {
			return VectorOf(k, uint32(n)), nil
		}
	}

	/* scalar types */
	if k, ok := parseKind(s); ok {
		return Type{Kind: k}, nil
	} else {
		return Type{}, fmt.Errorf("unknown type: %q", s)
	}
}
