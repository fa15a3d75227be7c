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

	"github.com/cockroachdb/errors"
)

// ErrInvalidIR marks every error reported by Verify.
var ErrInvalidIR = errors.New("invalid IR")

type ErrorKind uint8

const (
	SSAViolation ErrorKind = iota + 1
	InvalidTransformation
)

func (self ErrorKind) String() string {
	switch self {
	case SSAViolation:
		return "SSAViolation"
	case InvalidTransformation:
		return "InvalidTransformation"
	default:
		return fmt.Sprintf("ErrorKind(%d)", self)
	}
}

// TransformError occurs when a rewrite cannot be applied without breaking
// the SSA form or the static types of the IR.
type TransformError struct {
	Kind  ErrorKind
	Value Value
	Note  string
}

func (self TransformError) Error() string {
	return fmt.Sprintf("%s(%s): %s", self.Kind, self.Value.Typed(), self.Note)
}

// VerifyError describes a single structural finding of Verify.
type VerifyError struct {
	Func  string
	Block string
	Note  string
}

func (self VerifyError) Error() string {
	if self.Block == "" {
		return fmt.Sprintf("func %s: %s", self.Func, self.Note)
	} else {
		return fmt.Sprintf("func %s, block %s: %s", self.Func, self.Block, self.Note)
	}
}

func everify(fn string, bb string, format string, args ...interface{}) error {
	return errors.Mark(VerifyError{
		Func:  fn,
		Block: bb,
		Note:  fmt.Sprintf(format, args...),
	}, ErrInvalidIR)
}
