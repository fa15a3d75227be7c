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

package debug

import (
	"fmt"
)

// A Reason names why a piece of code was conservatively preserved.
type Reason uint8

const (
	UnknownCallPurity Reason = iota + 1
	EscapedPointer
	AddressTakenPointer
	LivenessNotConverged
	IterationLimit
)

func (self Reason) String() string {
	switch self {
	case UnknownCallPurity:
		return "unknown call purity"
	case EscapedPointer:
		return "escaped pointer"
	case AddressTakenPointer:
		return "address-taken pointer"
	case LivenessNotConverged:
		return "liveness did not converge"
	case IterationLimit:
		return "iteration limit reached"
	default:
		return fmt.Sprintf("Reason(%d)", self)
	}
}

func (self Reason) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// A Warning records a single conservative preservation. Block and Instr are
// empty for warnings about the whole function.
type Warning struct {
	Function string `yaml:"function"`
	Block    string `yaml:"block,omitempty"`
	Instr    string `yaml:"instr,omitempty"`
	Reason   Reason `yaml:"reason"`
}

func (self Warning) String() string {
	switch {
	case self.Instr != "":
		return fmt.Sprintf("%s: %s: %s: %s", self.Function, self.Block, self.Instr, self.Reason)
	case self.Block != "":
		return fmt.Sprintf("%s: %s: %s", self.Function, self.Block, self.Reason)
	default:
		return fmt.Sprintf("%s: %s", self.Function, self.Reason)
	}
}

// A Stats records statistics about a single optimization run.
type Stats struct {
	InstructionsRemoved int       `yaml:"instructions_removed"`
	BlocksRemoved       int       `yaml:"blocks_removed"`
	Iterations          int       `yaml:"iterations"`
	ConstantsPropagated int       `yaml:"constants_propagated"`
	PhisSimplified      int       `yaml:"phis_simplified"`
	BlocksUnreachable   int       `yaml:"blocks_unreachable"`
	BranchesFolded      int       `yaml:"branches_folded"`
	Warnings            []Warning `yaml:"warnings,omitempty"`
}

// Merge adds the counters of other to self and appends its warnings.
func (self *Stats) Merge(other Stats) {
	self.InstructionsRemoved += other.InstructionsRemoved
	self.BlocksRemoved += other.BlocksRemoved
	self.Iterations += other.Iterations
	self.ConstantsPropagated += other.ConstantsPropagated
	self.PhisSimplified += other.PhisSimplified
	self.BlocksUnreachable += other.BlocksUnreachable
	self.BranchesFolded += other.BranchesFolded
	self.Warnings = append(self.Warnings, other.Warnings...)
}

// Changed reports whether the run modified the IR.
func (self Stats) Changed() bool {
	return self.InstructionsRemoved != 0 ||
		self.BlocksRemoved != 0 ||
		self.ConstantsPropagated != 0 ||
		self.PhisSimplified != 0 ||
		self.BranchesFolded != 0
}
