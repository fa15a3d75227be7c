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

package sccp

import (
	"fmt"
	"strings"

	"github.com/cloudwego/midend/ir"
)

type EvaluationKind uint8

const (
	UnconditionalJump EvaluationKind = iota
	ConditionalJump
	OnlyTrueBranch
	OnlyFalseBranch
	Switch
	NoSuccessors
)

func (self EvaluationKind) String() string {
	switch self {
	case UnconditionalJump:
		return "UnconditionalJump"
	case ConditionalJump:
		return "ConditionalJump"
	case OnlyTrueBranch:
		return "OnlyTrueBranch"
	case OnlyFalseBranch:
		return "OnlyFalseBranch"
	case Switch:
		return "Switch"
	case NoSuccessors:
		return "NoSuccessors"
	default:
		return fmt.Sprintf("EvaluationKind(%d)", self)
	}
}

// TerminatorEvaluation is the set of edges a terminator may take under the
// current lattice. Target is used by UnconditionalJump, OnlyTrueBranch and
// OnlyFalseBranch, True and False by ConditionalJump, Labels by Switch.
type TerminatorEvaluation struct {
	Kind   EvaluationKind
	Target string
	True   string
	False  string
	Labels []string
}

// Targets lists the labels whose incoming edges become executable.
func (self TerminatorEvaluation) Targets() []string {
	switch self.Kind {
	case UnconditionalJump, OnlyTrueBranch, OnlyFalseBranch:
		return []string{self.Target}
	case ConditionalJump:
		return []string{self.True, self.False}
	case Switch:
		return self.Labels
	default:
		return nil
	}
}

// Single reports whether exactly one successor label remains.
func (self TerminatorEvaluation) Single() (string, bool) {
	switch self.Kind {
	case UnconditionalJump, OnlyTrueBranch, OnlyFalseBranch:
		return self.Target, true
	default:
		return "", false
	}
}

func (self TerminatorEvaluation) String() string {
	return fmt.Sprintf("%s(%s)", self.Kind, strings.Join(self.Targets(), ", "))
}

// Lookup returns the current lattice value of an operand.
type Lookup func(v ir.Value) LatticeValue

// EvaluateConditionalBranch resolves a conditional branch. Anything but a
// known boolean condition keeps both edges.
func EvaluateConditionalBranch(br *ir.CondBranch, lookup Lookup) TerminatorEvaluation {
	var cond LatticeValue

	/* literal conditions are resolved without the lattice */
	if br.Cond.IsLiteral() {
		cond = Constant(br.Cond.Lit)
	} else {
		cond = lookup(br.Cond)
	}

	/* only boolean constants select a single branch */
	if cond.IsConstant() && cond.Value.Type == ir.Bool {
		if cond.Value.BoolValue() {
			return TerminatorEvaluation{Kind: OnlyTrueBranch, Target: br.True}
		} else {
			return TerminatorEvaluation{Kind: OnlyFalseBranch, Target: br.False}
		}
	}

	/* both edges are possible */
	return TerminatorEvaluation{
		Kind:  ConditionalJump,
		True:  br.True,
		False: br.False,
	}
}

// EvaluateSwitch resolves a switch with a constant selector to the first
// matching case, or to the default target when no case matches.
func EvaluateSwitch(sw *ir.Switch, lookup Lookup) TerminatorEvaluation {
	var sel LatticeValue

	/* the selector value */
	if sw.Selector.IsLiteral() {
		sel = Constant(sw.Selector.Lit)
	} else {
		sel = lookup(sw.Selector)
	}

	/* unknown selectors keep every edge */
	if !sel.IsConstant() {
		return TerminatorEvaluation{
			Kind:   Switch,
			Labels: sw.Successors(),
		}
	}

	/* scan the cases in order */
	for _, c := range sw.Cases {
		if c.V == sel.Value {
			return TerminatorEvaluation{Kind: UnconditionalJump, Target: c.Target}
		}
	}

	/* no case matched */
	return TerminatorEvaluation{
		Kind:   UnconditionalJump,
		Target: sw.Default,
	}
}

// EvaluateTerminator computes the possible successors of a terminator.
func EvaluateTerminator(term ir.Terminator, lookup Lookup) TerminatorEvaluation {
	switch t := term.(type) {
	case *ir.Branch:
		return TerminatorEvaluation{Kind: UnconditionalJump, Target: t.Target}
	case *ir.CondBranch:
		return EvaluateConditionalBranch(t, lookup)
	case *ir.Switch:
		return EvaluateSwitch(t, lookup)
	case *ir.Return, *ir.Unreachable:
		return TerminatorEvaluation{Kind: NoSuccessors}
	case *ir.IndirectBranch:
		return TerminatorEvaluation{Kind: Switch, Labels: t.Successors()}
	default:
		panic(fmt.Sprintf("sccp: invalid terminator: %T", term))
	}
}
