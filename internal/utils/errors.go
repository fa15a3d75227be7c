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


package utils

import (
	"fmt"

	"github.com/cloudwego/midend/ir"
)

func ESSAViolation(v ir.Value, note string) ir.TransformError {
	return ir.TransformError{
		Kind:  ir.SSAViolation,
		Value: v,
		Note:  note,
	}
}

func EEmptyPhi(phi *ir.Phi) ir.TransformError {
	return ESSAViolation(phi.R, "phi node has no incoming values")
}

func EInvalidTransform(v ir.Value, repl ir.Value) ir.TransformError {
	return ir.TransformError{
		Kind:  ir.InvalidTransformation,
		Value: v,
		Note:  fmt.Sprintf("replacement %s has a different type", repl.Typed()),
	}
}
