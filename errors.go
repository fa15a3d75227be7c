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


package midend

import (
	"github.com/cloudwego/midend/ir"
)

// TransformError occurs when a rewrite would break the SSA form or change
// the static type of a value.
type TransformError = ir.TransformError

// VerifyError describes a single finding of ir.Verify.
type VerifyError = ir.VerifyError

const (
	SSAViolation          = ir.SSAViolation
	InvalidTransformation = ir.InvalidTransformation
)

// ErrInvalidIR marks every error returned by Verify.
var ErrInvalidIR = ir.ErrInvalidIR
