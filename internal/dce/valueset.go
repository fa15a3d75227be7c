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


package dce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/midend/ir"
)

type (
	ValueSet map[ir.Value]struct{}
)

func (self ValueSet) add(v ir.Value) bool {
	if _, ok := self[v]; ok {
		return false
	} else {
		self[v] = struct{}{}
		return true
	}
}

func (self ValueSet) contains(v ir.Value) bool {
	_, ok := self[v]
	return ok
}

func (self ValueSet) clone() (vs ValueSet) {
	vs = make(ValueSet, len(self))
	for v := range self {
		vs.add(v)
	}
	return
}

func (self ValueSet) union(other ValueSet) ValueSet {
	for v := range other {
		self.add(v)
	}
	return self
}

func (self ValueSet) equals(other ValueSet) bool {
	if len(self) != len(other) {
		return false
	}
	for v := range self {
		if !other.contains(v) {
			return false
		}
	}
	return true
}

func (self ValueSet) String() string {
	nb := len(self)
	rs := make([]string, 0, nb)

	/* convert every value */
	for v := range self {
		rs = append(rs, v.String())
	}

	/* sort by name */
	sort.Strings(rs)
	return fmt.Sprintf(
		"{%s}",
		strings.Join(rs, ", "),
	)
}
