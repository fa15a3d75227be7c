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


package opts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrDefault(t *testing.T) {
	require.Equal(t, 7, parseOrDefault("MIDEND_TEST_UNSET", 7, 1))

	t.Setenv("MIDEND_TEST_VALUE", "0x10")
	require.Equal(t, 16, parseOrDefault("MIDEND_TEST_VALUE", 7, 1))

	t.Setenv("MIDEND_TEST_VALUE", "0")
	require.Panics(t, func() { parseOrDefault("MIDEND_TEST_VALUE", 7, 1) })

	t.Setenv("MIDEND_TEST_VALUE", "many")
	require.Panics(t, func() { parseOrDefault("MIDEND_TEST_VALUE", 7, 1) })
}

func TestParseBoolOrDefault(t *testing.T) {
	require.True(t, parseBoolOrDefault("MIDEND_TEST_UNSET", true))

	t.Setenv("MIDEND_TEST_FLAG", "false")
	require.False(t, parseBoolOrDefault("MIDEND_TEST_FLAG", true))

	t.Setenv("MIDEND_TEST_FLAG", "maybe")
	require.Panics(t, func() { parseBoolOrDefault("MIDEND_TEST_FLAG", true) })
}

func TestOptions(t *testing.T) {
	o := GetDefaultOptions()
	require.Equal(t, MaxIterations, o.MaxIterations)
	require.True(t, o.EnableStatistics)
	require.NotPanics(t, o.Validate)
	require.False(t, o.Log().Enabled())

	o.LivenessMaxIterations = 0
	require.Panics(t, o.Validate)
}
