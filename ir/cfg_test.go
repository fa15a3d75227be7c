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
	"testing"

	"github.com/stretchr/testify/require"
)

// diamond builds
//
//	    entry
//	   /     \
//	  then   else
//	   \     /
//	    exit
func diamond() *Function {
	b := NewBuilder("diamond", I32, Param{Name: "c", Type: Bool})
	b.Block("entry").CondBr(b.Param("c"), "then", "else")
	b.Block("then").Br("exit")
	b.Block("else").Br("exit")
	b.Block("exit")
	x := b.Phi(I32, PhiEdge{Label: "then", V: ConstInt(I32, 1)}, PhiEdge{Label: "else", V: ConstInt(I32, 2)})
	b.Ret(x)
	return b.Function()
}

func TestCFG_Diamond(t *testing.T) {
	g := diamond().CFG
	require.Equal(t, 4, g.Len())
	require.Equal(t, 0, g.EntryIndex())
	require.Equal(t, []int{1, 2}, g.Successors(0))
	require.Equal(t, []int{3}, g.Successors(1))
	require.Nil(t, g.Successors(3))
	require.Equal(t, [][]int{nil, {0}, {0}, {1, 2}}, g.Predecessors())
	require.Equal(t, map[string]struct{}{"then": {}, "else": {}}, g.PredecessorLabels(3))
}

func TestCFG_PostOrder(t *testing.T) {
	g := diamond().CFG
	require.Equal(t, []int{3, 1, 2, 0}, g.PostOrder().Indices())
	require.Equal(t, []int{0, 2, 1, 3}, g.PostOrder().Reversed())
}

func TestCFG_Dominators(t *testing.T) {
	dt := diamond().CFG.Dominators()
	require.True(t, dt.Dominates(0, 3))
	require.True(t, dt.Dominates(0, 1))
	require.True(t, dt.Dominates(3, 3))
	require.False(t, dt.Dominates(1, 3))
	require.False(t, dt.Dominates(2, 3))
}

func TestCFG_RemoveBlock(t *testing.T) {
	g := diamond().CFG
	g.RemoveBlock(2)
	require.Equal(t, 3, g.Len())
	require.Nil(t, g.Blocks[2])
	require.Nil(t, g.Block("else"))
	_, ok := g.Index("else")
	require.False(t, ok)

	/* other indices are stable */
	i, ok := g.Index("exit")
	require.True(t, ok)
	require.Equal(t, 3, i)
	require.Equal(t, []int{1}, g.Successors(0))
	require.Equal(t, []int{3, 1, 0}, g.PostOrder().Indices())
}

func TestCFG_DuplicatedLabel(t *testing.T) {
	g := NewCFG("a")
	g.AddBlock(&BasicBlock{Label: "a", Term: &Unreachable{}})
	require.Panics(t, func() { g.AddBlock(&BasicBlock{Label: "a"}) })
}

func TestCFG_Graph(t *testing.T) {
	b := NewBuilder("loop", Void)
	b.Block("entry").Br("body")
	b.Block("body").CondBr(ConstBool(true), "body", "exit")
	b.Block("exit").RetVoid()
	g := b.Function().CFG.Graph()
	require.Equal(t, 3, g.Nodes().Len())
	require.True(t, g.HasEdgeFromTo(0, 1))
	require.True(t, g.HasEdgeFromTo(1, 2))
	require.False(t, g.HasEdgeFromTo(1, 1))
}
