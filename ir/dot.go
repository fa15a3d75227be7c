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
	"html"
	"io"
	"sort"
	"strings"

	"github.com/oleiade/lane"
)

func dotrows(ss string, w *int) []string {
	var ret []string
	for _, s := range strings.Split(ss, "\n") {
		if len(s) > *w {
			*w = len(s)
		}
		ret = append(ret, fmt.Sprintf("<tr><td align=\"left\">%s</td></tr>\n", strings.ReplaceAll(html.EscapeString(s), " ", "&nbsp;")))
	}
	return ret
}

func dotblock(g *CFG, i int, pred []int) string {
	var w int
	var ins []string
	var term []string

	/* instructions and terminator */
	bb := g.Blocks[i]
	for _, v := range bb.Ins {
		ins = append(ins, dotrows(v.String(), &w)...)
	}
	if bb.Term != nil {
		term = dotrows(bb.Term.String(), &w)
	}

	/* predecessor list */
	pl := make([]string, 0, len(pred))
	for _, p := range pred {
		pl = append(pl, g.Blocks[p].Label)
	}

	/* block metadata */
	sort.Strings(pl)
	meta := dotrows(fmt.Sprintf("# pred = {%s}", strings.Join(pl, ", ")), &w)

	/* build the table */
	buf := []string{
		"<table border=\"1\" cellborder=\"0\" cellspacing=\"0\">\n",
		fmt.Sprintf("<tr><td width=\"%d\">%s</td></tr>\n", w*10+5, html.EscapeString(bb.Label)),
		"<hr/>\n",
	}

	/* add every section */
	buf = append(buf, meta...)
	if len(ins) != 0 {
		buf = append(buf, "<hr/>\n")
		buf = append(buf, ins...)
	}
	if len(term) != 0 {
		buf = append(buf, "<hr/>\n")
		buf = append(buf, term...)
	}

	/* close the table */
	buf = append(buf, "</table>")
	return strings.Join(buf, "")
}

func dotedges(term Terminator) [][2]string {
	switch t := term.(type) {
	case *Branch:
		return [][2]string{{t.Target, "goto"}}
	case *CondBranch:
		return [][2]string{{t.True, "true"}, {t.False, "false"}}
	case *Switch:
		ret := make([][2]string, 0, len(t.Cases)+1)
		for _, c := range t.Cases {
			ret = append(ret, [2]string{c.Target, c.V.String()})
		}
		return append(ret, [2]string{t.Default, "otherwise"})
	case *IndirectBranch:
		ret := make([][2]string, 0, len(t.Targets))
		for _, ln := range t.Targets {
			ret = append(ret, [2]string{ln, "indirect"})
		}
		return ret
	default:
		return nil
	}
}

// WriteDot renders the blocks reachable from the entry of fn as a Graphviz
// digraph.
func WriteDot(w io.Writer, fn *Function) error {
	g := fn.CFG
	q := lane.NewQueue()
	n := make(map[int]bool)
	e := make(map[[2]int]bool)
	pred := g.Predecessors()

	/* graph header */
	buf := []string{
		fmt.Sprintf("digraph %q {", fn.Name),
		`    xdotversion = "15"`,
		`    graph [ fontname = "Fira Code" ]`,
		`    node [ fontname = "Fira Code" fontsize="16" shape = "plaintext" ]`,
		`    edge [ fontname = "Fira Code" ]`,
		`    START [ shape = "circle" ]`,
	}

	/* breadth-first from the entry block */
	if r := g.EntryIndex(); r >= 0 {
		n[r] = true
		q.Enqueue(r)
		buf = append(buf, fmt.Sprintf(`    START -> bb_%d`, r))
	}

	/* render every block */
	for !q.Empty() {
		p := q.Dequeue().(int)
		bb := g.Blocks[p]
		buf = append(buf, fmt.Sprintf(`    bb_%d [ label = < %s > ]`, p, dotblock(g, p, pred[p])))

		/* terminator-less blocks have no edges */
		if bb.Term == nil {
			continue
		}

		/* add the outgoing edges */
		for _, te := range dotedges(bb.Term) {
			j, ok := g.Index(te[0])
			if !ok {
				continue
			}
			if !n[j] {
				n[j] = true
				q.Enqueue(j)
			}
			if key := [2]int{p, j}; !e[key] {
				e[key] = true
				buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d [ label = %q ]`, p, j, te[1]))
			}
		}
	}

	/* write the graph */
	buf = append(buf, "}", "")
	_, err := io.WriteString(w, strings.Join(buf, "\n"))
	return err
}
