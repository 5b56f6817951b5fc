// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graphutil

import (
	"sort"

	"github.com/yourbasic/graph"
)

// IsAcyclic returns true if the graph has no cycle, self loops included
func IsAcyclic(g *Digraph) bool {
	for v := range g.succ {
		if g.succ[v][v] {
			return false
		}
	}
	return graph.Acyclic(g)
}

// FindCycle returns the nodes of one cycle of the graph in increasing order, or nil if the graph is acyclic.
// A self loop is reported as a cycle of one node. Among all the strongly connected components that contain a cycle,
// the one with the smallest node is returned.
func FindCycle(g *Digraph) []int {
	var best []int
	for _, component := range graph.StrongComponents(g) {
		if len(component) == 1 && !g.HasEdge(component[0], component[0]) {
			continue
		}
		c := append([]int(nil), component...)
		sort.Ints(c)
		if best == nil || c[0] < best[0] {
			best = c
		}
	}
	return best
}
