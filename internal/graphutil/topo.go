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

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// TopologicalOrder returns the nodes of the graph such that u comes before v for every edge u -> v, ignoring self
// loops. Ties are broken by node id, so the order is deterministic.
// If the graph has a cycle, the nodes that can be ordered are returned with a topo.Unorderable error.
func TopologicalOrder(g *Digraph) ([]int, error) {
	sorted, err := topo.SortStabilized(g.toGonum(), byID)
	order := make([]int, 0, len(sorted))
	for _, n := range sorted {
		if n != nil {
			order = append(order, int(n.ID()))
		}
	}
	return order, err
}

func byID(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}
