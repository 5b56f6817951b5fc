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

// Package graphutil contains a small directed graph over dense integer node ids, with adapters to the graph
// libraries used for cycle detection (yourbasic/graph) and topological ordering (gonum).
package graphutil

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Digraph is a directed graph whose nodes are the integers 0..Order()-1. Parallel edges are kept once.
// It implements the graph.Iterator interface of github.com/yourbasic/graph.
type Digraph struct {
	succ []map[int]bool
}

// NewDigraph returns a graph with n nodes and no edges
func NewDigraph(n int) *Digraph {
	succ := make([]map[int]bool, n)
	for i := range succ {
		succ[i] = map[int]bool{}
	}
	return &Digraph{succ: succ}
}

// AddEdge adds the edge u -> v
func (g *Digraph) AddEdge(u int, v int) {
	g.succ[u][v] = true
}

// HasEdge returns true if the edge u -> v is in the graph
func (g *Digraph) HasEdge(u int, v int) bool {
	return g.succ[u][v]
}

// Successors returns the successors of u in increasing order
func (g *Digraph) Successors(u int) []int {
	s := make([]int, 0, len(g.succ[u]))
	for v := range g.succ[u] {
		s = append(s, v)
	}
	sort.Ints(s)
	return s
}

// Order implements the graph.Iterator interface
func (g *Digraph) Order() int {
	return len(g.succ)
}

// Visit implements the graph.Iterator interface. Successors are visited in increasing order.
func (g *Digraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range g.Successors(v) {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// toGonum returns the graph as a gonum directed graph. Self loops are dropped since gonum's simple graphs do not
// support them.
func (g *Digraph) toGonum() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for u := range g.succ {
		dg.AddNode(simple.Node(int64(u)))
	}
	for u := range g.succ {
		for v := range g.succ[u] {
			if u != v {
				dg.SetEdge(dg.NewEdge(simple.Node(int64(u)), simple.Node(int64(v))))
			}
		}
	}
	return dg
}
