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

package dataflow

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"github.com/awslabs/ar-pptflow/internal/funcutil"
	"github.com/awslabs/ar-pptflow/internal/graphutil"
	"golang.org/x/tools/container/intsets"
)

var hr = strings.Repeat("=", 75)

// DumpPoints writes a textual form of the variables of every point and of their partial order relations, followed
// by statistics on the number of relations per variable and by the hierarchy of program points.
// This is for debugging only; the format is not stable.
func DumpPoints(w io.Writer, points *ppt.Map) error {
	out := bufio.NewWriter(w)
	higherStats := map[int]int{}
	lowerStats := map[int]int{}

	fmt.Fprintln(out, hr)
	for _, p := range points.Points() {
		fmt.Fprintln(out, p.Name)
		for _, v := range p.Vars() {
			fmt.Fprintln(out, v.Name)
			fmt.Fprintf(out, "  Declared type: %s\n", v.Type)
			if v.IsDerived() {
				fmt.Fprintf(out, "  Derived: %s\n", v.Derived)
			}
			fmt.Fprintln(out, "  PO higher:")
			dumpRelated(out, v.Above(), v.AboveNonces())
			higherStats[len(v.Above())]++
			fmt.Fprintln(out, "  PO lower:")
			dumpRelated(out, v.Below(), v.BelowNonces())
			lowerStats[len(v.Below())]++
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, hr)
	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintln(out, "  PO higher frequencies:")
	for _, k := range funcutil.SortedKeys(higherStats) {
		fmt.Fprintf(out, "    %d : %d\n", k, higherStats[k])
	}
	fmt.Fprintln(out, "  PO lower frequencies:")
	for _, k := range funcutil.SortedKeys(lowerStats) {
		fmt.Fprintf(out, "    %d : %d\n", k, lowerStats[k])
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, hr)
	dumpHierarchy(out, points)
	fmt.Fprintln(out, hr)
	return out.Flush()
}

func dumpRelated(out io.Writer, vars []*ppt.Variable, nonces []int) {
	for i, u := range vars {
		fmt.Fprintf(out, "    %d: %s in %s\n", nonces[i], u.Name, u.Point().Name)
	}
}

// dumpHierarchy writes the program points from the most general to the most specific, each with the points its
// variables flow up to directly.
func dumpHierarchy(out io.Writer, points *ppt.Map) {
	ids := map[*ppt.ProgramPoint]int{}
	for i, p := range points.Points() {
		ids[p] = i
	}
	g := graphutil.NewDigraph(points.Len())
	parents := make([]intsets.Sparse, points.Len())
	for _, p := range points.Points() {
		for _, v := range p.Vars() {
			for _, u := range v.Above() {
				if id, ok := ids[u.Point()]; ok && id != ids[p] {
					// edges go from general to specific so that the most general points come first
					g.AddEdge(id, ids[p])
					parents[ids[p]].Insert(id)
				}
			}
		}
	}

	fmt.Fprintln(out, "Hierarchy:")
	order, err := graphutil.TopologicalOrder(g)
	if err != nil {
		fmt.Fprintf(out, "  (program points are not ordered: %v)\n", err)
	}
	for _, id := range order {
		p := points.Points()[id]
		fmt.Fprintf(out, "  %s\n", p.Name)
		for _, u := range parents[id].AppendTo(nil) {
			fmt.Fprintf(out, "    below %s\n", points.Points()[u].Name)
		}
	}
}

// DumpFlow writes a textual form of the sample flow of every point that receives samples, then of the invariant
// flow of every point that has one. Only mapped variables are written.
// This is for debugging only; the format is not stable.
func DumpFlow(w io.Writer, points *ppt.Map) error {
	out := bufio.NewWriter(w)
	for _, p := range points.Points() {
		if p.SampleFlow() == nil {
			continue
		}
		fmt.Fprintln(out, p.Name)
		WriteFlow(out, p, p.SampleFlow())
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, hr)
	fmt.Fprintln(out, "Invariant flow:")
	for _, p := range points.Points() {
		if len(p.InvariantFlow()) == 0 {
			continue
		}
		fmt.Fprintln(out, p.Name)
		WriteFlow(out, p, p.InvariantFlow())
		fmt.Fprintln(out)
	}
	return out.Flush()
}

// WriteFlow writes the entries of a flow of all the variables of p, one line per mapped variable
func WriteFlow(out io.Writer, p *ppt.ProgramPoint, flow []ppt.FlowEntry) {
	for _, e := range flow {
		fmt.Fprintf(out, "    To %s:\n", e.Point.Name)
		for k, v := range p.Vars() {
			if target := e.Target(k); target != nil {
				fmt.Fprintf(out, "      %s -> %s\n", v.Name, target.Name)
			}
		}
	}
}
