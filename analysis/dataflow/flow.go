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
	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"github.com/awslabs/ar-pptflow/internal/funcutil"
)

// varAndSource is a variable at the head of a flow path, with the slot of the start variable that flows to it
type varAndSource struct {
	v      *ppt.Variable
	source int
}

// A pathHead is a set of variables at the head of paths that went through the same relations. All the variables of
// a head are at the same program point.
type pathHead []varAndSource

type flowKey struct {
	point *ppt.ProgramPoint
	remap *ppt.RemapTable
}

// ComputeFlow computes where the variables vars of start flow to, going up (goHigher) or down the partial order.
// If fullClosure is false, only the points one step away are reached; otherwise every reachable point is.
//
// The result contains one entry per distinct (point, remapping) pair reached. In an entry, Remap.At(i) is the index
// in the entry's point of the variable that vars[i] flows to, or ppt.Unmapped. The entries are ordered from the
// furthest point to the closest, and the last entry is start itself with the identity mapping. If vars is empty,
// the result is the single entry (start, []).
func (a *Analyzer) ComputeFlow(start *ppt.ProgramPoint, vars []*ppt.Variable, fullClosure bool,
	goHigher bool) ([]ppt.FlowEntry, error) {
	if len(vars) == 0 {
		return []ppt.FlowEntry{{Point: start, Remap: a.Interner.Intern(nil)}}, nil
	}

	first := make(pathHead, len(vars))
	for i, v := range vars {
		if v.Point() != start {
			return nil, preconditionf(start, v.Name, "start variable belongs to %v", v.Point())
		}
		first[i] = varAndSource{v: v, source: i}
	}

	var flow []ppt.FlowEntry
	seen := map[flowKey]bool{}
	frontier := []pathHead{first}
	for depth := 0; len(frontier) > 0; depth++ {
		var next []pathHead
		for _, head := range frontier {
			entry, err := a.headEntry(start, head, len(vars))
			if err != nil {
				return nil, err
			}
			key := flowKey{entry.Point, entry.Remap}
			if seen[key] {
				// the same variables were reached through another path; so are all the points above them
				continue
			}
			seen[key] = true
			flow = append(flow, entry)
			if fullClosure || depth == 0 {
				next = append(next, extendHead(head, goHigher)...)
			}
		}
		frontier = next
	}

	funcutil.Reverse(flow)
	return flow, nil
}

// headEntry returns the flow entry from the start variables to the variables of head
func (a *Analyzer) headEntry(start *ppt.ProgramPoint, head pathHead, n int) (ppt.FlowEntry, error) {
	point := head[0].v.Point()
	slots := make([]int, n)
	for i := range slots {
		slots[i] = ppt.Unmapped
	}
	for _, vs := range head {
		if vs.v.Point() != point {
			return ppt.FlowEntry{}, preconditionf(start, vs.v.Name,
				"path head spans %s and %v", point.Name, vs.v.Point())
		}
		if slots[vs.source] != ppt.Unmapped {
			return ppt.FlowEntry{}, preconditionf(start, vs.v.Name,
				"slot %d flows to both %s and %s in %s", vs.source, point.Var(slots[vs.source]).Name, vs.v.Name,
				point.Name)
		}
		slots[vs.source] = vs.v.Index()
	}
	return ppt.FlowEntry{Point: point, Remap: a.Interner.Intern(slots)}, nil
}

// extendHead returns the heads one step further than head. The variables related to the head's variables are
// grouped by the nonce of the relation, one new head per nonce, in the order the nonces are first encountered.
func extendHead(head pathHead, goHigher bool) []pathHead {
	type step struct {
		nonce int
		vs    varAndSource
	}
	var steps []step
	for _, vs := range head {
		related, nonces := vs.v.Related(goHigher)
		for i, u := range related {
			steps = append(steps, step{nonce: nonces[i], vs: varAndSource{v: u, source: vs.source}})
		}
	}
	order, groups := funcutil.GroupBy(steps, func(s step) int { return s.nonce })
	heads := make([]pathHead, len(order))
	for i, nonce := range order {
		heads[i] = funcutil.Map(groups[nonce], func(s step) varAndSource { return s.vs })
	}
	return heads
}
