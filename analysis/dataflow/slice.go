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
)

// BindSlicePartialOrder fills the partial order of a newly created slice from the invariant flow of its parent: the
// slice flows to every adjacent point where all of its variables are mapped. The slice also flows to each
// conditional point split from its parent, through the identity mapping.
//
// The invariant flow of the parent must have been computed. Conditional points have no invariant flow of their own
// and only get the conditional adjacencies (of which they have none).
func (a *Analyzer) BindSlicePartialOrder(slice *ppt.Slice) error {
	parent := slice.Parent
	if parent.Parent == nil && !parent.FlowsComputed() {
		return preconditionf(parent, "", "flows must be computed before binding slice %s", slice)
	}

nextEntry:
	for _, e := range parent.InvariantFlow() {
		adj := make([]*ppt.Variable, slice.Arity())
		for j, v := range slice.Vars {
			adj[j] = e.Target(v.Index())
			if adj[j] == nil {
				a.Logger.Tracef("%s does not flow to %s: %s is unmapped", slice, e.Point.Name, v.Name)
				continue nextEntry
			}
		}
		slice.AddToPO(e.Point, adj)
	}

	for _, cond := range parent.Conditionals {
		adj := make([]*ppt.Variable, slice.Arity())
		for j, v := range slice.Vars {
			i := v.Index()
			if i >= cond.NumVars() || cond.Var(i).Name != v.Name {
				return preconditionf(cond, v.Name, "conditional point does not have the layout of its parent at slot %d",
					i)
			}
			adj[j] = cond.Var(i)
		}
		slice.AddToPO(cond, adj)
	}
	return nil
}
