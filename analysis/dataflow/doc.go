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

/*
Package dataflow builds the partial order among the variables of related program points, and uses it to compute
where samples and invariants of each program point flow to.

A variable flows up to a more general variable: a variable of a method entry flows up to the variable of the same name
of the OBJECT point of the class, an orig(x) variable of a combined exit point flows up to x at the entry, and so on.
Edges created together share a nonce, which lets the flow computation move groups of variables that went through
the same relation as one step.

Build an [Analyzer] and run [Analyzer.BuildRelations] once on a fully declared point map:

	analyzer := dataflow.NewAnalyzer(cfg, logger)
	if err := analyzer.BuildRelations(points); err != nil {
		// the declarations are inconsistent
	}

After that, every point has two cached flows: [ppt.ProgramPoint.SampleFlow], the points a sample recorded at a
combined exit flows to (every point above, most general first), and [ppt.ProgramPoint.InvariantFlow], the points one
step below that invariants flow to. A flow entry maps each variable slot of the source point to a variable slot of
the target point, or to [ppt.Unmapped].

Slices created by invariant instantiation get their own partial order through [Analyzer.BindSlicePartialOrder].

All errors caused by an inconsistent declaration set or partial order are [*PreconditionError].
*/
package dataflow
