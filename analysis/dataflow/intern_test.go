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
	"testing"

	"github.com/awslabs/ar-pptflow/analysis/ppt"
)

func TestInternerSharesTables(t *testing.T) {
	in := NewInterner()
	slots := []int{1, ppt.Unmapped, 2}
	t1 := in.Intern(slots)
	slots[0] = 5
	t2 := in.Intern([]int{1, ppt.Unmapped, 2})
	if t1 != t2 {
		t.Errorf("identical tables were not shared")
	}
	if t1.At(0) != 1 {
		t.Errorf("interned table aliases its input")
	}
	if t3 := in.Intern(slots); t3 == t1 {
		t.Errorf("distinct tables were shared")
	}
	// the key of [1, 2] must not collide with the key of [12]
	if in.Intern([]int{1, 2}) == in.Intern([]int{12}) {
		t.Errorf("tables of different lengths were shared")
	}
	if in.Intern(nil) != in.Intern([]int{}) {
		t.Errorf("empty tables were not shared")
	}
	if in.Len() != 5 {
		t.Errorf("expected 5 distinct tables, got %d", in.Len())
	}
}

func TestFlowsShareTables(t *testing.T) {
	a, d := buildTestPoints(t, "stack.yaml")
	exit := mustPoint(t, d.Points, pushExit)
	n := a.Interner.Len()

	flow, err := a.ComputeFlow(exit, exit.Vars(), true, true)
	if err != nil {
		t.Fatal(err)
	}
	cached := exit.SampleFlow()
	if len(flow) != len(cached) {
		t.Fatalf("recomputed flow has %d entries, cached flow has %d", len(flow), len(cached))
	}
	for i := range flow {
		if flow[i].Remap != cached[i].Remap {
			t.Errorf("entry %d: recomputed table %s is not the cached one", i, flow[i].Remap)
		}
	}
	if a.Interner.Len() != n {
		t.Errorf("recomputing a flow created %d new tables", a.Interner.Len()-n)
	}
}
