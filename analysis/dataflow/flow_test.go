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
	"github.com/google/go-cmp/cmp"
)

// chain returns three points A, B and C with A.x below B.x below C.x
func chain() (*ppt.ProgramPoint, *ppt.ProgramPoint, *ppt.ProgramPoint) {
	a := newPoint("A:::OBJECT", "x", "y")
	b := newPoint("B:::OBJECT", "x")
	c := newPoint("C:::OBJECT", "x")
	ppt.AddHigher(a.Var(0), b.Var(0), 0)
	ppt.AddHigher(b.Var(0), c.Var(0), 1)
	return a, b, c
}

func TestComputeFlowEmptyStart(t *testing.T) {
	an := newTestAnalyzer(t)
	a, _, _ := chain()
	for _, fullClosure := range []bool{false, true} {
		for _, goHigher := range []bool{false, true} {
			flow, err := an.ComputeFlow(a, nil, fullClosure, goHigher)
			if err != nil {
				t.Fatal(err)
			}
			if len(flow) != 1 || flow[0].Point != a || flow[0].Remap.Len() != 0 {
				t.Errorf("expected the single empty entry, got %v", flow)
			}
		}
	}
}

func TestComputeFlowDepth(t *testing.T) {
	an := newTestAnalyzer(t)
	a, b, c := chain()
	tests := []struct {
		name        string
		start       *ppt.ProgramPoint
		fullClosure bool
		goHigher    bool
		expected    []string
	}{
		{"one hop higher", a, false, true, []string{"B:::OBJECT", "A:::OBJECT"}},
		{"closure higher", a, true, true, []string{"C:::OBJECT", "B:::OBJECT", "A:::OBJECT"}},
		{"one hop lower", c, false, false, []string{"B:::OBJECT", "C:::OBJECT"}},
		{"closure lower", c, true, false, []string{"A:::OBJECT", "B:::OBJECT", "C:::OBJECT"}},
		{"nothing higher", c, true, true, []string{"C:::OBJECT"}},
		{"middle one hop", b, false, true, []string{"C:::OBJECT", "B:::OBJECT"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flow, err := an.ComputeFlow(test.start, test.start.Vars(), test.fullClosure, test.goHigher)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.expected, pointNames(flow)); diff != "" {
				t.Errorf("flow points (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeFlowSlotsFollowStartVariables(t *testing.T) {
	an := newTestAnalyzer(t)
	a, _, _ := chain()
	// only y and x, in that order: the tables have two slots
	flow, err := an.ComputeFlow(a, []*ppt.Variable{a.Var(1), a.Var(0)}, true, true)
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]int{{ppt.Unmapped, 0}, {ppt.Unmapped, 0}, {1, 0}}
	if diff := cmp.Diff(expected, entrySlots(flow)); diff != "" {
		t.Errorf("flow slots (-want +got):\n%s", diff)
	}
}

func TestComputeFlowGroupsByFirstNonce(t *testing.T) {
	an := newTestAnalyzer(t)
	p := newPoint("P:::OBJECT", "v0", "v1")
	q := newPoint("Q:::OBJECT", "x")
	r := newPoint("R:::OBJECT", "y")
	// the nonce of v1 is smaller, but v0 comes first in the start variables
	ppt.AddHigher(p.Var(1), r.Var(0), 0)
	ppt.AddHigher(p.Var(0), q.Var(0), 1)

	flow, err := an.ComputeFlow(p, p.Vars(), false, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"R:::OBJECT", "Q:::OBJECT", "P:::OBJECT"}, pointNames(flow)); diff != "" {
		t.Errorf("flow points (-want +got):\n%s", diff)
	}
}

func TestComputeFlowMergesIdenticalEntries(t *testing.T) {
	an := newTestAnalyzer(t)
	p := newPoint("P:::OBJECT", "v")
	q := newPoint("Q:::OBJECT", "w")
	// two relation events between the same variables
	ppt.AddHigher(p.Var(0), q.Var(0), 0)
	ppt.AddHigher(p.Var(0), q.Var(0), 1)

	flow, err := an.ComputeFlow(p, p.Vars(), true, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Q:::OBJECT", "P:::OBJECT"}, pointNames(flow)); diff != "" {
		t.Errorf("flow points (-want +got):\n%s", diff)
	}
}

func TestComputeFlowErrors(t *testing.T) {
	an := newTestAnalyzer(t)

	t.Run("foreign start variable", func(t *testing.T) {
		a, b, _ := chain()
		_, err := an.ComputeFlow(a, []*ppt.Variable{b.Var(0)}, false, true)
		asPreconditionError(t, err)
	})

	t.Run("head spans points", func(t *testing.T) {
		p := newPoint("P:::OBJECT", "v0", "v1")
		q := newPoint("Q:::OBJECT", "x")
		r := newPoint("R:::OBJECT", "y")
		ppt.AddHigher(p.Var(0), q.Var(0), 5)
		ppt.AddHigher(p.Var(1), r.Var(0), 5)
		_, err := an.ComputeFlow(p, p.Vars(), false, true)
		perr := asPreconditionError(t, err)
		if perr.Point != "P:::OBJECT" {
			t.Errorf("error should name the start point, got %v", perr)
		}
	})

	t.Run("slot flows to two variables", func(t *testing.T) {
		p := newPoint("P:::OBJECT", "v")
		q := newPoint("Q:::OBJECT", "x", "y")
		ppt.AddHigher(p.Var(0), q.Var(0), 5)
		ppt.AddHigher(p.Var(0), q.Var(1), 5)
		_, err := an.ComputeFlow(p, p.Vars(), false, true)
		asPreconditionError(t, err)
	})
}
