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

package ppt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mkPoint(t *testing.T, name string, vars ...string) *ProgramPoint {
	t.Helper()
	vs := make([]*Variable, len(vars))
	for i, v := range vars {
		vs[i] = NewVariable(v, "int")
	}
	return NewProgramPoint(MustParseName(name), vs)
}

func TestAddHigherIsSymmetric(t *testing.T) {
	low := mkPoint(t, "C.m():::ENTER", "a", "b")
	high := mkPoint(t, "C:::OBJECT", "a", "b")
	var nonces NonceAllocator
	n0 := nonces.Next()
	AddHigher(low.Var(0), high.Var(0), n0)
	AddHigher(low.Var(1), high.Var(1), n0)
	n1 := nonces.Next()
	AddHigher(low.Var(0), high.Var(1), n1)

	if n0 != 0 || n1 != 1 || nonces.Peek() != 2 {
		t.Fatalf("nonces not monotonic: %d %d %d", n0, n1, nonces.Peek())
	}
	for _, p := range []*ProgramPoint{low, high} {
		for _, v := range p.Vars() {
			for i, u := range v.Above() {
				if !hasEdge(u.Below(), u.BelowNonces(), v, v.AboveNonces()[i]) {
					t.Errorf("%s above %s with nonce %d has no mirror", v, u, v.AboveNonces()[i])
				}
			}
			for i, u := range v.Below() {
				if !hasEdge(u.Above(), u.AboveNonces(), v, v.BelowNonces()[i]) {
					t.Errorf("%s below %s with nonce %d has no mirror", v, u, v.BelowNonces()[i])
				}
			}
		}
	}
	if diff := cmp.Diff([]int{0, 1}, low.Var(0).AboveNonces()); diff != "" {
		t.Errorf("edge order not preserved (-want +got):\n%s", diff)
	}
	if !low.Var(0).HasParent() || high.Var(0).HasParent() {
		t.Errorf("HasParent wrong")
	}
}

func hasEdge(vars []*Variable, nonces []int, v *Variable, nonce int) bool {
	for i, u := range vars {
		if u == v && nonces[i] == nonce {
			return true
		}
	}
	return false
}

func TestAddVariablesAssignsSlots(t *testing.T) {
	p := mkPoint(t, "C.m():::EXIT", "a", "b", "return")
	if p.NumDeclVars != 3 {
		t.Fatalf("NumDeclVars = %d, want 3", p.NumDeclVars)
	}
	p.SetFlows(nil, nil)
	lo, hi := p.AddVariables([]*Variable{NewVariable(OrigName("a"), "int"), NewVariable(OrigName("b"), "int")})
	if lo != 3 || hi != 5 {
		t.Errorf("AddVariables() = [%d, %d), want [3, 5)", lo, hi)
	}
	if p.FlowsComputed() {
		t.Errorf("adding variables should invalidate flows")
	}
	for i, v := range p.Vars() {
		if v.Index() != i || v.Point() != p {
			t.Errorf("variable %s has index %d and point %v", v.Name, v.Index(), v.Point())
		}
	}
	if p.FindVar("orig(b)") != p.Var(4) || p.FindVar("c") != nil {
		t.Errorf("FindVar returned wrong variable")
	}
}

func TestReplaceThis(t *testing.T) {
	tests := []struct {
		name string
		with string
		want string
	}{
		{"this", "p", "p"},
		{"this.next.value", "p", "p.next.value"},
		{"size(this.items[])", "s", "size(s.items[])"},
		{"thisValue", "p", "thisValue"},
		{"other.this_", "p", "other.this_"},
	}
	for _, tt := range tests {
		if got := ReplaceThis(tt.name, tt.with); got != tt.want {
			t.Errorf("ReplaceThis(%q, %q) = %q, want %q", tt.name, tt.with, got, tt.want)
		}
	}
}

func TestDerivationIdentity(t *testing.T) {
	p := mkPoint(t, "C.m():::ENTER", "a[]", "b[]")
	a, b := p.Var(0), p.Var(1)
	l0 := NewSequenceLength(a, 0)
	l1 := NewSequenceLength(a, -1)
	u := NewSequencesUnion(a, b)

	if !l0.SameFormula(NewSequenceLength(b, 0)) {
		t.Errorf("lengths with same shift should be the same formula")
	}
	if l0.SameFormula(l1) || l0.SameFormula(u) {
		t.Errorf("different formulas compare equal")
	}
	if !u.MatchesBases([]*Variable{a, b}) || u.MatchesBases([]*Variable{b, a}) {
		t.Errorf("base matching must be order sensitive")
	}
	if SizeName("a[]", -1) != "size(a[])-1" || UnionName("a[]", "b[]") != "union(a[], b[])" {
		t.Errorf("unexpected derived names")
	}
}

func TestConditionalLayout(t *testing.T) {
	p := mkPoint(t, "C.m():::EXIT", "a", "b")
	c := NewConditional(p, "a > 0")
	if c.Parent != p || len(p.Conditionals) != 1 {
		t.Fatalf("conditional not registered")
	}
	for i, v := range c.Vars() {
		if v.Name != p.Var(i).Name || v.Index() != i {
			t.Errorf("slot %d: %s does not match %s", i, v.Name, p.Var(i).Name)
		}
	}
	if c.ReceivesSamples() {
		t.Errorf("conditional points do not receive samples directly")
	}
}

func TestNewSliceRejectsForeignVariables(t *testing.T) {
	p := mkPoint(t, "C.m():::ENTER", "a")
	q := mkPoint(t, "C.n():::ENTER", "a")
	if _, err := NewSlice(p, q.Var(0)); err == nil {
		t.Errorf("expected error for variable of another point")
	}
	if _, err := NewSlice(p); err == nil {
		t.Errorf("expected error for empty slice")
	}
	s, err := NewSlice(p, p.Var(0))
	if err != nil || s.Arity() != 1 {
		t.Errorf("NewSlice() = %v, %v", s, err)
	}
}

func TestMapRejectsDuplicates(t *testing.T) {
	m := NewMap()
	if err := m.Add(mkPoint(t, "C:::OBJECT", "this")); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(mkPoint(t, "C:::OBJECT")); err == nil {
		t.Errorf("expected duplicate error")
	}
	if m.Lookup("C:::OBJECT") == nil || m.Lookup("D:::OBJECT") != nil || m.Len() != 1 {
		t.Errorf("lookup mismatch")
	}
}
