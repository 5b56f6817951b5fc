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
	"fmt"
)

// ProgramPoint is a location in the instrumented program where a snapshot of variable values is recorded.
// A program point owns its variables; the order of the variables is their identity for remapping purposes.
type ProgramPoint struct {
	Name Name

	// NumDeclVars is the number of variables declared with the point, which are the first variables
	NumDeclVars int

	// NumOrigVars is the number of prestate variables added to a combined exit point
	NumOrigVars int

	// Parent is the program point a conditional point was split from. It is nil for top-level points.
	Parent *ProgramPoint

	// Predicate is the condition selecting samples of a conditional point
	Predicate string

	// Conditionals are the conditional child scopes of the point. Every conditional has the same variable layout
	// as the point it was split from.
	Conditionals []*ProgramPoint

	vars []*Variable

	// sampleFlow and invariantFlow are the cached flow tables. They are nil until computed
	sampleFlow    []FlowEntry
	invariantFlow []FlowEntry
	flowsComputed bool
}

// NewProgramPoint returns a new program point with the declared variables. Each variable must not belong to another
// point.
func NewProgramPoint(name Name, vars []*Variable) *ProgramPoint {
	p := &ProgramPoint{Name: name}
	p.AddVariables(vars)
	p.NumDeclVars = len(vars)
	return p
}

// AddVariables appends the variables to the point, setting their index and owner. It returns the range [lo, hi) of
// the slots of the new variables.
// Adding variables invalidates the flow tables of the point.
func (p *ProgramPoint) AddVariables(vars []*Variable) (lo int, hi int) {
	lo = len(p.vars)
	for _, v := range vars {
		if v.point != nil {
			panic(fmt.Sprintf("variable %s already belongs to a program point", v))
		}
		v.point = p
		v.index = len(p.vars)
		p.vars = append(p.vars, v)
	}
	p.InvalidateFlows()
	return lo, len(p.vars)
}

// Vars returns the variables of the program point. The returned slice must not be modified.
func (p *ProgramPoint) Vars() []*Variable {
	return p.vars
}

// Var returns the i-th variable of the point
func (p *ProgramPoint) Var(i int) *Variable {
	return p.vars[i]
}

// NumVars returns the number of variables of the point
func (p *ProgramPoint) NumVars() int {
	return len(p.vars)
}

// FindVar returns the variable with the given name, or nil if there is none
func (p *ProgramPoint) FindVar(name string) *Variable {
	for _, v := range p.vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// ReceivesSamples returns true if samples are recorded at this point and propagated from it. Currently only the
// combined exit points do.
func (p *ProgramPoint) ReceivesSamples() bool {
	return p.Parent == nil && p.Name.IsCombinedExitPoint()
}

// NewConditional splits a conditional point off p. The conditional has a copy of each variable of p at the same
// index. Derived variables are copied as non-derived variables with the same name.
func NewConditional(p *ProgramPoint, predicate string) *ProgramPoint {
	vars := make([]*Variable, len(p.vars))
	for i, v := range p.vars {
		vars[i] = &Variable{Name: v.Name, Type: v.Type, StaticConstant: v.StaticConstant}
	}
	c := NewProgramPoint(p.Name, vars)
	c.Parent = p
	c.Predicate = predicate
	p.Conditionals = append(p.Conditionals, c)
	return c
}

func (p *ProgramPoint) String() string {
	if p.Parent != nil {
		return fmt.Sprintf("%s;condition=%q", p.Name, p.Predicate)
	}
	return p.Name.String()
}

// SetFlows stores the flow tables computed for the point
func (p *ProgramPoint) SetFlows(sampleFlow []FlowEntry, invariantFlow []FlowEntry) {
	p.sampleFlow = sampleFlow
	p.invariantFlow = invariantFlow
	p.flowsComputed = true
}

// InvalidateFlows drops the flow tables. Since propagation is global, callers must recompute the flows of all
// points after any change.
func (p *ProgramPoint) InvalidateFlows() {
	p.sampleFlow = nil
	p.invariantFlow = nil
	p.flowsComputed = false
}

// FlowsComputed returns true if the flow tables have been computed since the last change of the point
func (p *ProgramPoint) FlowsComputed() bool {
	return p.flowsComputed
}

// SampleFlow returns the points a sample recorded at p flows to, together with the remapping of p's variables into
// each point's variables. The most general point comes first and p itself comes last.
// It is nil for points that do not receive samples.
func (p *ProgramPoint) SampleFlow() []FlowEntry {
	return p.sampleFlow
}

// InvariantFlow returns the points immediately below p that invariants of p flow to, with the remapping of p's
// variables into each point's variables. p itself is never part of its invariant flow.
func (p *ProgramPoint) InvariantFlow() []FlowEntry {
	return p.invariantFlow
}

// Unmapped marks a slot of a remap table whose source variable has no counterpart in the target point
const Unmapped = -1

// RemapTable maps the variable slots of a source point to the variable slots of a target point. Tables are
// read-only once built, and shared between flows that have identical tables.
type RemapTable struct {
	slots []int
}

// NewRemapTable returns a table holding a copy of the slots.
func NewRemapTable(slots []int) *RemapTable {
	s := make([]int, len(slots))
	copy(s, slots)
	return &RemapTable{slots: s}
}

// Len returns the number of source slots of the table
func (r *RemapTable) Len() int {
	return len(r.slots)
}

// At returns the target slot of source slot i, or Unmapped
func (r *RemapTable) At(i int) int {
	return r.slots[i]
}

// Slots returns a copy of the table's slots
func (r *RemapTable) Slots() []int {
	s := make([]int, len(r.slots))
	copy(s, r.slots)
	return s
}

func (r *RemapTable) String() string {
	return fmt.Sprint(r.slots)
}

// FlowEntry is one target of a flow: the target point and the remapping of the source variables into the target's
// variables.
type FlowEntry struct {
	Point *ProgramPoint
	Remap *RemapTable
}

// Target returns the variable of the target point that source slot i maps to, or nil if the slot is unmapped
func (e FlowEntry) Target(i int) *Variable {
	j := e.Remap.At(i)
	if j == Unmapped {
		return nil
	}
	return e.Point.vars[j]
}
