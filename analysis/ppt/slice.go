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
	"strings"
)

// Slice is a fixed-arity tuple of variables of one program point, the unit over which invariant candidates are
// checked. A slice carries its own partial order: the tuples of variables at adjacent points that its invariants
// flow to.
type Slice struct {
	Parent *ProgramPoint
	Vars   []*Variable

	po []Adjacency
}

// Adjacency is an entry in the partial order of a slice: the point and the variables that correspond to the slice's
// variables at that point.
type Adjacency struct {
	Point *ProgramPoint
	Vars  []*Variable
}

// NewSlice returns a slice of parent over vars. All variables must belong to parent.
func NewSlice(parent *ProgramPoint, vars ...*Variable) (*Slice, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("slice of %s must have at least one variable", parent.Name)
	}
	for _, v := range vars {
		if v.point != parent {
			return nil, fmt.Errorf("variable %s does not belong to %s", v, parent.Name)
		}
	}
	return &Slice{Parent: parent, Vars: vars}, nil
}

// Arity returns the number of variables of the slice
func (s *Slice) Arity() int {
	return len(s.Vars)
}

// AddToPO adds an adjacency to the partial order of the slice
func (s *Slice) AddToPO(point *ProgramPoint, vars []*Variable) {
	s.po = append(s.po, Adjacency{Point: point, Vars: vars})
}

// PO returns the adjacencies of the slice in the order they were added. The returned slice must not be modified.
func (s *Slice) PO() []Adjacency {
	return s.po
}

func (s *Slice) String() string {
	names := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		names[i] = v.Name
	}
	return fmt.Sprintf("%s(%s)", s.Parent, strings.Join(names, ", "))
}
