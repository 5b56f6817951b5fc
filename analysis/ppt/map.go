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

import "fmt"

// Map is a collection of program points indexed by name. Iteration follows insertion order, which fixes the order
// relations are built in.
type Map struct {
	byName map[Name]*ProgramPoint
	points []*ProgramPoint
}

// NewMap returns an empty map
func NewMap() *Map {
	return &Map{byName: map[Name]*ProgramPoint{}}
}

// Add adds the program point to the map. It is an error to add two points with the same name.
func (m *Map) Add(p *ProgramPoint) error {
	if _, ok := m.byName[p.Name]; ok {
		return fmt.Errorf("duplicate program point %s", p.Name)
	}
	m.byName[p.Name] = p
	m.points = append(m.points, p)
	return nil
}

// Get returns the point with the given name, or nil
func (m *Map) Get(name Name) *ProgramPoint {
	return m.byName[name]
}

// Lookup returns the point named by the full name string, or nil if there is no such point or the name is malformed
func (m *Map) Lookup(fullname string) *ProgramPoint {
	name, err := ParseName(fullname)
	if err != nil {
		return nil
	}
	return m.byName[name]
}

// Points returns the points in insertion order. The returned slice must not be modified.
func (m *Map) Points() []*ProgramPoint {
	return m.points
}

// Len returns the number of points
func (m *Map) Len() int {
	return len(m.points)
}
