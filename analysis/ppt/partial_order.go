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

// AddHigher adds an edge in the partial order stating that lower flows up to higher. The edge is recorded on both
// ends with the same nonce, in call order. Edges are never removed.
func AddHigher(lower *Variable, higher *Variable, nonce int) {
	lower.above = append(lower.above, higher)
	lower.aboveNonces = append(lower.aboveNonces, nonce)
	higher.below = append(higher.below, lower)
	higher.belowNonces = append(higher.belowNonces, nonce)
}

// Above returns the variables v flows up to, in the order the edges were added.
// The returned slice must not be modified.
func (v *Variable) Above() []*Variable {
	return v.above
}

// AboveNonces returns the nonces of the edges returned by Above.
// The returned slice must not be modified.
func (v *Variable) AboveNonces() []int {
	return v.aboveNonces
}

// Below returns the variables that flow up to v, in the order the edges were added.
// The returned slice must not be modified.
func (v *Variable) Below() []*Variable {
	return v.below
}

// BelowNonces returns the nonces of the edges returned by Below.
// The returned slice must not be modified.
func (v *Variable) BelowNonces() []int {
	return v.belowNonces
}

// Related returns the variables directly above v if higher is true, otherwise the variables directly below, with
// the parallel nonce list.
func (v *Variable) Related(higher bool) ([]*Variable, []int) {
	if higher {
		return v.above, v.aboveNonces
	}
	return v.below, v.belowNonces
}

// HasParent returns true if v flows up to at least one variable
func (v *Variable) HasParent() bool {
	return len(v.above) > 0
}

// NonceAllocator hands out the nonces grouping the edges created by one relation-building event.
// The zero value is ready to use and starts at 0.
type NonceAllocator struct {
	next int
}

// Next returns a fresh nonce. Nonces are never reused.
func (a *NonceAllocator) Next() int {
	n := a.next
	a.next++
	return n
}

// Peek returns the nonce the next call to Next will return
func (a *NonceAllocator) Peek() int {
	return a.next
}
