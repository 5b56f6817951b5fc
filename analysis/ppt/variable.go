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
	"regexp"
	"strings"
)

// This is the name of the receiver variable. It is the token substituted when relating orphans to OBJECT points.
const This = "this"

// Variable is a variable declared (or derived) at a program point. A variable belongs to exactly one point, and
// its index is its identity within that point when remapping across points.
type Variable struct {
	// Name is the name used to match variables across program points
	Name string

	// Type is the declared type of the variable. Array types end with "[]".
	Type string

	// StaticConstant is true when the variable has a constant value declared for every sample
	StaticConstant bool

	// Derived is non-nil for derived variables
	Derived *Derivation

	index int
	point *ProgramPoint

	// above are the variables this variable flows up to; aboveNonces[i] is the nonce of the edge to above[i]
	above       []*Variable
	aboveNonces []int
	// below are the variables that flow up to this variable; belowNonces[i] is the nonce of the edge to below[i]
	below       []*Variable
	belowNonces []int
}

// NewVariable returns a new variable that does not belong to any program point yet
func NewVariable(name string, typ string) *Variable {
	return &Variable{Name: name, Type: typ}
}

// Index returns the index of the variable in its program point's variables
func (v *Variable) Index() int {
	return v.index
}

// Point returns the program point owning the variable
func (v *Variable) Point() *ProgramPoint {
	return v.point
}

// IsDerived returns true if the variable was derived from other variables
func (v *Variable) IsDerived() bool {
	return v.Derived != nil
}

// IsArray returns true when the variable's declared type is a (pseudo-)array type
func (v *Variable) IsArray() bool {
	return IsArrayType(v.Type)
}

func (v *Variable) String() string {
	if v.point == nil {
		return v.Name
	}
	return fmt.Sprintf("%s in %s", v.Name, v.point.Name)
}

// IsArrayType returns true if the type is an array type, e.g. int[] or java.lang.String[]
func IsArrayType(typ string) bool {
	return strings.HasSuffix(typ, "[]")
}

// BaseType returns the element type of an array type, or the type itself if it is not an array type
func BaseType(typ string) string {
	for IsArrayType(typ) {
		typ = strings.TrimSuffix(typ, "[]")
	}
	return typ
}

var thisToken = regexp.MustCompile(`\b` + This + `\b`)

// ReplaceThis returns the name with every standalone "this" token replaced by with. For example,
// ReplaceThis("this.next.value", "p") is "p.next.value", and "thisValue" is left unchanged.
func ReplaceThis(name string, with string) string {
	return thisToken.ReplaceAllLiteralString(name, with)
}

// OrigName returns the name of the prestate variable for the variable named name
func OrigName(name string) string {
	return "orig(" + name + ")"
}

// SizeName returns the name of the length of the sequence named name, shifted by shift
func SizeName(name string, shift int) string {
	switch {
	case shift == 0:
		return "size(" + name + ")"
	case shift < 0:
		return fmt.Sprintf("size(%s)%d", name, shift)
	default:
		return fmt.Sprintf("size(%s)+%d", name, shift)
	}
}

// UnionName returns the name of the union of the two sequences
func UnionName(a string, b string) string {
	return "union(" + a + ", " + b + ")"
}
