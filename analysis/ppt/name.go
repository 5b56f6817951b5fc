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
	"strconv"
	"strings"
)

// Separator between the function part and the point part of a program point name
const Separator = ":::"

// Point kinds, as they appear after the separator
const (
	EnterPoint  = "ENTER"
	ExitPoint   = "EXIT"
	ObjectPoint = "OBJECT"
	ClassPoint  = "CLASS"
)

// Name is a parsed program point name such as "pkg.Stack.push(int):::ENTER" or "pkg.Stack:::OBJECT".
// Names are comparable and can be used as map keys.
type Name struct {
	// Class is the fully qualified class (or type) name
	Class string

	// Method is the method part including the argument list, empty for OBJECT and CLASS points
	Method string

	// Point is the point part, e.g. ENTER, EXIT, EXIT37, OBJECT or CLASS
	Point string
}

// ParseName parses a full program point name. It returns an error if the name has no separator, or if the method
// part is malformed.
func ParseName(fullname string) (Name, error) {
	fn, point, ok := strings.Cut(fullname, Separator)
	if !ok || point == "" || fn == "" {
		return Name{}, fmt.Errorf("malformed program point name %q: expected <function>%s<point>", fullname, Separator)
	}
	if strings.Contains(point, Separator) {
		return Name{}, fmt.Errorf("malformed program point name %q: more than one separator", fullname)
	}
	paren := strings.Index(fn, "(")
	if paren < 0 {
		return Name{Class: fn, Point: point}, nil
	}
	if !strings.HasSuffix(fn, ")") {
		return Name{}, fmt.Errorf("malformed program point name %q: unterminated argument list", fullname)
	}
	dot := strings.LastIndex(fn[:paren], ".")
	if dot <= 0 {
		return Name{}, fmt.Errorf("malformed program point name %q: method without class", fullname)
	}
	return Name{Class: fn[:dot], Method: fn[dot+1:], Point: point}, nil
}

// MustParseName is like ParseName but panics on error. Intended for tests and constants.
func MustParseName(fullname string) Name {
	n, err := ParseName(fullname)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	if n.Method == "" {
		return n.Class + Separator + n.Point
	}
	return n.Class + "." + n.Method + Separator + n.Point
}

// MethodName returns the method name without its argument list
func (n Name) MethodName() string {
	name, _, _ := strings.Cut(n.Method, "(")
	return name
}

// IsEnterPoint returns true if the name is a procedure entry
func (n Name) IsEnterPoint() bool {
	return n.Point == EnterPoint
}

// IsExitPoint returns true for both combined (EXIT) and numbered (EXITnn) exits
func (n Name) IsExitPoint() bool {
	return strings.HasPrefix(n.Point, ExitPoint)
}

// IsCombinedExitPoint returns true for the EXIT point that combines all the numbered exits of a procedure
func (n Name) IsCombinedExitPoint() bool {
	return n.Point == ExitPoint
}

// ExitNumber returns the line number of a numbered exit point, and false if n is not a numbered exit.
func (n Name) ExitNumber() (int, bool) {
	if !n.IsExitPoint() || n.IsCombinedExitPoint() {
		return 0, false
	}
	k, err := strconv.Atoi(n.Point[len(ExitPoint):])
	if err != nil {
		return 0, false
	}
	return k, true
}

// IsObjectInstanceSynthetic returns true for the OBJECT point of a class
func (n Name) IsObjectInstanceSynthetic() bool {
	return n.Point == ObjectPoint
}

// IsClassStatic returns true for the CLASS point of a class
func (n Name) IsClassStatic() bool {
	return n.Point == ClassPoint
}

// IsConstructor returns true if the method is a constructor of its class, i.e. it is named <init> or it has the
// simple name of the class
func (n Name) IsConstructor() bool {
	if n.Method == "" {
		return false
	}
	m := n.MethodName()
	if m == "<init>" {
		return true
	}
	simple := n.Class[strings.LastIndex(n.Class, ".")+1:]
	if i := strings.LastIndex(simple, "$"); i >= 0 {
		simple = simple[i+1:]
	}
	return m == simple
}

// MakeEnter returns the ENTER point of the same procedure
func (n Name) MakeEnter() Name {
	return Name{Class: n.Class, Method: n.Method, Point: EnterPoint}
}

// MakeExit returns the combined EXIT point of the same procedure
func (n Name) MakeExit() Name {
	return Name{Class: n.Class, Method: n.Method, Point: ExitPoint}
}

// MakeObject returns the OBJECT point of the class
func (n Name) MakeObject() Name {
	return Name{Class: n.Class, Point: ObjectPoint}
}

// MakeClassStatic returns the CLASS point of the class
func (n Name) MakeClassStatic() Name {
	return Name{Class: n.Class, Point: ClassPoint}
}

// ObjectNameForType returns the name of the OBJECT point for values of declared type typ
func ObjectNameForType(typ string) Name {
	return Name{Class: typ, Point: ObjectPoint}
}
