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

import "fmt"

// PreconditionError reports a malformed partial order or declaration set found while building relations or
// computing flows. It is never recoverable: the partial order built so far must be discarded.
type PreconditionError struct {
	// Point is the name of the offending program point
	Point string

	// Variable is the name of the offending variable, if any
	Variable string

	// Reason describes the violated precondition
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("precondition violated at %s: %s", e.Point, e.Reason)
	}
	return fmt.Sprintf("precondition violated at %s, variable %s: %s", e.Point, e.Variable, e.Reason)
}

func preconditionf(point fmt.Stringer, variable string, format string, args ...any) *PreconditionError {
	return &PreconditionError{
		Point:    point.String(),
		Variable: variable,
		Reason:   fmt.Sprintf(format, args...),
	}
}
