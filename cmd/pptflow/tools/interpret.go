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

package tools

import "regexp"

// Captures errors happening before any analysis starts (declarations could not load)
var regexCouldNotLoad = regexp.MustCompile("could not load declarations")

// Captures the kind of error that happen when a yaml file is malformed
var regexUnmarshal = regexp.MustCompile("could not unmarshal declaration file")

// Captures errors raised by the partial order construction
var regexPrecondition = regexp.MustCompile("precondition violated at")

// HintForErrorMessage looks for specific error message and returns some other message that might help the user
// resolve the problem.
func HintForErrorMessage(errMsg string) string {
	if regexCouldNotLoad.MatchString(errMsg) {
		if regexUnmarshal.MatchString(errMsg) {
			return "declaration files are yaml documents with a list of points; all flags should be before the files"
		}
		return "make sure the declaration files exist and that program point names have the form Class.method(args):::POINT"
	}
	if regexPrecondition.MatchString(errMsg) {
		return "the declarations are inconsistent; every combined exit needs its entry, with a superset of its variables"
	}
	return ""
}
