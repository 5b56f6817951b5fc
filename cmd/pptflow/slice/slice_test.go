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

package slice

import (
	"bytes"
	"path"
	"runtime"
	"testing"
)

func stackDecls() string {
	_, filename, _, _ := runtime.Caller(0)
	return path.Join(path.Dir(filename), "..", "testdata", "stack.yaml")
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			"object",
			[]string{"-point", "pkg.Stack:::OBJECT", "-vars", "this.size,pkg.Stack.MAX", stackDecls()},
			"pkg.Stack:::OBJECT(this.size, pkg.Stack.MAX)\n" +
				"  pkg.Stack.push(int):::EXIT: this.size, pkg.Stack.MAX\n" +
				"  pkg.Stack.push(int):::ENTER: this.size, pkg.Stack.MAX\n",
		},
		{
			"conditional",
			[]string{"-point", "pkg.Stack.push(int):::EXIT", "-vars", "orig(this.size)", stackDecls()},
			"pkg.Stack.push(int):::EXIT(orig(this.size))\n" +
				"  pkg.Stack.push(int):::EXIT [this.size > 0]: orig(this.size)\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flags, err := NewFlags(test.args)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := run(flags, &buf); err != nil {
				t.Fatal(err)
			}
			if buf.String() != test.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", test.expected, buf.String())
			}
		})
	}
}

func TestRunUnknownVariable(t *testing.T) {
	flags, err := NewFlags([]string{"-point", "pkg.Stack:::OBJECT", "-vars", "nope", stackDecls()})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(flags, &bytes.Buffer{}); err == nil {
		t.Errorf("expected an error for an unknown variable")
	}
}
