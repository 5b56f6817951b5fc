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

import (
	"embed"
	"errors"
	"io"
	"testing"

	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/decls"
	"github.com/awslabs/ar-pptflow/analysis/ppt"
)

//go:embed testdata/decls
var testDecls embed.FS

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cfg := config.NewDefault()
	logger := config.NewLogGroup(cfg)
	logger.SetAllOutput(io.Discard)
	return NewAnalyzer(cfg, logger)
}

func loadTestDecls(t *testing.T, filename string) *decls.Declarations {
	t.Helper()
	b, err := testDecls.ReadFile("testdata/decls/" + filename)
	if err != nil {
		t.Fatalf("could not read test declarations: %v", err)
	}
	d, err := decls.Parse(filename, b)
	if err != nil {
		t.Fatalf("could not parse test declarations: %v", err)
	}
	return d
}

// buildTestPoints loads the declarations in filename and builds their partial order and flows
func buildTestPoints(t *testing.T, filename string) (*Analyzer, *decls.Declarations) {
	t.Helper()
	a := newTestAnalyzer(t)
	d := loadTestDecls(t, filename)
	if err := a.BuildRelations(d.Points); err != nil {
		t.Fatalf("could not build relations of %s: %v", filename, err)
	}
	return a, d
}

func mustPoint(t *testing.T, points *ppt.Map, name string) *ppt.ProgramPoint {
	t.Helper()
	p := points.Lookup(name)
	if p == nil {
		t.Fatalf("no program point %s", name)
	}
	return p
}

func mustVar(t *testing.T, p *ppt.ProgramPoint, name string) *ppt.Variable {
	t.Helper()
	v := p.FindVar(name)
	if v == nil {
		t.Fatalf("no variable %s in %s", name, p.Name)
	}
	return v
}

// newPoint returns a point with int variables, outside of any map
func newPoint(name string, vars ...string) *ppt.ProgramPoint {
	vs := make([]*ppt.Variable, len(vars))
	for i, v := range vars {
		vs[i] = ppt.NewVariable(v, "int")
	}
	return ppt.NewProgramPoint(ppt.MustParseName(name), vs)
}

func asPreconditionError(t *testing.T, err error) *PreconditionError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a precondition error, got nil")
	}
	var perr *PreconditionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a precondition error, got %T: %v", err, err)
	}
	return perr
}

func pointNames(flow []ppt.FlowEntry) []string {
	names := make([]string, len(flow))
	for i, e := range flow {
		names[i] = e.Point.String()
	}
	return names
}

func entrySlots(flow []ppt.FlowEntry) [][]int {
	slots := make([][]int, len(flow))
	for i, e := range flow {
		slots[i] = e.Remap.Slots()
	}
	return slots
}

func varNames(vars []*ppt.Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}
