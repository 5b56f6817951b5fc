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

// Package decls reads declaration sets: the program points of a program and the variables declared at each point.
//
// A declaration file is a yaml document:
//
//	points:
//	  - name: pkg.Stack:::OBJECT
//	    vars:
//	      - {name: this, type: pkg.Stack}
//	      - {name: "this.items[]", type: "int[]"}
//	  - name: pkg.Stack.push(int):::ENTER
//	    vars:
//	      - {name: this, type: pkg.Stack}
//	      - {name: x, type: int}
//	      - {name: pkg.Stack.MAX, type: int, constant: true}
//	conditions:
//	  - point: pkg.Stack.push(int):::ENTER
//	    predicate: x > 0
//
// Conditions name the conditional points split from a point. They are only created by [Declarations.SplitConditionals],
// once the partial order is built and every variable of the parent point exists.
package decls

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Points     []pointDecl     `yaml:"points"`
	Conditions []conditionDecl `yaml:"conditions"`
}

type pointDecl struct {
	Name string    `yaml:"name"`
	Vars []varDecl `yaml:"vars"`
}

type varDecl struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Constant bool   `yaml:"constant"`
}

type conditionDecl struct {
	Point     string `yaml:"point"`
	Predicate string `yaml:"predicate"`
}

type condition struct {
	point     *ppt.ProgramPoint
	predicate string
}

// Declarations is a declaration set read from one or more files
type Declarations struct {
	// Points are the declared program points, in declaration order
	Points *ppt.Map

	conditions []condition
	split      bool
}

// Load reads and merges the declaration files. A program point must not be declared in more than one file.
func Load(filenames ...string) (*Declarations, error) {
	d := &Declarations{Points: ppt.NewMap()}
	var conditions []conditionDecl
	for _, filename := range filenames {
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("could not read declaration file: %w", err)
		}
		c, err := d.add(filename, b)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c...)
	}
	if err := d.resolveConditions(conditions); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse reads a declaration set from the contents of a single file. The filename is only used in error messages.
func Parse(filename string, b []byte) (*Declarations, error) {
	d := &Declarations{Points: ppt.NewMap()}
	conditions, err := d.add(filename, b)
	if err != nil {
		return nil, err
	}
	if err := d.resolveConditions(conditions); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Declarations) add(filename string, b []byte) ([]conditionDecl, error) {
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("could not unmarshal declaration file %s: %w", filename, err)
	}
	for _, pd := range f.Points {
		name, err := ppt.ParseName(pd.Name)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", filename, err)
		}
		vars := make([]*ppt.Variable, len(pd.Vars))
		names := map[string]bool{}
		for i, vd := range pd.Vars {
			if vd.Name == "" || vd.Type == "" {
				return nil, fmt.Errorf("in %s: variable %d of %s must have a name and a type", filename, i, name)
			}
			if names[vd.Name] {
				return nil, fmt.Errorf("in %s: variable %s declared twice in %s", filename, vd.Name, name)
			}
			names[vd.Name] = true
			vars[i] = ppt.NewVariable(vd.Name, vd.Type)
			vars[i].StaticConstant = vd.Constant
		}
		if err := d.Points.Add(ppt.NewProgramPoint(name, vars)); err != nil {
			return nil, fmt.Errorf("in %s: %w", filename, err)
		}
	}
	return f.Conditions, nil
}

func (d *Declarations) resolveConditions(conditions []conditionDecl) error {
	for _, c := range conditions {
		p := d.Points.Lookup(c.Point)
		if p == nil {
			return fmt.Errorf("condition %q refers to undeclared program point %s", c.Predicate, c.Point)
		}
		d.conditions = append(d.conditions, condition{point: p, predicate: c.Predicate})
	}
	return nil
}

// SplitConditionals creates the conditional points of the declaration set. It must be called after the partial
// order is built, since a conditional point copies the variables of its parent at creation.
func (d *Declarations) SplitConditionals() error {
	if d.split {
		return fmt.Errorf("conditional points already split")
	}
	for _, c := range d.conditions {
		ppt.NewConditional(c.point, c.predicate)
	}
	d.split = true
	return nil
}
