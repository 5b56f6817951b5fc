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

// Package derive creates the derived variables of program points: sequence lengths and unions of string
// sequences. The values of derived variables are computed elsewhere; this package only creates the variables and
// records the formula and the bases each one is computed from, which is what relates derived variables across
// program points.
package derive

import (
	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/ppt"
)

var stringTypes = map[string]bool{
	"java.lang.String": true,
	"String":           true,
	"string":           true,
}

// Deriver creates derived variables according to the derivation options
type Deriver struct {
	Options config.DerivationOptions
	Logger  *config.LogGroup
}

// New returns a deriver for the options. The logger may be nil.
func New(options config.DerivationOptions, logger *config.LogGroup) *Deriver {
	return &Deriver{Options: options, Logger: logger}
}

// Derive appends the derived variables of p to p's variables and returns the slot range [lo, hi) of the new
// variables. Derived variables are only built over variables that are not derived themselves, so calling Derive
// twice on a point would create duplicates.
func (d *Deriver) Derive(p *ppt.ProgramPoint) (lo int, hi int) {
	var bases []*ppt.Variable
	for _, v := range p.Vars() {
		if !v.IsDerived() {
			bases = append(bases, v)
		}
	}

	var derived []*ppt.Variable
	if d.Options.SequenceLength {
		for _, v := range bases {
			if !v.IsArray() {
				continue
			}
			derived = append(derived, sequenceLength(v, 0))
			if d.Options.SequenceLengthShift {
				derived = append(derived, sequenceLength(v, -1))
			}
		}
	}
	if d.Options.SequencesUnion {
		for i, v1 := range bases {
			if !isStringSequence(v1) {
				continue
			}
			for _, v2 := range bases[i+1:] {
				if isStringSequence(v2) {
					derived = append(derived, sequencesUnion(v1, v2))
				}
			}
		}
	}

	lo, hi = p.AddVariables(derived)
	if d.Logger != nil {
		d.Logger.Tracef("derived %d variables at %s", hi-lo, p.Name)
	}
	return lo, hi
}

func sequenceLength(base *ppt.Variable, shift int) *ppt.Variable {
	v := ppt.NewVariable(ppt.SizeName(base.Name, shift), "int")
	v.Derived = ppt.NewSequenceLength(base, shift)
	return v
}

func sequencesUnion(base1 *ppt.Variable, base2 *ppt.Variable) *ppt.Variable {
	v := ppt.NewVariable(ppt.UnionName(base1.Name, base2.Name), base1.Type)
	v.Derived = ppt.NewSequencesUnion(base1, base2)
	return v
}

func isStringSequence(v *ppt.Variable) bool {
	return v.IsArray() && stringTypes[ppt.BaseType(v.Type)]
}
