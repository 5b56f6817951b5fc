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

	"golang.org/x/exp/slices"
)

// DerivationKind identifies the formula used to compute a derived variable
type DerivationKind int

const (
	// SequenceLength is the length of a sequence, plus a shift of 0 or -1
	SequenceLength DerivationKind = iota + 1

	// SequencesUnion is the set union of two sequences of strings
	SequencesUnion
)

func (k DerivationKind) String() string {
	switch k {
	case SequenceLength:
		return "SequenceLength"
	case SequencesUnion:
		return "SequencesUnion"
	default:
		return fmt.Sprintf("DerivationKind(%d)", int(k))
	}
}

// Arity returns the number of bases of a derivation of that kind
func (k DerivationKind) Arity() int {
	switch k {
	case SequenceLength:
		return 1
	case SequencesUnion:
		return 2
	default:
		return 0
	}
}

// Derivation describes how a derived variable is computed from its bases. Only the formula identity and the
// bases matter for relating derived variables across program points.
type Derivation struct {
	Kind DerivationKind

	// Shift is only meaningful for SequenceLength
	Shift int

	bases []*Variable
}

// NewSequenceLength returns the derivation of the length of base, shifted by shift
func NewSequenceLength(base *Variable, shift int) *Derivation {
	return &Derivation{Kind: SequenceLength, Shift: shift, bases: []*Variable{base}}
}

// NewSequencesUnion returns the derivation of the union of the two sequences
func NewSequencesUnion(base1 *Variable, base2 *Variable) *Derivation {
	return &Derivation{Kind: SequencesUnion, bases: []*Variable{base1, base2}}
}

// Bases returns the base variables of the derivation, in order.
// The returned slice must not be modified.
func (d *Derivation) Bases() []*Variable {
	return d.bases
}

// SameFormula returns true if both derivations compute the same function of their bases
func (d *Derivation) SameFormula(other *Derivation) bool {
	if d == nil || other == nil {
		return false
	}
	if d.Kind != other.Kind {
		return false
	}
	if d.Kind == SequenceLength {
		return d.Shift == other.Shift
	}
	return true
}

// MatchesBases returns true if the bases of d are exactly the variables in bases, in the same order
func (d *Derivation) MatchesBases(bases []*Variable) bool {
	return slices.Equal(d.bases, bases)
}

func (d *Derivation) String() string {
	names := make([]string, len(d.bases))
	for i, b := range d.bases {
		names[i] = b.Name
	}
	if d.Kind == SequenceLength {
		return fmt.Sprintf("%s%v shift=%d", d.Kind, names, d.Shift)
	}
	return fmt.Sprintf("%s%v", d.Kind, names)
}
