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
	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"golang.org/x/tools/container/intsets"
)

// nameTransformer rewrites a variable name before names are compared. A nil transformer is the identity.
type nameTransformer func(string) string

func (f nameTransformer) apply(name string) string {
	if f == nil {
		return name
	}
	return f(name)
}

// setupPOSameName relates every variable in lower to every variable in higher that has the same name after
// transformation. All the edges share one fresh nonce. It returns the number of edges added.
func (a *Analyzer) setupPOSameName(lower []*ppt.Variable, lowerXform nameTransformer,
	higher []*ppt.Variable, higherXform nameTransformer) int {
	nonce := a.Nonces.Next()
	count := 0
	for _, h := range higher {
		hname := higherXform.apply(h.Name)
		for _, l := range lower {
			// a variable is never more general than itself
			if l == h {
				continue
			}
			if lowerXform.apply(l.Name) == hname {
				ppt.AddHigher(l, h, nonce)
				count++
			}
		}
	}
	return count
}

// relateObjectProcedurePoints relates the variables of p to the variables of its controlling point with the same
// name. CLASS controls OBJECT, and OBJECT (or CLASS when there is no OBJECT) controls ENTER and EXIT. Constructor
// entries have no controller since the object does not exist yet.
func (a *Analyzer) relateObjectProcedurePoints(p *ppt.ProgramPoint, points *ppt.Map) {
	var controller *ppt.ProgramPoint
	name := p.Name
	if name.IsObjectInstanceSynthetic() {
		controller = points.Get(name.MakeClassStatic())
	} else if (name.IsEnterPoint() && !name.IsConstructor()) || name.IsCombinedExitPoint() {
		controller = points.Get(name.MakeObject())
		if controller == nil {
			controller = points.Get(name.MakeClassStatic())
		}
	}
	if controller == nil {
		return
	}
	n := a.setupPOSameName(p.Vars(), nil, controller.Vars(), nil)
	a.Logger.Tracef("%s: %d variables related to controller %s", p.Name, n, controller.Name)
}

// createAndRelateOrigVars adds the prestate variables orig(v) to a combined exit point, for every declared variable v
// of the matching entry point that is not a static constant, and relates each orig(v) to v. Does nothing if p is
// not a combined exit.
func (a *Analyzer) createAndRelateOrigVars(p *ppt.ProgramPoint, points *ppt.Map) error {
	if !p.Name.IsCombinedExitPoint() {
		return nil
	}
	entry := points.Get(p.Name.MakeEnter())
	if entry == nil {
		return preconditionf(p, "", "no entry point %s for combined exit", p.Name.MakeEnter())
	}

	var prestate []*ppt.Variable
	for _, v := range entry.Vars()[:entry.NumDeclVars] {
		if v.IsDerived() {
			return preconditionf(entry, v.Name, "derived variable among declared variables when making orig()")
		}
		if v.StaticConstant {
			continue
		}
		if p.FindVar(v.Name) == nil {
			return preconditionf(p, v.Name, "exit is not a superset of entry %s", entry.Name)
		}
		prestate = append(prestate, v)
	}

	nonce := a.Nonces.Next()
	origVars := make([]*ppt.Variable, len(prestate))
	for i, v := range prestate {
		orig := ppt.NewVariable(ppt.OrigName(v.Name), v.Type)
		ppt.AddHigher(orig, v, nonce)
		origVars[i] = orig
	}
	p.NumOrigVars = len(origVars)
	p.AddVariables(origVars)
	a.Logger.Tracef("%s: added %d orig variables (nonce %d)", p.Name, len(origVars), nonce)
	return nil
}

// relateTypesToObjectPoints relates the variables of p that have no parent yet (the orphans) to the OBJECT point of
// their declared type. For each orphan o whose type has an OBJECT point, every orphan is related to the variable of
// that OBJECT point whose name is the orphan's name after substituting o for "this".
// Because orphans are the variables with no parent, this must be the last relation built for p.
func (a *Analyzer) relateTypesToObjectPoints(p *ppt.ProgramPoint, points *ppt.Map) {
	type known struct {
		v      *ppt.Variable
		object *ppt.ProgramPoint
	}
	var orphans []*ppt.Variable
	var knowns []known
	for _, v := range p.Vars() {
		if v.Name == ppt.This || v.HasParent() {
			continue
		}
		orphans = append(orphans, v)
		if v.IsArray() {
			continue
		}
		object := points.Get(ppt.ObjectNameForType(v.Type))
		if object == nil {
			a.Logger.Tracef("%s: orphan %s has no OBJECT point for type %s", p.Name, v.Name, v.Type)
			continue
		}
		knowns = append(knowns, known{v: v, object: object})
	}

	for _, k := range knowns {
		name := k.v.Name
		n := a.setupPOSameName(orphans, nil, k.object.Vars(), func(s string) string {
			return ppt.ReplaceThis(s, name)
		})
		a.Logger.Tracef("%s: %d orphan variables related to %s through %s", p.Name, n, k.object.Name, name)
	}
}

// RelateDerivedVariables relates the derived variables of p in the slot range [lo, hi) to the derived variables of
// the points immediately above p: a derived variable flows up to the variable derived with the same formula from the
// variables its bases flow up to, when such a variable exists. The new edges reuse the nonce of the step from p to
// the point above.
//
// This is called after the derived variables of every point have been created, so that counterparts exist. The
// flows of every point must be recomputed afterwards.
func (a *Analyzer) RelateDerivedVariables(p *ppt.ProgramPoint, lo int, hi int) error {
	a.Logger.Tracef("relating derived variables [%d, %d) of %s", lo, hi, p.Name)
	for j := lo; j < hi; j++ {
		if !p.Var(j).IsDerived() {
			return preconditionf(p, p.Var(j).Name, "variable in derived range is not derived")
		}
	}

	flow, err := a.ComputeFlow(p, p.Vars(), false, true)
	if err != nil {
		return err
	}
	// the last entry is p itself
	for _, e := range flow[:len(flow)-1] {
		nonce, err := stepNonce(p, e)
		if err != nil {
			return err
		}
		a.Logger.Tracef("  step to %s has nonce %d", e.Point.Name, nonce)
		for j := lo; j < hi; j++ {
			a.relateDerivedVariable(p.Var(j), e, nonce)
		}
	}
	return nil
}

func (a *Analyzer) relateDerivedVariable(v *ppt.Variable, e ppt.FlowEntry, nonce int) {
	bases := v.Derived.Bases()
	mapped := make([]*ppt.Variable, len(bases))
	for k, base := range bases {
		if base.Point() != v.Point() {
			a.Logger.Debugf("  %s: base %s is not in %s", v.Name, base, v.Point().Name)
			return
		}
		mapped[k] = e.Target(base.Index())
		if mapped[k] == nil {
			a.Logger.Tracef("  %s: base %s does not flow to %s", v.Name, base.Name, e.Point.Name)
			return
		}
	}
	for _, candidate := range e.Point.Vars() {
		if candidate.IsDerived() && v.Derived.SameFormula(candidate.Derived) &&
			candidate.Derived.MatchesBases(mapped) {
			ppt.AddHigher(v, candidate, nonce)
			a.Logger.Tracef("  %s flows to %s", v.Name, candidate)
			return
		}
	}
	a.Logger.Tracef("  %s: no counterpart for %s in %s", v.Name, v.Derived, e.Point.Name)
}

// stepNonce returns the nonce of the edges used by a one-step flow entry e of p. Every mapped slot of e must be
// reached by an edge of p's variable to the target variable, and exactly one nonce must be shared by all slots.
func stepNonce(p *ppt.ProgramPoint, e ppt.FlowEntry) (int, error) {
	var common intsets.Sparse
	first := true
	for s := 0; s < e.Remap.Len(); s++ {
		target := e.Target(s)
		if target == nil {
			continue
		}
		v := p.Var(s)
		var slotNonces intsets.Sparse
		for i, u := range v.Above() {
			if u == target {
				slotNonces.Insert(v.AboveNonces()[i])
			}
		}
		if slotNonces.IsEmpty() {
			return 0, preconditionf(p, v.Name, "flow to %s is not a single step", target)
		}
		if first {
			common.Copy(&slotNonces)
			first = false
		} else {
			common.IntersectionWith(&slotNonces)
		}
	}
	switch {
	case first:
		return 0, preconditionf(p, "", "mapless step to %s", e.Point.Name)
	case common.IsEmpty():
		return 0, preconditionf(p, "", "no nonce is shared by all the edges of the step to %s", e.Point.Name)
	case common.Len() > 1:
		return 0, preconditionf(p, "", "step to %s uses several nonces %s", e.Point.Name, common.String())
	}
	return common.Min(), nil
}
