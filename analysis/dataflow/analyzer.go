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
	"fmt"

	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/derive"
	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"github.com/awslabs/ar-pptflow/internal/graphutil"
)

// A Deriver creates the derived variables of a program point, appending them to the point's variables, and returns
// the slot range [lo, hi) of the new variables.
type Deriver interface {
	Derive(p *ppt.ProgramPoint) (lo int, hi int)
}

// Analyzer holds the state shared by the relation builder, the flow computation and the slice binder for one
// declaration set. It is not safe for concurrent use: relations must be built by a single writer, and flows must be
// read only after BuildRelations has returned.
type Analyzer struct {
	// Config is the configuration of the analysis
	Config *config.Config

	// Logger is used for all output of the analysis
	Logger *config.LogGroup

	// Nonces hands out the nonces grouping the edges created by one relation-building event
	Nonces ppt.NonceAllocator

	// Interner shares identical remap tables
	Interner *Interner

	// Deriver creates the derived variables. If nil, no derived variable is created by BuildRelations.
	Deriver Deriver
}

// NewAnalyzer returns an analyzer using the derivations enabled in the config
func NewAnalyzer(cfg *config.Config, logger *config.LogGroup) *Analyzer {
	return &Analyzer{
		Config:   cfg,
		Logger:   logger,
		Interner: NewInterner(),
		Deriver:  derive.New(cfg.Derivations, logger),
	}
}

// BuildRelations builds the partial order of all the points in the map and computes their flows. It must be called
// exactly once per declaration set; calling it again duplicates every edge.
//
// The points are processed in three passes over the whole map:
//  1. relations with controlling points, prestate variables, and relations of orphans to OBJECT points;
//  2. creation of the derived variables, then relations of derived variables to their counterparts;
//  3. computation of the flows of every point.
func (a *Analyzer) BuildRelations(points *ppt.Map) error {
	for _, p := range points.Points() {
		if p.Parent != nil {
			return preconditionf(p, "", "conditional points must not be in the point map")
		}
		a.relateObjectProcedurePoints(p, points)
		if err := a.createAndRelateOrigVars(p, points); err != nil {
			return err
		}
		a.relateTypesToObjectPoints(p, points)
	}

	if a.Deriver != nil {
		type slotRange struct{ lo, hi int }
		ranges := make([]slotRange, points.Len())
		for i, p := range points.Points() {
			lo, hi := a.Deriver.Derive(p)
			ranges[i] = slotRange{lo, hi}
		}
		for i, p := range points.Points() {
			if ranges[i].lo == ranges[i].hi {
				continue
			}
			if err := a.RelateDerivedVariables(p, ranges[i].lo, ranges[i].hi); err != nil {
				return err
			}
		}
	}

	if err := a.RecomputeFlows(points); err != nil {
		return err
	}
	a.Logger.Infof("Built partial order of %d program points (%d nonces, %d distinct remap tables)",
		points.Len(), a.Nonces.Peek(), a.Interner.Len())
	return nil
}

// RecomputeFlows computes the sample and invariant flows of every point of the map. Flows are global: after any
// point or variable is added, the flows of all points must be recomputed.
func (a *Analyzer) RecomputeFlows(points *ppt.Map) error {
	if a.Config.CheckAcyclic {
		if err := CheckAcyclic(points); err != nil {
			return err
		}
	}
	for _, p := range points.Points() {
		p.InvalidateFlows()
	}
	for _, p := range points.Points() {
		var sampleFlow []ppt.FlowEntry
		if p.ReceivesSamples() {
			flow, err := a.ComputeFlow(p, p.Vars(), true, true)
			if err != nil {
				return err
			}
			sampleFlow = flow
		}
		invariantFlow, err := a.invariantFlow(p)
		if err != nil {
			return err
		}
		p.SetFlows(sampleFlow, invariantFlow)
		a.Logger.Tracef("%s: %d sample flow entries, %d invariant flow entries", p.Name, len(sampleFlow),
			len(invariantFlow))
	}
	return nil
}

// invariantFlow returns the one-step flow of p towards lower points, without p itself.
func (a *Analyzer) invariantFlow(p *ppt.ProgramPoint) ([]ppt.FlowEntry, error) {
	flow, err := a.ComputeFlow(p, p.Vars(), false, false)
	if err != nil {
		return nil, err
	}
	res := make([]ppt.FlowEntry, 0, len(flow))
	for _, e := range flow {
		if e.Point != p {
			res = append(res, e)
		}
	}
	return res, nil
}

// CheckAcyclic returns an error naming the variables of a cycle if the variable partial order of the points has one.
func CheckAcyclic(points *ppt.Map) error {
	var vars []*ppt.Variable
	ids := map[*ppt.Variable]int{}
	for _, p := range points.Points() {
		for _, v := range p.Vars() {
			ids[v] = len(vars)
			vars = append(vars, v)
		}
	}
	g := graphutil.NewDigraph(len(vars))
	for _, v := range vars {
		for _, u := range v.Above() {
			id, ok := ids[u]
			if !ok {
				return preconditionf(v.Point(), v.Name, "flows to %s, which is not in the point map", u)
			}
			g.AddEdge(ids[v], id)
		}
	}
	if graphutil.IsAcyclic(g) {
		return nil
	}
	cycle := graphutil.FindCycle(g)
	first := vars[cycle[0]]
	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = vars[id].String()
	}
	return preconditionf(first.Point(), first.Name, "partial order has a cycle through %v", names)
}

// String returns a short description of the analyzer state, for debugging
func (a *Analyzer) String() string {
	return fmt.Sprintf("Analyzer{nonces: %d, tables: %d}", a.Nonces.Peek(), a.Interner.Len())
}
