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

// Package flow implements the front-end to the pptflow flow tool, which prints the sample flow or the invariant
// flow of one program point.
package flow

import (
	"fmt"
	"io"
	"os"

	"github.com/awslabs/ar-pptflow/analysis"
	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/dataflow"
	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/tools"
	"github.com/awslabs/ar-pptflow/internal/formatutil"
)

// Usage of the flow tool
const Usage = ` Print where the samples or the invariants of a program point flow to.
Usage:
  pptflow flow [options] -point <program point> <declaration file(s)>
Examples:
  % pptflow flow -point 'pkg.Stack.push(int):::EXIT' decls.yaml
  % pptflow flow -invariant -point 'pkg.Stack:::OBJECT' decls.yaml
`

// Flags represents the parsed flags of the flow tool.
type Flags struct {
	tools.CommonFlags
	point     string
	invariant bool
}

// NewFlags returns the parsed flags of the flow tool with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("flow")
	point := flags.FlagSet.String("point", "", "name of the program point")
	invariant := flags.FlagSet.Bool("invariant", false, "print the invariant flow instead of the sample flow")
	tools.SetUsage(flags.FlagSet, Usage)
	if err := flags.FlagSet.Parse(args); err != nil {
		return Flags{}, fmt.Errorf("failed to parse command flow with args %v: %v", args, err)
	}
	if *point == "" {
		return Flags{}, fmt.Errorf("flow requires a program point (-point)")
	}
	return Flags{
		CommonFlags: flags.Parsed(),
		point:       *point,
		invariant:   *invariant,
	}, nil
}

// Run runs the flow tool with flags.
func Run(flags Flags) error {
	return run(flags, os.Stdout)
}

func run(flags Flags, out io.Writer) error {
	cfg, err := tools.LoadConfig(flags.ConfigPath, flags.Verbose)
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(cfg)
	logger.Infof(formatutil.Faint("pptflow flow - " + analysis.Version))

	loaded, err := analysis.LoadPoints(cfg, logger, flags.FlagSet.Args())
	if err != nil {
		return err
	}
	p := loaded.Points.Lookup(flags.point)
	if p == nil {
		return fmt.Errorf("no program point %s", flags.point)
	}

	var flow []ppt.FlowEntry
	kind := "sample"
	if flags.invariant {
		flow = p.InvariantFlow()
		kind = "invariant"
	} else {
		if !p.ReceivesSamples() {
			return fmt.Errorf("%s does not receive samples; only combined exits do", p.Name)
		}
		flow = p.SampleFlow()
	}
	fmt.Fprintf(out, "%s flow of %s (%d entries)\n", kind, p.Name, len(flow))
	dataflow.WriteFlow(out, p, flow)
	return nil
}
