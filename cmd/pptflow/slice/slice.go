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

// Package slice implements the front-end to the pptflow slice tool, which binds a slice of a program point to the
// adjacent points its invariants flow to.
package slice

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awslabs/ar-pptflow/analysis"
	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/ppt"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/tools"
	"github.com/awslabs/ar-pptflow/internal/formatutil"
)

// Usage of the slice tool
const Usage = ` Print the partial order of a slice: the variables of adjacent points that the slice's invariants flow to.
Usage:
  pptflow slice [options] -point <program point> -vars <v1,v2,...> <declaration file(s)>
Examples:
  % pptflow slice -point 'pkg.Stack:::OBJECT' -vars this.size decls.yaml
  % pptflow slice -point 'pkg.Stack.push(int):::EXIT' -vars 'orig(this.size),this.size' decls.yaml
`

// Flags represents the parsed flags of the slice tool.
type Flags struct {
	tools.CommonFlags
	point string
	vars  tools.VarNames
}

// NewFlags returns the parsed flags of the slice tool with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("slice")
	point := flags.FlagSet.String("point", "", "name of the program point")
	var vars tools.VarNames
	flags.FlagSet.Var(&vars, "vars", "comma-separated variables of the slice")
	tools.SetUsage(flags.FlagSet, Usage)
	if err := flags.FlagSet.Parse(args); err != nil {
		return Flags{}, fmt.Errorf("failed to parse command slice with args %v: %v", args, err)
	}
	if *point == "" || len(vars) == 0 {
		return Flags{}, fmt.Errorf("slice requires a program point (-point) and variables (-vars)")
	}
	return Flags{
		CommonFlags: flags.Parsed(),
		point:       *point,
		vars:        vars,
	}, nil
}

// Run runs the slice tool with flags.
func Run(flags Flags) error {
	return run(flags, os.Stdout)
}

func run(flags Flags, out io.Writer) error {
	cfg, err := tools.LoadConfig(flags.ConfigPath, flags.Verbose)
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(cfg)
	logger.Infof(formatutil.Faint("pptflow slice - " + analysis.Version))

	loaded, err := analysis.LoadPoints(cfg, logger, flags.FlagSet.Args())
	if err != nil {
		return err
	}
	p := loaded.Points.Lookup(flags.point)
	if p == nil {
		return fmt.Errorf("no program point %s", flags.point)
	}
	vars := make([]*ppt.Variable, len(flags.vars))
	for i, name := range flags.vars {
		if vars[i] = p.FindVar(name); vars[i] == nil {
			return fmt.Errorf("no variable %s in %s", name, p.Name)
		}
	}
	s, err := ppt.NewSlice(p, vars...)
	if err != nil {
		return err
	}
	if err := loaded.Analyzer.BindSlicePartialOrder(s); err != nil {
		return fmt.Errorf("could not bind slice %s: %w", s, err)
	}

	fmt.Fprintf(out, "%s\n", s)
	for _, adj := range s.PO() {
		names := make([]string, len(adj.Vars))
		for i, v := range adj.Vars {
			names[i] = v.Name
		}
		point := adj.Point.Name.String()
		if adj.Point.Parent != nil {
			point += " [" + formatutil.Sanitize(adj.Point.Predicate) + "]"
		}
		fmt.Fprintf(out, "  %s: %s\n", point, strings.Join(names, ", "))
	}
	if len(s.PO()) == 0 {
		logger.Infof("%s", formatutil.Yellow("The slice does not flow to any other program point"))
	}
	return nil
}
