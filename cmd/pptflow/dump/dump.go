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

// Package dump implements the front-end to the pptflow dump tool, which prints the partial order of a declaration
// set and the flows computed for every program point.
package dump

import (
	"fmt"
	"io"
	"os"

	"github.com/awslabs/ar-pptflow/analysis"
	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/dataflow"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/tools"
	"github.com/awslabs/ar-pptflow/internal/formatutil"
)

// Usage of the dump tool
const Usage = ` Dump the partial order and the flows of program points.
Usage:
  pptflow dump [options] <declaration file(s)>
Examples:
  % pptflow dump -o points.txt decls.yaml
  % pptflow dump -no-flow -verbose decls.yaml more-decls.yaml
`

// Flags represents the parsed flags of the dump tool.
type Flags struct {
	tools.CommonFlags
	output string
	noFlow bool
}

// NewFlags returns the parsed flags of the dump tool with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("dump")
	output := flags.FlagSet.String("o", "", "output file (default: standard output)")
	noFlow := flags.FlagSet.Bool("no-flow", false, "only dump the partial order")
	tools.SetUsage(flags.FlagSet, Usage)
	if err := flags.FlagSet.Parse(args); err != nil {
		return Flags{}, fmt.Errorf("failed to parse command dump with args %v: %v", args, err)
	}
	return Flags{
		CommonFlags: flags.Parsed(),
		output:      *output,
		noFlow:      *noFlow,
	}, nil
}

// Run runs the dump tool with flags.
func Run(flags Flags) error {
	if flags.output == "" {
		return run(flags, os.Stdout)
	}
	f, err := os.Create(flags.output)
	if err != nil {
		return fmt.Errorf("could not create output file: %v", err)
	}
	defer f.Close()
	return run(flags, f)
}

func run(flags Flags, out io.Writer) error {
	cfg, err := tools.LoadConfig(flags.ConfigPath, flags.Verbose)
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(cfg)
	logger.Infof(formatutil.Faint("pptflow dump - " + analysis.Version))

	loaded, err := analysis.LoadPoints(cfg, logger, flags.FlagSet.Args())
	if err != nil {
		return err
	}
	if err := dataflow.DumpPoints(out, loaded.Points); err != nil {
		return fmt.Errorf("could not write points: %v", err)
	}
	if flags.noFlow {
		return nil
	}
	if err := dataflow.DumpFlow(out, loaded.Points); err != nil {
		return fmt.Errorf("could not write flows: %v", err)
	}
	logger.Infof("%s", formatutil.Green(fmt.Sprintf("Dumped %d program points", loaded.Points.Len())))
	return nil
}
